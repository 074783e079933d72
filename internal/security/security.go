// Package security screens the configured install/build/check/upload
// commands before dsdev hands them to the shell. The templates live in
// dsdev.yaml and tools.txt, which are often committed and shared, so a
// hostile or fat-fingered edit there would otherwise run unchecked.
package security

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

type rule struct {
	re     *regexp.Regexp
	reason string
}

// Checking is conservative and not exhaustive: it targets commands no
// packaging step has any business running. Commands scoped to the
// project tree (e.g. `rm -rf dist`) pass.
var rules = []rule{
	{regexp.MustCompile(`(?i)\brm\s+(-[a-z]*r[a-z]*f|-[a-z]*f[a-z]*r)[a-z]*\s+["']?(/|~)`),
		"recursive removal outside the project tree"},
	{regexp.MustCompile(`(?i)\bmkfs(\.|\b)`), "filesystem format"},
	{regexp.MustCompile(`(?i)\bdd\s+[^|;]*\bof=/dev/`), "raw device write"},
	{regexp.MustCompile(`(?i)\bwipefs\b`), "disk wipe"},
	{regexp.MustCompile(`(?i)\b(shutdown|reboot|poweroff)\b`), "system power control"},
	{regexp.MustCompile(`(?i)\b(curl|wget)\b[^|;]*\|\s*(ba|z|da)?sh\b`),
		"piping a download into a shell"},
	{regexp.MustCompile(`(?i)^sudo\b`), "privilege escalation"},
	// fork bombs (e.g. :(){ :|:& };:)
	{regexp.MustCompile(`:\(\)\s*\{`), "fork bomb"},
}

// CheckAllowed returns nil if the command is allowed to run, or an error
// naming why it's blocked.
func CheckAllowed(command string) error {
	cmd := strings.TrimSpace(command)
	if cmd == "" {
		return errors.New("empty command")
	}
	for _, r := range rules {
		if r.re.MatchString(cmd) {
			return fmt.Errorf("command blocked: %s", r.reason)
		}
	}
	return nil
}
