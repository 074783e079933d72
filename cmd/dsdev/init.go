package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dsetlabs/dset/internal/config"
)

const starterManifest = `# Development tools installed by 'dsdev dev'.
# One entry per line: module/path@version
honnef.co/go/tools/cmd/staticcheck@latest
mvdan.cc/gofumpt@latest
`

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter dsdev.yaml and tool manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dry, _ := cmd.Flags().GetBool("dry-run")
			root, err := os.Getwd()
			if err != nil {
				return err
			}
			cfgPath := filepath.Join(root, config.DefaultFileName)
			if _, err := os.Stat(cfgPath); err == nil {
				return fmt.Errorf("%s already exists", config.DefaultFileName)
			}
			cfg := config.Default()
			if dry {
				fmt.Printf("dry-run: would write %s and %s\n", config.DefaultFileName, cfg.Dev.Manifest)
				return nil
			}
			if err := config.Save(cfg, cfgPath); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", config.DefaultFileName)

			manifestPath := filepath.Join(root, cfg.Dev.Manifest)
			if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
				if err := os.WriteFile(manifestPath, []byte(starterManifest), 0o644); err != nil {
					return fmt.Errorf("write manifest: %w", err)
				}
				fmt.Printf("wrote %s\n", cfg.Dev.Manifest)
			}
			return nil
		},
	}
	return cmd
}
