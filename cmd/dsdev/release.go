package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/dsetlabs/dset/internal/executor"
	"github.com/dsetlabs/dset/internal/interactive"
	"github.com/dsetlabs/dset/internal/journal"
	"github.com/dsetlabs/dset/internal/release"
	"github.com/dsetlabs/dset/internal/version"
)

func newReleaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Clean, build, verify and upload a distribution",
		Long:  "Run the release pipeline: clean artifacts, build the distribution archive, verify its integrity, then upload after explicit confirmation.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			force, _ := cmd.Flags().GetBool("force")
			dry, _ := cmd.Flags().GetBool("dry-run")
			verbose, _ := cmd.Flags().GetBool("verbose")
			relVersion, _ := cmd.Flags().GetString("version")

			cfg, root, err := projectConfig(cmd)
			if err != nil {
				return err
			}

			p := &release.Pipeline{
				Config:  cfg,
				Root:    root,
				Version: relVersion,
				Runner:  executor.New(dry, verbose),
				Log:     pslog.Ctx(cmd.Context()),
				Stdout:  os.Stdout,
				Stderr:  os.Stderr,
				Confirm: interactive.Confirm,
				Yes:     yes,
				Force:   force,
				DryRun:  dry,
			}

			if dry {
				_, err := p.Run(cmd.Context())
				return err
			}

			finish, err := recordedRun("release")
			if err != nil {
				return err
			}
			res, err := p.Run(cmd.Context())
			detail := strings.Join(res.Steps, ", ")
			switch {
			case errors.Is(err, release.ErrAborted):
				finish(journal.StatusAborted, detail)
				fmt.Println("aborted")
				return nil
			case err != nil:
				finish(journal.StatusFailed, detail)
				return err
			}
			finish(journal.StatusOK, detail)
			fmt.Printf("released %s\n", res.Archive)
			return nil
		},
	}
	cmd.Flags().Bool("yes", false, "Assume yes for the upload confirmation (use with caution)")
	cmd.Flags().Bool("force", false, "Override safety checks and force execution")
	cmd.Flags().String("version", version.Version, "Version to stamp on the distribution archive")
	return cmd
}
