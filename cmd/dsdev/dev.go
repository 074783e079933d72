package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/dsetlabs/dset/internal/devsetup"
	"github.com/dsetlabs/dset/internal/executor"
	"github.com/dsetlabs/dset/internal/journal"
)

func newDevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Install the development toolchain",
		Long:  "Install every tool listed in the dev manifest. The command succeeds only if every entry installs.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dry, _ := cmd.Flags().GetBool("dry-run")
			verbose, _ := cmd.Flags().GetBool("verbose")
			force, _ := cmd.Flags().GetBool("force")

			cfg, root, err := projectConfig(cmd)
			if err != nil {
				return err
			}

			opts := devsetup.Options{
				Root:           root,
				Manifest:       cfg.Dev.Manifest,
				InstallCommand: cfg.Dev.InstallCommand,
				Force:          force,
			}
			run := executor.New(dry, verbose)
			log := pslog.Ctx(cmd.Context())

			if dry {
				return devsetup.Install(cmd.Context(), run, log, os.Stdout, os.Stderr, opts)
			}

			finish, err := recordedRun("dev")
			if err != nil {
				return err
			}
			if err := devsetup.Install(cmd.Context(), run, log, os.Stdout, os.Stderr, opts); err != nil {
				finish(journal.StatusFailed, err.Error())
				return err
			}
			finish(journal.StatusOK, "manifest "+cfg.Dev.Manifest)
			fmt.Println("dev setup completed")
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Override safety checks and force execution")
	return cmd
}
