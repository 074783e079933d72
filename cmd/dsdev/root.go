package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dsetlabs/dset/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dsdev",
		Short:         "dsdev automates dset development chores",
		Long:          "dsdev installs the development toolchain, cleans build artifacts, and drives the release pipeline for the dset library.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringP("config", "c", "", "path to dsdev.yaml (default: ./dsdev.yaml)")
	root.PersistentFlags().BoolP("dry-run", "n", false, "Show what an operation would do without doing it")
	root.PersistentFlags().Bool("verbose", false, "Verbose output")

	root.AddCommand(newDevCmd())
	root.AddCommand(newCleanCmd())
	root.AddCommand(newReleaseCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// projectConfig loads the project configuration relative to the working
// directory, honoring the --config flag.
func projectConfig(cmd *cobra.Command) (config.Config, string, error) {
	root, err := os.Getwd()
	if err != nil {
		return config.Config{}, "", err
	}
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(root, path)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, root, nil
}
