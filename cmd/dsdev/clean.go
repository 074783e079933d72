package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/dsetlabs/dset/internal/clean"
	"github.com/dsetlabs/dset/internal/journal"
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove build artifacts",
		Long:  "Remove the configured build and cache artifacts. Already-absent paths are skipped, so repeat runs are no-ops.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dry, _ := cmd.Flags().GetBool("dry-run")

			cfg, root, err := projectConfig(cmd)
			if err != nil {
				return err
			}
			opts := clean.Options{Root: root, Paths: cfg.Clean.Paths, Globs: cfg.Clean.Globs}

			if dry {
				targets, err := clean.Plan(opts)
				if err != nil {
					return err
				}
				for _, p := range targets {
					fmt.Printf("would remove %s\n", p)
				}
				return nil
			}

			finish, err := recordedRun("clean")
			if err != nil {
				return err
			}
			removed, err := clean.Run(opts)
			if err != nil {
				finish(journal.StatusFailed, err.Error())
				return err
			}
			finish(journal.StatusOK, cleanDetail(root, removed))

			pslog.Ctx(cmd.Context()).Info("clean complete", "removed", len(removed))
			for _, p := range removed {
				fmt.Printf("removed %s\n", p)
			}
			return nil
		},
	}
	return cmd
}

// cleanDetail lists the removed paths relative to root for the journal
// row, capped so the row stays readable.
func cleanDetail(root string, removed []string) string {
	if len(removed) == 0 {
		return "nothing to remove"
	}
	const maxListed = 8
	rels := make([]string, 0, len(removed))
	for i, p := range removed {
		if i == maxListed {
			rels = append(rels, fmt.Sprintf("and %d more", len(removed)-maxListed))
			break
		}
		if rel, err := filepath.Rel(root, p); err == nil {
			rels = append(rels, rel)
		} else {
			rels = append(rels, p)
		}
	}
	return fmt.Sprintf("removed %d: %s", len(removed), strings.Join(rels, ", "))
}
