package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsetlabs/dset/internal/db"
	"github.com/dsetlabs/dset/internal/journal"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past dsdev operations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			dbConn, err := db.InitDB()
			if err != nil {
				return err
			}
			repo := journal.NewRepository(dbConn)
			defer func() { _ = repo.Close() }()

			entries, err := repo.List(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("no operations recorded")
				return nil
			}
			for _, e := range entries {
				finished := "-"
				if e.FinishedAt.Valid {
					finished = e.FinishedAt.String
				}
				detail := ""
				if e.Detail.Valid {
					detail = e.Detail.String
				}
				fmt.Printf("%-4d %-8s %-8s started=%s finished=%s %s\n",
					e.ID, e.Operation, e.Status, e.StartedAt, finished, detail)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum number of entries to show (0 for all)")
	return cmd
}
