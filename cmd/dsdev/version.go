package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsetlabs/dset/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dsdev version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version.Version)
		},
	}
}
