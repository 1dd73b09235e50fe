package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set by the release process; dev builds keep the default.
var version = "dev"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the tokenctl version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("tokenctl", version)
			return nil
		},
	}
}
