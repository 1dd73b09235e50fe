package main

import (
	"github.com/spf13/cobra"

	"github.com/tokenforge/spl-token-engine/cmd/tokenctl/internal/sim"
)

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "run a scripted mint/transfer scenario against an in-memory host",
		RunE: func(cmd *cobra.Command, args []string) error {
			return sim.RunBasicDemo()
		},
	}
}
