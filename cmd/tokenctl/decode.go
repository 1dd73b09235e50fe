package main

import (
	"encoding/hex"
	"fmt"

	ag_treeout "github.com/gagliardetto/treeout"
	"github.com/spf13/cobra"

	"github.com/tokenforge/spl-token-engine/token"
)

func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [hex-bytes]",
		Short: "decode a hex-encoded instruction and print it as a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("decoding hex: %w", err)
			}
			inst, err := token.DecodeInstruction(data)
			if err != nil {
				return err
			}
			root := ag_treeout.NewTreeRoot("tokenctl")
			inst.EncodeToTree(root)
			fmt.Println(root)
			return nil
		},
	}
}
