package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSharedCmd() *cobra.Command {
	var privateKey, peerKey string
	cmd := &cobra.Command{
		Use:   "shared",
		Short: "Print the password agreed with a peer's public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := sharedPassword(privateKey, peerKey)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pw)
			return nil
		},
	}
	addKeyFlags(cmd, &privateKey, &peerKey)
	cmd.MarkFlagRequired("private-key")
	cmd.MarkFlagRequired("peer-key")
	return cmd
}
