package cmd

import (
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"

	"pvdcrypt/internal/flog"
	"pvdcrypt/internal/keyx"
)

func newKeygenCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a P-256 key pair for password agreement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := keyx.GenerateKey()
			if err != nil {
				return err
			}
			pemBytes, err := keyx.MarshalPrivateKeyPEM(priv)
			if err != nil {
				return err
			}
			defer memguard.WipeBytes(pemBytes)

			f, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
			if err != nil {
				return err
			}
			if _, err := f.Write(pemBytes); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			flog.Infof("Wrote private key to %s", output)

			pub, err := keyx.EncodePublicKey(priv.PublicKey())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pub)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "private key file to create")
	cmd.MarkFlagRequired("output")
	return cmd
}
