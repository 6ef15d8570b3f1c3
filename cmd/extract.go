package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pvdcrypt/internal/imageio"
	"pvdcrypt/pkg/stego"
)

func newExtractCmd(root *rootOptions) *cobra.Command {
	var (
		input string
		cf    codecFlags
		pf    passwordFlags
	)
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Recover a hidden message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := cf.codec(cmd, root.cfg)
			if err != nil {
				return err
			}
			password, err := pf.resolve(cmd)
			if err != nil {
				return err
			}

			img, err := imageio.Load(input)
			if err != nil {
				return err
			}
			message, err := codec.Extract(img, password)
			if err != nil {
				if stego.IsExtractionError(err) {
					return fmt.Errorf("%w (wrong password or damaged image)", err)
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "stego image")
	cf.add(cmd)
	pf.add(cmd)
	cmd.MarkFlagRequired("input")
	return cmd
}
