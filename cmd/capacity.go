package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pvdcrypt/internal/imageio"
	"pvdcrypt/internal/pvd"
	"pvdcrypt/pkg/stego"
)

func newCapacityCmd(root *rootOptions) *cobra.Command {
	var (
		input string
		cf    codecFlags
	)
	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Show how much an image can hold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := cf.codec(cmd, root.cfg)
			if err != nil {
				return err
			}
			img, err := imageio.Load(input)
			if err != nil {
				return err
			}

			size := img.Bounds().Size()
			bits := codec.Capacity(img)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pairs:          %d\n", pvd.PairCount(size.X, size.Y))
			fmt.Fprintf(out, "capacity bits:  %d\n", bits)
			fmt.Fprintf(out, "max frame:      %d bytes\n", bits/8)
			fmt.Fprintf(out, "max ciphertext: %d bytes\n", stego.MaxCiphertext(bits))
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "image to measure")
	cf.add(cmd)
	cmd.MarkFlagRequired("input")
	return cmd
}
