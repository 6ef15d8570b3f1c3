package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pvdcrypt/internal/flog"
	"pvdcrypt/internal/imageio"
)

func newEmbedCmd(root *rootOptions) *cobra.Command {
	var (
		input, output        string
		message, messageFile string
		cf                   codecFlags
		pf                   passwordFlags
	)
	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Encrypt a message and hide it in an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if messageFile != "" {
				data, err := os.ReadFile(messageFile)
				if err != nil {
					return err
				}
				message = string(data)
			}
			if output == "" {
				output = imageio.DefaultOutputPath(root.cfg.Output.Dir, root.cfg.Output.Format)
			} else if _, err := imageio.FormatOf(output); err != nil {
				return err
			}

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
			if err := codec.Embed(img, message, password); err != nil {
				return fmt.Errorf("embed into %s: %w", input, err)
			}
			if err := imageio.Save(output, img); err != nil {
				return err
			}

			flog.Infof("Wrote %s", output)
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "cover image")
	cmd.Flags().StringVarP(&output, "output", "o", "", "stego image (.png or .bmp)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "message to hide")
	cmd.Flags().StringVar(&messageFile, "message-file", "", "read the message from a file")
	cf.add(cmd)
	pf.add(cmd)
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagsOneRequired("message", "message-file")
	cmd.MarkFlagsMutuallyExclusive("message", "message-file")
	return cmd
}
