// Package cmd implements the pvdcrypt command line.
package cmd

import (
	"github.com/spf13/cobra"

	"pvdcrypt/internal/conf"
	"pvdcrypt/internal/flog"
)

type rootOptions struct {
	configPath string
	logLevel   string
	cfg        *conf.Conf
}

func (o *rootOptions) load() error {
	cfg := conf.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = conf.LoadFromFile(o.configPath); err != nil {
			return err
		}
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	flog.SetLevel(cfg.Log.FlogLevel())
	o.cfg = cfg
	return nil
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "pvdcrypt",
		Short:         "Hide encrypted text in lossless images with pixel value differencing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newEmbedCmd(opts),
		newExtractCmd(opts),
		newCapacityCmd(opts),
		newKeygenCmd(),
		newSharedCmd(),
	)
	return cmd
}

// Execute runs the command line and logs any error it returns.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		flog.Errorf("%v", err)
	}
	return err
}
