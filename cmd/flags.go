package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pvdcrypt/internal/conf"
	"pvdcrypt/internal/keyx"
	"pvdcrypt/pkg/stego"
)

var errNoPassword = errors.New("no password: use -p, --private-key with --peer-key, or run from a terminal")

// codecFlags override the stego section of the configuration.
type codecFlags struct {
	seed        uint32
	compression string
}

func (f *codecFlags) add(cmd *cobra.Command) {
	cmd.Flags().Uint32Var(&f.seed, "seed", stego.DefaultSeed, "pair traversal seed")
	cmd.Flags().StringVar(&f.compression, "compression", "", "message compression: lz4, zstd")
}

func (f *codecFlags) codec(cmd *cobra.Command, cfg *conf.Conf) (*stego.Codec, error) {
	st := cfg.Stego
	if cmd.Flags().Changed("seed") {
		st.Seed = &f.seed
	}
	if f.compression != "" {
		st.Compression = f.compression
	}
	return stego.New(stego.WithSeed(*st.Seed), stego.WithCompression(st.Compression))
}

type passwordFlags struct {
	password   string
	privateKey string
	peerKey    string
}

func (f *passwordFlags) add(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "password")
	addKeyFlags(cmd, &f.privateKey, &f.peerKey)
	cmd.MarkFlagsMutuallyExclusive("password", "private-key")
	cmd.MarkFlagsRequiredTogether("private-key", "peer-key")
}

func addKeyFlags(cmd *cobra.Command, privateKey, peerKey *string) {
	cmd.Flags().StringVar(privateKey, "private-key", "", "PEM file with your P-256 private key")
	cmd.Flags().StringVar(peerKey, "peer-key", "", "peer's base64 public key")
}

// resolve picks the password from -p, then from the key pair, then from a
// terminal prompt.
func (f *passwordFlags) resolve(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("password") {
		return f.password, nil
	}
	if f.privateKey != "" {
		return sharedPassword(f.privateKey, f.peerKey)
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errNoPassword
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

func sharedPassword(privateKeyPath, peerKey string) (string, error) {
	priv, err := keyx.LoadPrivateKey(privateKeyPath)
	if err != nil {
		return "", err
	}
	return keyx.SharedPassword(priv, peerKey)
}
