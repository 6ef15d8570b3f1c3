package main

import (
	"github.com/awnumar/memguard"

	"pvdcrypt/cmd"
)

func main() {
	memguard.CatchInterrupt()
	defer memguard.Purge()

	if err := cmd.Execute(); err != nil {
		memguard.SafeExit(1)
	}
}
