package main

import (
	"fmt"
	"os"

	"github.com/LinuxMakesMehappy/DeFi-Trust-Fund/cmd/defitrustd/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
