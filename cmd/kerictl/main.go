package main

import (
	"os"

	"github.com/spf13/cobra"

	"keri/cmd/kerictl/cli"
)

func main() {
	root := &cobra.Command{Use: "kerictl"}
	cli.RegisterRoutes(root)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
