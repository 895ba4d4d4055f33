package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := &cobra.Command{
		Use:     "mftscan",
		Short:   "Scan an NTFS volume's MFT for directory sizes and largest files",
		Version: version + " (" + commit + ")",
	}

	root.AddCommand(newScanCmd())
	root.AddCommand(newTopCmd())

	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
