package main

import (
	"encoding/json"
	"os"

	"github.com/arborfs/mftscan/internal/progress"
	"github.com/arborfs/mftscan/internal/scanner"
	"github.com/arborfs/mftscan/internal/types"
	"github.com/spf13/cobra"
)

type topOptions struct {
	n          int
	noProgress bool
	quiet      bool
	asJSON     bool
}

func newTopCmd() *cobra.Command {
	opts := &topOptions{n: types.TopFilesDefaultN}

	cmd := &cobra.Command{
		Use:   "top <volume-root>",
		Short: "List the N largest files on an NTFS volume, read from its MFT",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runTop(args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.n, "count", "n", opts.n, "Number of largest files to report")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Disable progress output")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress startup/milestone diagnostic lines")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the result as JSON instead of a table")

	return cmd
}

func runTop(path string, opts *topOptions) error {
	scanner.Verbose = !opts.quiet

	spinner := progress.NewSpinner(!opts.noProgress)
	percent := progress.NewPercent(!opts.noProgress)
	sink := progress.Sink(spinner, percent)

	entries, err := scanner.ScanVolumeMFTTopFiles(path, opts.n, sink)
	spinner.Finish("done")
	percent.Finish("done")
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	printTopFiles(os.Stdout, entries)
	return nil
}
