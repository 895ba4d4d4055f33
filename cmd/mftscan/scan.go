package main

import (
	"encoding/json"
	"os"

	"github.com/arborfs/mftscan/internal/progress"
	"github.com/arborfs/mftscan/internal/scanner"
	"github.com/spf13/cobra"
)

type scanOptions struct {
	shallow    bool
	noProgress bool
	quiet      bool
	asJSON     bool
}

func newScanCmd() *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan <volume-root>",
		Short: "Build a size tree for a whole NTFS volume from its MFT",
		Long: `Scans a whole NTFS volume by reading its Master File Table directly,
instead of walking the directory tree, and prints per-directory size totals.

mftscan scan F:\ --shallow
collapses well-known system directories (Windows, Program Files, ...) into
a single leaf node rather than expanding their contents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runScan(args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.shallow, "shallow", false, "Collapse well-known system directories into a single leaf")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Disable progress output")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress startup/milestone diagnostic lines")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the result as JSON instead of a tree listing")

	return cmd
}

func runScan(path string, opts *scanOptions) error {
	scanner.Verbose = !opts.quiet

	spinner := progress.NewSpinner(!opts.noProgress)
	percent := progress.NewPercent(!opts.noProgress)
	sink := progress.Sink(spinner, percent)

	res, err := scanner.ScanVolumeMFT(path, sink, opts.shallow)
	spinner.Finish("done")
	percent.Finish("done")
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	printTree(os.Stdout, res)
	return nil
}
