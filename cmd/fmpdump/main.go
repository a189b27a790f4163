package main

import (
	"fmt"
	"os"

	"github.com/bgrewell/fmpkit/pkg/fmp"
	"github.com/bgrewell/fmpkit/pkg/logging"
	"github.com/bgrewell/fmpkit/pkg/option"
	"github.com/bgrewell/fmpkit/pkg/version"
	"github.com/bgrewell/usage"
	"github.com/fatih/color"
)

func main() {
	u := usage.NewUsage(
		usage.WithApplicationName("fmpdump"),
		usage.WithApplicationVersion(version.Version()),
		usage.WithApplicationDescription("fmpdump decodes an FMP (FileMaker Pro) file and writes a line-oriented trace of every sector, path move, and chunk to the output file, for diagnosing files the other tools fail or behave unexpectedly on."),
	)
	help := u.AddBooleanOption("h", "help", false, "Display this help message", "", nil)
	verbose := u.AddBooleanOption("v", "verbose", false, "Log decoder events to stdout at trace verbosity", "", nil)
	input := u.AddArgument(1, "input", "Path to the FMP file to dump", "")
	output := u.AddArgument(2, "output", "Path to write the trace to", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}
	if *help {
		u.PrintUsage()
		os.Exit(0)
	}
	if input == nil || *input == "" || output == nil || *output == "" {
		u.PrintError(fmt.Errorf("both <input> and <output> must be provided"))
		os.Exit(1)
	}

	var opts []option.OpenOption
	if *verbose {
		opts = append(opts, option.WithLogger(logging.NewConsoleLogger(logging.LEVEL_TRACE, true)))
	}

	handle, err := fmp.OpenFile(*input, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("failed to open %s: %v", *input, err))
		os.Exit(1)
	}
	defer handle.Close()

	out, err := os.Create(*output)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("failed to create %s: %v", *output, err))
		os.Exit(1)
	}
	defer out.Close()

	if err := handle.DumpFile(out); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("dump failed: %v", err))
		os.Exit(1)
	}

	fmt.Println(color.GreenString("wrote trace to %s", *output))
}
