// Command uvmasm assembles a YAML program into a UVM binary image.
//
//	uvmasm -i program.yaml -o program.bin [-t] [-dump] [-log-level info]
//
// The input and output paths fall back to UVMASM_INPUT and UVMASM_OUTPUT.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/uvmasm/api"
	"github.com/sarchlab/uvmasm/verify"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type options struct {
	input    string
	output   string
	test     bool
	dump     bool
	logLevel string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("uvmasm", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.input, "input", os.Getenv("UVMASM_INPUT"), "input YAML file")
	fs.StringVar(&opts.input, "i", os.Getenv("UVMASM_INPUT"), "shorthand for -input")
	fs.StringVar(&opts.output, "output", os.Getenv("UVMASM_OUTPUT"), "output binary file")
	fs.StringVar(&opts.output, "o", os.Getenv("UVMASM_OUTPUT"), "shorthand for -output")
	fs.BoolVar(&opts.test, "test", false, "check encodings against the reference vectors")
	fs.BoolVar(&opts.test, "t", false, "shorthand for -test")
	fs.BoolVar(&opts.dump, "dump", false, "dump the loaded program to stderr")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.input == "" || opts.output == "" {
		fs.Usage()
		return nil, errors.New("both -input and -output are required")
	}

	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	level, err := api.ParseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid log level %q\n", opts.logLevel)
		return exitUsage
	}

	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{
		Level: level,
	}))

	result, err := api.DriverBuilder{}.
		WithLogger(logger).
		Build().
		Run(opts.input, opts.output)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	if opts.dump {
		spew.Fdump(stderr, result.Program)
	}

	status := exitOK
	if opts.test {
		report, err := verify.GenerateReport(result.Program)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitFailure
		}

		fmt.Fprintln(stdout)
		report.WriteReport(stdout)
		if !report.OK() {
			status = exitFailure
		}
	}

	fmt.Fprintf(stdout, "\nBinary written to %s (%d bytes)\n", opts.output, len(result.Image))

	return status
}

func main() {
	atexit.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
