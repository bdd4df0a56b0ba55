// Package api defines the driver that turns a program file into a UVM
// binary image.
package api

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/uvmasm/asm"
)

// Source provides the program to assemble.
type Source interface {
	// Load reads the program stored at path.
	Load(path string) (asm.Program, error)
}

// Sink persists an assembled image.
type Sink interface {
	// Store writes the image to path.
	Store(path string, image []byte) error
}

// Result is the outcome of one driver run.
type Result struct {
	Program asm.Program
	Image   []byte
}

// Driver loads, assembles and stores programs.
type Driver struct {
	source Source
	sink   Sink
	logger *slog.Logger
}

// Run assembles the program at in and stores the image at out. Nothing is
// stored when the program cannot be assembled.
func (d *Driver) Run(in, out string) (*Result, error) {
	d.logger.Debug("loading program", "path", in)

	p, err := d.source.Load(in)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", in, err)
	}

	Trace(d.logger, "program loaded", "path", in, "instructions", len(p))

	image, err := asm.Assemble(p)
	if err != nil {
		d.logger.Error("assembly failed", "path", in, "error", err)
		return nil, fmt.Errorf("assemble %s: %w", in, err)
	}

	Trace(d.logger, "program assembled", "bytes", len(image))

	if err := d.sink.Store(out, image); err != nil {
		return nil, fmt.Errorf("store %s: %w", out, err)
	}

	d.logger.Info("binary written", "path", out, "bytes", len(image))

	return &Result{Program: p, Image: image}, nil
}
