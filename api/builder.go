package api

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sarchlab/uvmasm/asm"
	"github.com/sarchlab/uvmasm/program"
)

type yamlSource struct{}

func (yamlSource) Load(path string) (asm.Program, error) {
	return program.LoadFile(path)
}

type fileSink struct {
	perm os.FileMode
}

func (s fileSink) Store(path string, image []byte) error {
	if err := os.WriteFile(path, image, s.perm); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	source Source
	sink   Sink
	logger *slog.Logger
}

// WithSource sets where programs are loaded from. Defaults to YAML files.
func (b DriverBuilder) WithSource(source Source) DriverBuilder {
	b.source = source
	return b
}

// WithSink sets where images are stored. Defaults to files with mode 0644.
func (b DriverBuilder) WithSink(sink Sink) DriverBuilder {
	b.sink = sink
	return b
}

// WithLogger sets the logger. Defaults to slog.Default().
func (b DriverBuilder) WithLogger(logger *slog.Logger) DriverBuilder {
	b.logger = logger
	return b
}

// Build creates a driver.
func (b DriverBuilder) Build() *Driver {
	d := &Driver{
		source: b.source,
		sink:   b.sink,
		logger: b.logger,
	}

	if d.source == nil {
		d.source = yamlSource{}
	}
	if d.sink == nil {
		d.sink = fileSink{perm: 0o644}
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}

	return d
}
