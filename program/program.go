// Package program loads UVM programs from YAML.
//
// A program file has the form
//
//	program:
//	  - op: load
//	    arg: 86
//	  - op: write
//	    arg: 244
//
// The loader checks that each entry has an operation name and a
// non-negative integer argument. It does not check the operation names;
// the encoder rejects unknown ones.
package program

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/uvmasm/asm"
	"github.com/sarchlab/uvmasm/isa"
)

// ErrInvalidInstruction is matched by every FieldError.
var ErrInvalidInstruction = errors.New("invalid instruction")

// FieldError reports a missing or malformed field of a program entry.
type FieldError struct {
	Index  int
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("instruction %d: field %q %s", e.Index, e.Field, e.Reason)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidInstruction
}

type document struct {
	Program []entry `yaml:"program"`
}

type entry struct {
	Op  yaml.Node `yaml:"op"`
	Arg yaml.Node `yaml:"arg"`
}

// LoadFile reads and parses a program file.
func LoadFile(path string) (asm.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// Parse parses a program document. A document without a program key is an
// empty program.
func Parse(data []byte) (asm.Program, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse program: %w", err)
	}

	p := make(asm.Program, 0, len(doc.Program))
	for i, e := range doc.Program {
		inst, err := e.instruction(i)
		if err != nil {
			return nil, err
		}
		p = append(p, inst)
	}

	return p, nil
}

func (e entry) instruction(index int) (asm.Instruction, error) {
	if e.Op.Kind == 0 {
		return asm.Instruction{}, &FieldError{Index: index, Field: "op", Reason: "is missing"}
	}
	if e.Op.Kind != yaml.ScalarNode || e.Op.ShortTag() != "!!str" {
		return asm.Instruction{}, &FieldError{Index: index, Field: "op", Reason: "must be a string"}
	}

	if e.Arg.Kind == 0 {
		return asm.Instruction{}, &FieldError{Index: index, Field: "arg", Reason: "is missing"}
	}
	if e.Arg.Kind != yaml.ScalarNode || e.Arg.ShortTag() != "!!int" {
		return asm.Instruction{}, &FieldError{Index: index, Field: "arg", Reason: "must be an integer"}
	}

	var arg uint64
	if err := e.Arg.Decode(&arg); err != nil {
		return asm.Instruction{}, &FieldError{
			Index:  index,
			Field:  "arg",
			Reason: fmt.Sprintf("must be a non-negative integer, got %s", e.Arg.Value),
		}
	}

	return asm.Instruction{Mnemonic: isa.Mnemonic(e.Op.Value), Operand: arg}, nil
}
