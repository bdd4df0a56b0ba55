// Package isa describes the instruction set of the UVM target.
package isa

import "sort"

// OpcodeBits is the width of the opcode field at the bottom of every
// encoded instruction.
const OpcodeBits = 3

// Mnemonic is the symbolic name of an operation.
type Mnemonic string

// The closed set of operations understood by the assembler.
const (
	Load       Mnemonic = "load"
	Read       Mnemonic = "read"
	Write      Mnemonic = "write"
	ShiftRight Mnemonic = "shift_right"
)

// Opcode identifies an operation in the encoded byte stream.
type Opcode uint8

// Format is how one operation is laid out in memory.
type Format struct {
	Opcode Opcode
	// Number of low operand bits kept before packing.
	OperandBits uint
	// Number of bytes the packed value is serialized to.
	Size int
}

// Mask returns the operand mask, (1 << OperandBits) - 1.
func (f Format) Mask() uint64 {
	return uint64(1)<<f.OperandBits - 1
}

// ISA is a named table from mnemonic to instruction format.
type ISA struct {
	// name of the ISA.
	isaName string
	// map from instruction name to its format.
	nameToFormat map[Mnemonic]Format
}

// NewISA creates an empty ISA.
func NewISA(name string) *ISA {
	return &ISA{
		isaName:      name,
		nameToFormat: make(map[Mnemonic]Format),
	}
}

// Name returns the name of the ISA.
func (isa *ISA) Name() string {
	return isa.isaName
}

// registerNewInst adds an instruction to the ISA. Registering the same
// mnemonic twice or an opcode that does not fit in OpcodeBits is a
// programming error.
func (isa *ISA) registerNewInst(name Mnemonic, format Format) {
	if _, dup := isa.nameToFormat[name]; dup {
		panic("isa: duplicate mnemonic " + string(name))
	}
	if format.Opcode >= 1<<OpcodeBits {
		panic("isa: opcode out of range for " + string(name))
	}
	if format.Size > 8 || int(format.OperandBits)+OpcodeBits > format.Size*8 {
		panic("isa: format of " + string(name) + " does not fit its size")
	}
	isa.nameToFormat[name] = format
}

// Lookup returns the format of the given mnemonic.
func (isa *ISA) Lookup(name Mnemonic) (Format, bool) {
	f, ok := isa.nameToFormat[name]
	return f, ok
}

// Mnemonics lists the registered mnemonics ordered by opcode.
func (isa *ISA) Mnemonics() []Mnemonic {
	names := make([]Mnemonic, 0, len(isa.nameToFormat))
	for name := range isa.nameToFormat {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		return isa.nameToFormat[names[i]].Opcode <
			isa.nameToFormat[names[j]].Opcode
	})

	return names
}

var defaultISA = newDefaultISA()

func newDefaultISA() *ISA {
	isa := NewISA("UVM")

	isa.registerNewInst(Load, Format{Opcode: 1, OperandBits: 30, Size: 5})
	isa.registerNewInst(Read, Format{Opcode: 2, OperandBits: 20, Size: 3})
	isa.registerNewInst(Write, Format{Opcode: 7, OperandBits: 20, Size: 3})
	isa.registerNewInst(ShiftRight, Format{Opcode: 5, OperandBits: 20, Size: 3})

	return isa
}

// Default returns the UVM instruction set.
func Default() *ISA {
	return defaultISA
}

// Lookup returns the format of a mnemonic in the default ISA.
func Lookup(name Mnemonic) (Format, bool) {
	return defaultISA.Lookup(name)
}

// Mnemonics lists the mnemonics of the default ISA ordered by opcode.
func Mnemonics() []Mnemonic {
	return defaultISA.Mnemonics()
}
