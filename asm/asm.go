// Package asm encodes UVM instructions into their binary form.
//
// Every instruction is packed as
//
//	opcode | (operand & mask) << 3
//
// and serialized little-endian into a fixed number of bytes. The opcode,
// the mask width and the byte count depend only on the mnemonic (see package
// isa). Operands wider than the mask are truncated, not rejected.
package asm

import (
	"errors"
	"fmt"

	"github.com/sarchlab/uvmasm/isa"
)

// ErrUnknownMnemonic is matched by every UnknownMnemonicError.
var ErrUnknownMnemonic = errors.New("unknown operation")

// Instruction is a mnemonic with its single argument.
type Instruction struct {
	Mnemonic isa.Mnemonic
	Operand  uint64
}

func (i Instruction) String() string {
	return fmt.Sprintf("%s %d", i.Mnemonic, i.Operand)
}

// Program is an ordered list of instructions.
type Program []Instruction

// UnknownMnemonicError reports an instruction the ISA does not define.
type UnknownMnemonicError struct {
	// Index of the instruction in the program, -1 for a lone instruction.
	Index    int
	Mnemonic isa.Mnemonic
}

func (e *UnknownMnemonicError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("unknown operation: %s", e.Mnemonic)
	}
	return fmt.Sprintf("instruction %d: unknown operation: %s", e.Index, e.Mnemonic)
}

// Is makes errors.Is(err, ErrUnknownMnemonic) hold.
func (e *UnknownMnemonicError) Is(target error) bool {
	return target == ErrUnknownMnemonic
}

// Packed returns the integer value of the instruction before serialization.
func Packed(inst Instruction) (uint64, error) {
	f, ok := isa.Lookup(inst.Mnemonic)
	if !ok {
		return 0, &UnknownMnemonicError{Index: -1, Mnemonic: inst.Mnemonic}
	}

	return pack(f, inst.Operand), nil
}

func pack(f isa.Format, operand uint64) uint64 {
	return uint64(f.Opcode) | (operand&f.Mask())<<isa.OpcodeBits
}

// Encode returns the bytes of a single instruction.
func Encode(inst Instruction) ([]byte, error) {
	return AppendEncoded(nil, inst)
}

// AppendEncoded appends the encoding of inst to dst. On error dst is
// returned unchanged.
func AppendEncoded(dst []byte, inst Instruction) ([]byte, error) {
	f, ok := isa.Lookup(inst.Mnemonic)
	if !ok {
		return dst, &UnknownMnemonicError{Index: -1, Mnemonic: inst.Mnemonic}
	}

	packed := pack(f, inst.Operand)
	for i := 0; i < f.Size; i++ {
		dst = append(dst, byte(packed>>(8*i)))
	}

	return dst, nil
}

// Assemble encodes the program in order and concatenates the results. If
// any instruction cannot be encoded no output is returned.
func Assemble(p Program) ([]byte, error) {
	out := make([]byte, 0, 5*len(p))

	for i, inst := range p {
		var err error

		out, err = AppendEncoded(out, inst)
		if err != nil {
			var unknown *UnknownMnemonicError
			if errors.As(err, &unknown) {
				unknown.Index = i
			}

			return nil, err
		}
	}

	return out, nil
}
