// Package verify checks UVM encodings against the reference byte vectors
// of the target machine and renders the result as a report.
//
// Each operation has one reference case, an operand together with the exact
// bytes the machine expects for it:
//
//	load        86   -> 0xB1, 0x02, 0x00, 0x00, 0x00
//	read        806  -> 0x32, 0x19, 0x00
//	write       244  -> 0xA7, 0x07, 0x00
//	shift_right 655  -> 0x7D, 0x14, 0x00
//
// CheckReferences encodes these cases directly. GenerateReport walks a
// program and checks every instruction whose operand matches its reference
// case.
package verify

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sarchlab/uvmasm/asm"
	"github.com/sarchlab/uvmasm/isa"
)

// Reference is a known-good encoding.
type Reference struct {
	Inst  asm.Instruction
	Bytes []byte
}

var references = []Reference{
	{asm.Instruction{Mnemonic: isa.Load, Operand: 86}, []byte{0xB1, 0x02, 0x00, 0x00, 0x00}},
	{asm.Instruction{Mnemonic: isa.Read, Operand: 806}, []byte{0x32, 0x19, 0x00}},
	{asm.Instruction{Mnemonic: isa.Write, Operand: 244}, []byte{0xA7, 0x07, 0x00}},
	{asm.Instruction{Mnemonic: isa.ShiftRight, Operand: 655}, []byte{0x7D, 0x14, 0x00}},
}

// References returns a copy of the reference cases.
func References() []Reference {
	out := make([]Reference, len(references))
	for i, r := range references {
		out[i] = Reference{Inst: r.Inst, Bytes: append([]byte(nil), r.Bytes...)}
	}
	return out
}

func referenceFor(inst asm.Instruction) (Reference, bool) {
	for _, r := range references {
		if r.Inst == inst {
			return r, true
		}
	}
	return Reference{}, false
}

// Issue describes an encoding that differs from its reference.
type Issue struct {
	Index    int // index in the program, -1 for a reference case
	Inst     asm.Instruction
	Expected []byte
	Actual   []byte
	Err      error
}

func (i Issue) String() string {
	if i.Err != nil {
		return fmt.Sprintf("%s failed: %v", i.Inst.Mnemonic, i.Err)
	}
	return fmt.Sprintf("%s failed: [%s] != [%s]",
		i.Inst.Mnemonic, FormatBytes(i.Expected), FormatBytes(i.Actual))
}

// CheckReferences encodes every reference case and returns the mismatches.
func CheckReferences() []Issue {
	var issues []Issue

	for _, r := range references {
		actual, err := asm.Encode(r.Inst)
		if err != nil || !bytes.Equal(actual, r.Bytes) {
			issues = append(issues, Issue{
				Index:    -1,
				Inst:     r.Inst,
				Expected: r.Bytes,
				Actual:   actual,
				Err:      err,
			})
		}
	}

	return issues
}

// FormatBytes renders bytes as "0xB1, 0x02".
func FormatBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("0x%02X", v)
	}
	return strings.Join(parts, ", ")
}
