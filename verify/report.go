package verify

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/uvmasm/asm"
)

// Status of one report row.
type Status string

const (
	StatusOK        Status = "OK"
	StatusMismatch  Status = "MISMATCH"
	StatusUnchecked Status = "-"
)

// Row is the encoding of one program instruction.
type Row struct {
	Index  int
	Inst   asm.Instruction
	Bytes  []byte
	Status Status
}

// Report holds the encoding of a whole program together with the outcome
// of the reference checks.
type Report struct {
	Rows            []Row
	Issues          []Issue
	ReferenceIssues []Issue
	Size            int
}

// GenerateReport encodes every instruction of p and compares it with the
// reference vectors. It fails with the encoder's error when p contains an
// unknown operation.
func GenerateReport(p asm.Program) (*Report, error) {
	report := &Report{
		ReferenceIssues: CheckReferences(),
	}

	for i, inst := range p {
		b, err := asm.Encode(inst)
		if err != nil {
			var unknown *asm.UnknownMnemonicError
			if errors.As(err, &unknown) {
				unknown.Index = i
			}
			return nil, err
		}

		row := Row{Index: i, Inst: inst, Bytes: b, Status: StatusUnchecked}
		if ref, ok := referenceFor(inst); ok {
			row.Status = StatusOK
			if !bytes.Equal(ref.Bytes, b) {
				row.Status = StatusMismatch
				report.Issues = append(report.Issues, Issue{
					Index:    i,
					Inst:     inst,
					Expected: ref.Bytes,
					Actual:   b,
				})
			}
		}

		report.Rows = append(report.Rows, row)
		report.Size += len(b)
	}

	return report, nil
}

// OK tells whether no encoding differs from its reference.
func (r *Report) OK() bool {
	return len(r.Issues) == 0 && len(r.ReferenceIssues) == 0
}

// WriteReport writes the report as a table, followed by any issue.
func (r *Report) WriteReport(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Test")
	t.AppendHeader(table.Row{"#", "Op", "Arg", "Bytes", "Check"})

	for _, row := range r.Rows {
		t.AppendRow(table.Row{
			row.Index,
			string(row.Inst.Mnemonic),
			row.Inst.Operand,
			"[" + FormatBytes(row.Bytes) + "]",
			string(row.Status),
		})
	}

	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d bytes", r.Size), ""})
	t.Render()

	for _, issue := range r.ReferenceIssues {
		fmt.Fprintf(w, "reference %s\n", issue)
	}
	for _, issue := range r.Issues {
		fmt.Fprintf(w, "instruction %d: %s\n", issue.Index, issue)
	}
}

// SaveReportToFile saves the report to a file.
func (r *Report) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
