// internal/report/report.go
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"gbsample-core/genbank"
)

// Row is the tabular projection of one filtered record.
type Row struct {
	Accession   string
	Length      int
	Description string
}

// Rows projects records into report rows, preserving record order.
func Rows(records []genbank.Record) []Row {
	out := make([]Row, len(records))
	for i, r := range records {
		out[i] = Row{Accession: r.Accession, Length: r.Length, Description: r.Definition}
	}
	return out
}

// CSVHeader is the canonical report header. No index column.
var CSVHeader = []string{"Accession", "Length", "Description"}

// WriteCSV emits the header plus one row per record. An empty row set still
// produces a well-formed header-only file.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Accession, strconv.Itoa(r.Length), r.Description}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
