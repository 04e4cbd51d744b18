// core/genbank/genbank.go
package genbank

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Record is one GenBank flat-file entry. Raw holds the complete record text
// (LOCUS line through the "//" terminator) so the record can be re-emitted
// byte-for-byte without reinterpreting annotations.
type Record struct {
	Accession  string
	Length     int
	Definition string
	Raw        []byte
}

// Parse reads zero or more GenBank records from r. Records are delimited by
// a line consisting of "//". A trailing fragment without a terminator is kept
// only if it carries a LOCUS line.
func Parse(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	const maxLine = 16 * 1024 * 1024 // single annotation lines can be long
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		out []Record
		cur strings.Builder
		got bool // current fragment has a LOCUS line
	)

	flush := func(terminated bool) {
		if cur.Len() == 0 || !got {
			cur.Reset()
			got = false
			return
		}
		raw := cur.String()
		if terminated {
			raw += "//\n"
		}
		out = append(out, decode(raw))
		cur.Reset()
		got = false
	}

	for sc.Scan() {
		line := sc.Text()
		if strings.TrimRight(line, " \t") == "//" {
			flush(true)
			continue
		}
		if strings.HasPrefix(line, "LOCUS") {
			got = true
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("genbank scan: %w", err)
	}
	flush(false)
	return out, nil
}

// Write re-emits records verbatim from their Raw text.
func Write(w io.Writer, records []Record) error {
	for _, rec := range records {
		if _, err := w.Write(rec.Raw); err != nil {
			return err
		}
	}
	return nil
}

// decode pulls the header fields out of one raw record. VERSION is the
// preferred accession (it carries the version suffix), then ACCESSION, then
// the LOCUS name.
func decode(raw string) Record {
	rec := Record{Raw: []byte(raw)}
	var (
		accession string
		version   string
		inDef     bool
		inOrigin  bool
		originLen int
	)
	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, "LOCUS"):
			inDef = false
			f := strings.Fields(line)
			if len(f) >= 2 {
				rec.Accession = f[1]
			}
			for i := 2; i < len(f)-1; i++ {
				if f[i+1] == "bp" || f[i+1] == "aa" {
					if n, err := strconv.Atoi(f[i]); err == nil {
						rec.Length = n
					}
					break
				}
			}
		case strings.HasPrefix(line, "DEFINITION"):
			rec.Definition = strings.TrimSpace(strings.TrimPrefix(line, "DEFINITION"))
			inDef = true
		case strings.HasPrefix(line, "ACCESSION"):
			inDef = false
			if f := strings.Fields(line); len(f) >= 2 {
				accession = f[1]
			}
		case strings.HasPrefix(line, "VERSION"):
			inDef = false
			if f := strings.Fields(line); len(f) >= 2 {
				version = f[1]
			}
		case strings.HasPrefix(line, "ORIGIN"):
			inDef = false
			inOrigin = true
		case strings.HasPrefix(line, " "):
			if inDef {
				rec.Definition += " " + strings.TrimSpace(line)
			} else if inOrigin {
				originLen += countBases(line)
			}
		default:
			inDef = false
			if line != "" && !strings.HasPrefix(line, " ") {
				inOrigin = false
			}
		}
	}
	if version != "" {
		rec.Accession = version
	} else if accession != "" {
		rec.Accession = accession
	}
	if rec.Length == 0 {
		rec.Length = originLen
	}
	return rec
}

func countBases(line string) int {
	n := 0
	for _, c := range line {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			n++
		}
	}
	return n
}
