package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gbsample-core/genbank"
)

func TestRowsProjection(t *testing.T) {
	recs := []genbank.Record{
		{Accession: "AB1.1", Length: 1500, Definition: "first"},
		{Accession: "AB2.1", Length: 500, Definition: "second"},
	}
	rows := Rows(recs)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{Accession: "AB1.1", Length: 1500, Description: "first"}, rows[0])
	assert.Equal(t, "AB2.1", rows[1].Accession)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []Row{
		{Accession: "AB1.1", Length: 1500, Description: "plain"},
		{Accession: "AB2.1", Length: 42, Description: `has, comma and "quotes"`},
	})
	require.NoError(t, err)
	want := "Accession,Length,Description\n" +
		"AB1.1,1500,plain\n" +
		"AB2.1,42,\"has, comma and \"\"quotes\"\"\"\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVEmptyStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Accession,Length,Description\n", buf.String())
}

func TestRenderChartEmptySkipped(t *testing.T) {
	_, err := RenderChart("9606", nil)
	assert.ErrorIs(t, err, ErrEmptyChart)
}

func TestRenderChartPNG(t *testing.T) {
	rows := []Row{
		{Accession: "AB1.1", Length: 500},
		{Accession: "AB2.1", Length: 1500},
		{Accession: "AB3.1", Length: 1000},
	}
	wt, err := RenderChart("9606", rows)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = wt.WriteTo(&buf)
	require.NoError(t, err)
	// PNG signature
	require.Greater(t, buf.Len(), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, buf.Bytes()[:4])
	// input order untouched
	assert.Equal(t, "AB1.1", rows[0].Accession)
}
