package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var sample = Table{
	Sheet:  "Attendance",
	Header: []string{"Employee", "Clock In", "Clock Out", "Late"},
	Rows: [][]any{
		{"Budi, S.Kom", "2024-05-01 09:15:00", "2024-05-01 17:20:00", 15},
		{"Sari", "2024-05-01 08:50:00", nil, 0},
	},
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", FormatXLSX.ContentType())
	assert.Equal(t, "xlsx", FormatXLSX.Extension())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, sample.Header, records[0])
	assert.Equal(t, []string{"Budi, S.Kom", "2024-05-01 09:15:00", "2024-05-01 17:20:00", "15"}, records[1])
	assert.Equal(t, []string{"Sari", "2024-05-01 08:50:00", "", "0"}, records[2])
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Table{Header: []string{"a", "b"}}))
	assert.Equal(t, "a,b\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sample))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Attendance"}, f.GetSheetList())

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, sample.Header, rows[0])
	assert.Equal(t, []string{"Budi, S.Kom", "2024-05-01 09:15:00", "2024-05-01 17:20:00", "15"}, rows[1])
	// trailing empty cells are trimmed by GetRows
	assert.Equal(t, "Sari", rows[2][0])
	assert.Equal(t, "", rows[2][2])
	assert.Equal(t, "0", rows[2][3])
}

func TestWrite_Dispatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sample))
	assert.Contains(t, buf.String(), "Employee,Clock In")

	err := Write(&buf, Format("pdf"), sample)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
