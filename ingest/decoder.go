package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"finanspanel/models"
)

// csvSheetName is reported as the single sheet of a CSV source
const csvSheetName = "csv"

// sniffSize bounds how much of the file is inspected for the delimiter
const sniffSize = 4096

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SupportedExtensions lists the file extensions Decode accepts
var SupportedExtensions = []string{".csv", ".xlsx", ".xlsm", ".xls"}

// Decode reads a ledger export into a rectangular table. The format is chosen
// by file extension; spreadsheets are read from their first sheet.
func Decode(filename string, r io.Reader) (*models.LedgerTable, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		table *models.LedgerTable
		err   error
	)
	switch ext {
	case ".csv":
		table, err = decodeCSV(r)
	case ".xlsx", ".xlsm", ".xls":
		table, err = decodeSpreadsheet(r)
	default:
		return nil, &models.UnsupportedFormatError{
			Filename: filename,
			Reason:   fmt.Sprintf("expected one of %s, got %q", strings.Join(SupportedExtensions, ", "), ext),
			Err:      models.ErrUnknownExtension,
		}
	}
	if err != nil {
		var unsupported *models.UnsupportedFormatError
		if errors.As(err, &unsupported) {
			unsupported.Filename = filename
			return nil, unsupported
		}
		return nil, &models.UnsupportedFormatError{Filename: filename, Reason: "failed to read file", Err: err}
	}

	table.Filename = filename
	return table, nil
}

func decodeCSV(r io.Reader) (*models.LedgerTable, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	// Peek returns whatever is available even when the file is shorter than the buffer
	head, err := br.Peek(sniffSize)
	if len(head) == 0 {
		if err != nil && err != io.EOF {
			return nil, err
		}
		return nil, &models.UnsupportedFormatError{Reason: "empty file"}
	}

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(head)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	return buildTable([]string{csvSheetName}, records)
}

// sniffDelimiter picks the most frequent of comma, semicolon and tab in the header line
func sniffDelimiter(buf []byte) rune {
	line := buf
	if i := bytes.IndexByte(buf, '\n'); i >= 0 {
		line = buf[:i]
	}

	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, candidate := range []rune{';', '\t'} {
		if n := bytes.Count(line, []byte(string(candidate))); n > bestCount {
			best, bestCount = candidate, n
		}
	}
	return best
}

func decodeSpreadsheet(r io.Reader) (*models.LedgerTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &models.UnsupportedFormatError{Reason: "workbook has no sheets"}
	}

	// Raw values keep date cells as serial numbers; display strings are month-first
	records, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return buildTable(sheets, records)
}

// buildTable uses the first record as header, pads every row to the header
// width and drops blank rows
func buildTable(sheets []string, records [][]string) (*models.LedgerTable, error) {
	if len(records) == 0 {
		return nil, &models.UnsupportedFormatError{Reason: "no header row"}
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
	}

	table := &models.LedgerTable{
		Sheets:  sheets,
		Columns: header,
		Rows:    make([][]string, 0, len(records)-1),
	}

	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		row := make([]string, len(header))
		copy(row, record)
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
