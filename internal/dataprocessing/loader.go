package dataprocessing

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
)

// headerAliases maps raw source headers (after NormalizeColumn) onto the
// canonical column names.
var headerAliases = map[string]string{
	"APPLN NO":                               ColStudentID,
	"COLLEGE CODE":                           ColCollegeCode,
	"BRANCH CODE":                            ColBranchCode,
	"ALLOTTED CATEGORY":                      ColAllotCategory,
	"2023-2025 CLEANED.NAME OF THE COLLEGES": ColCollegeName,
	"2023-2025 CLEANED.DISTRICT":             ColDistrict,
	"2023-2025 CLEANED.TYPE OF COLLEGE":      ColCollegeType,
}

// ctxCheckInterval is how many rows are normalized between context checks.
const ctxCheckInterval = 4096

// NormalizeColumn cleans a raw header: control characters are removed,
// whitespace runs collapse to one space, and the result is trimmed and
// upper-cased. Known aliases resolve to their canonical name.
func NormalizeColumn(raw string) string {
	raw = strings.TrimPrefix(raw, "\ufeff")

	var b strings.Builder
	b.Grow(len(raw))
	space := false
	for _, r := range raw {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			continue
		case unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}

	name := strings.ToUpper(b.String())
	if alias, ok := headerAliases[name]; ok {
		return alias
	}
	return name
}

// Loader reads the allotment dataset and normalizes it into a Dataset.
type Loader struct {
	logger *slog.Logger
	sheet  string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithSheet selects the worksheet read from XLSX sources. The first sheet
// is used by default.
func WithSheet(name string) LoaderOption {
	return func(l *Loader) {
		l.sheet = name
	}
}

// NewLoader creates a loader.
func NewLoader(logger *slog.Logger, opts ...LoaderOption) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loader{logger: logger.With(slog.String("component", "loader"))}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads a CSV or XLSX file and returns the cleaned dataset. The
// dataset checksum is the SHA-256 of the file contents.
func (l *Loader) Load(ctx context.Context, path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	var rows [][]string
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = ReadCSV(bytes.NewReader(data))
	case ".xlsx", ".xlsm":
		rows, err = l.readXLSX(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySource
	}

	ds, err := l.LoadRows(ctx, rows[0], rows[1:])
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	ds.Checksum = hex.EncodeToString(sum[:])
	ds.Source = path
	return ds, nil
}

// ReadCSV reads every record of a CSV stream. Ragged rows are accepted.
func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader.ReadAll()
}

func (l *Loader) readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := l.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptySource
		}
		sheet = sheets[0]
	}

	l.logger.Debug("reading worksheet", slog.String("sheet", sheet))
	return f.GetRows(sheet)
}

// LoadRows normalizes a header and its data rows into a Dataset. Rows with
// an unparseable score or a year outside ValidYears are dropped and counted.
func (l *Loader) LoadRows(ctx context.Context, header []string, rows [][]string) (*Dataset, error) {
	if len(header) == 0 {
		return nil, ErrEmptySource
	}

	columns := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := NormalizeColumn(h)
		columns[i] = name
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	stats := Stats{RowsRead: len(rows)}
	records := make([]Record, 0, len(rows))

	for n, row := range rows {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		score, ok := parseNumber(cell(row, ColAggrMark))
		if !ok {
			stats.DroppedScore++
			continue
		}
		year, ok := parseYear(cell(row, ColYear))
		if !ok {
			stats.DroppedYear++
			continue
		}

		code := cell(row, ColBranchCode)
		rec := Record{
			StudentID:     cell(row, ColStudentID),
			Round:         parseRound(cell(row, ColRound)),
			Year:          year,
			Community:     cell(row, ColCommunity),
			CollegeCode:   cell(row, ColCollegeCode),
			CollegeName:   cell(row, ColCollegeName),
			CollegeType:   cell(row, ColCollegeType),
			District:      strings.ToUpper(cell(row, ColDistrict)),
			BranchCode:    code,
			BranchName:    BranchName(code),
			AllotCategory: cell(row, ColAllotCategory),
			AggrMark:      score,
		}
		records = append(records, rec)
	}
	stats.Retained = len(records)

	if dropped := stats.DroppedScore + stats.DroppedYear; dropped > 0 {
		l.logger.Info("dropped rows failing data-quality filter",
			slog.Int("rows_read", stats.RowsRead),
			slog.Int("dropped_invalid_score", stats.DroppedScore),
			slog.Int("dropped_out_of_range_year", stats.DroppedYear),
			slog.Int("retained", stats.Retained))
	}

	return NewDataset(records, columns, stats), nil
}

// parseNumber accepts finite decimal values only.
func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseYear(s string) (int, bool) {
	v, ok := parseNumber(s)
	if !ok || v != math.Trunc(v) {
		return 0, false
	}
	year := int(v)
	if yearIndex(year) < 0 {
		return 0, false
	}
	return year, true
}

func parseRound(s string) int {
	v, ok := parseNumber(s)
	if !ok || v != math.Trunc(v) || v < 0 {
		return 0
	}
	return int(v)
}
