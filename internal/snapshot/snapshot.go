package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"bostonfood/internal/pkg/ckan"
)

// LatestName is the fixed snapshot name the updater reads from.
const LatestName = "inspections_latest.csv"

var ErrNoRecords = errors.New("no records to snapshot")

// Write persists a fetched batch twice: once under a timestamped name for
// backup and once as the "latest" file for processing. Returns the path of
// the latest file. An empty batch writes nothing and fails.
func Write(dir string, records []ckan.Record) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	header := columns(records)

	timestamped := filepath.Join(dir, fmt.Sprintf("inspections_%s.csv", time.Now().Format("20060102_150405")))
	if err := writeCSV(timestamped, header, records); err != nil {
		return "", err
	}

	latest := filepath.Join(dir, LatestName)
	if err := writeCSV(latest, header, records); err != nil {
		return "", err
	}

	return latest, nil
}

// Read loads a snapshot back as one map per row, with headers normalized the
// way the loader expects (trimmed, lowercased, spaces to underscores).
func Read(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	raw, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("snapshot %s is empty", path)
	}

	header := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		header[i] = NormalizeHeader(h)
	}

	rows := make([]map[string]string, 0, len(raw)-1)
	for _, rec := range raw[1:] {
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// NormalizeHeader maps a source column name to its canonical form.
func NormalizeHeader(h string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
}

// columns is the sorted union of keys across all records, so a field missing
// from the first row still gets a column.
func columns(records []ckan.Record) []string {
	seen := map[string]bool{}
	var cols []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

func writeCSV(path string, header []string, records []ckan.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, rec := range records {
		for i, col := range header {
			row[i] = stringify(rec[col])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
