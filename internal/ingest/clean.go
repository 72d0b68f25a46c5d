package ingest

import (
	"log"
	"strings"
	"time"

	"bostonfood/internal/models"
)

// Source CSV header -> database column. Neighborhood is not in the API data
// and stays NULL.
var columnMap = map[string]string{
	"businessname": "business_name",
	"address":      "address",
	"violation":    "violation_code",
	"violdesc":     "violation_desc",
	"violdttm":     "date",
	"result":       "status",
}

// Layouts seen in CKAN exports of this dataset.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"1/2/2006 15:04",
	"1/2/2006",
}

// MapRows converts normalized snapshot rows into violation models, renaming
// columns to the internal schema and coercing values (trim, sentinel nulls,
// date normalization).
func MapRows(rows []map[string]string) []models.Violation {
	if len(rows) > 0 {
		var missing []string
		for src := range columnMap {
			if _, ok := rows[0][src]; !ok {
				missing = append(missing, src)
			}
		}
		if len(missing) > 0 {
			log.Printf("Note: these expected columns were not found: %v", missing)
		}
	}

	out := make([]models.Violation, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.Violation{
			BusinessName:  cleanText(row["businessname"]),
			Address:       cleanText(row["address"]),
			ViolationCode: cleanText(row["violation"]),
			ViolationDesc: cleanText(row["violdesc"]),
			Date:          cleanDate(row["violdttm"]),
			Status:        cleanText(row["result"]),
		})
	}
	return out
}

// cleanText trims and converts sentinel null markers to real nulls.
func cleanText(s string) *string {
	s = strings.TrimSpace(s)
	if isSentinel(s) {
		return nil
	}
	return &s
}

// cleanDate parses a source timestamp leniently and normalizes it to a
// 'YYYY-MM-DD' string. Unparseable values become NULL.
func cleanDate(s string) *string {
	s = strings.TrimSpace(s)
	if isSentinel(s) {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := t.Format("2006-01-02")
			return &d
		}
	}
	return nil
}

// isSentinel reports whether a value is one of the literal markers the
// upstream export uses for "not a number" / "not a time".
func isSentinel(s string) bool {
	switch s {
	case "", "nan", "NaN", "NaT", "None":
		return true
	}
	return false
}
