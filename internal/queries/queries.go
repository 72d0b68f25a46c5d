package queries

import (
	"context"

	"gorm.io/gorm"
)

// CodeCount is one row of the top-violation-codes aggregate.
type CodeCount struct {
	ViolationCode *string `json:"violation_code"`
	Count         int64   `json:"count"`
}

// DescCount is one row of the top-descriptions aggregate.
type DescCount struct {
	ViolationDesc *string `json:"violation_desc"`
	Count         int64   `json:"count"`
}

// TopViolationCodes returns the n most frequent violation codes.
func TopViolationCodes(ctx context.Context, db *gorm.DB, n int) ([]CodeCount, error) {
	var out []CodeCount
	err := db.WithContext(ctx).Raw(`
		SELECT violation_code, COUNT(*) AS count
		FROM violations
		GROUP BY violation_code
		ORDER BY count DESC
		LIMIT ?
	`, n).Scan(&out).Error
	return out, err
}

// TopDescriptions returns the n most frequent violation descriptions.
func TopDescriptions(ctx context.Context, db *gorm.DB, n int) ([]DescCount, error) {
	var out []DescCount
	err := db.WithContext(ctx).Raw(`
		SELECT violation_desc, COUNT(*) AS count
		FROM violations
		GROUP BY violation_desc
		ORDER BY count DESC
		LIMIT ?
	`, n).Scan(&out).Error
	return out, err
}
