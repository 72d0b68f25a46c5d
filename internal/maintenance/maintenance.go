package maintenance

import (
	"context"
	"log"

	"gorm.io/gorm"

	"bostonfood/internal/models"
)

// Codes without a real value get parked under this lookup entry during
// normalization.
const UnknownCode = "UNKNOWN"

// NormalizeStats reports what the normalization pass found.
type NormalizeStats struct {
	LookupCodes     int64 // rows in the lookup table afterwards
	OrphanedRows    int64 // fact rows whose code has no lookup entry
	TotalViolations int64
	DistinctCodes   int64 // distinct codes in the fact table
}

// CleanSentinelCodes converts literal 'nan' violation codes left over from
// early loads into real NULLs. Returns the number of rows changed.
func CleanSentinelCodes(ctx context.Context, db *gorm.DB) (int64, error) {
	res := db.WithContext(ctx).Exec("UPDATE violations SET violation_code = NULL WHERE violation_code = 'nan'")
	if res.Error != nil {
		return 0, res.Error
	}
	log.Printf("Cleaned %d 'nan' codes to NULL", res.RowsAffected)
	return res.RowsAffected, nil
}

// Normalize backfills the violation_codes lookup table from the distinct
// code/description pairs already in the fact table. Orphans (fact rows whose
// code is missing from the lookup afterwards) are counted and reported, not
// repaired.
func Normalize(ctx context.Context, db *gorm.DB) (*NormalizeStats, error) {
	log.Println("Starting database normalization...")

	err := db.WithContext(ctx).Exec(`
		INSERT OR IGNORE INTO violation_codes (code, description)
		SELECT DISTINCT violation_code, violation_desc
		FROM violations
		WHERE violation_code IS NOT NULL
	`).Error
	if err != nil {
		return nil, err
	}

	// Parking entry for rows with no usable code.
	err = db.WithContext(ctx).Exec(
		"INSERT OR IGNORE INTO violation_codes (code, description) VALUES (?, NULL)", UnknownCode,
	).Error
	if err != nil {
		return nil, err
	}

	stats := &NormalizeStats{}

	stats.LookupCodes, err = gorm.G[models.ViolationCode](db).Count(ctx, "code")
	if err != nil {
		return nil, err
	}
	log.Printf("Lookup table holds %d unique violation codes", stats.LookupCodes)

	err = db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM violations v
		LEFT JOIN violation_codes vc ON v.violation_code = vc.code
		WHERE v.violation_code IS NOT NULL AND vc.code IS NULL
	`).Scan(&stats.OrphanedRows).Error
	if err != nil {
		return nil, err
	}
	if stats.OrphanedRows > 0 {
		log.Printf("Warning: %d violations have codes not in violation_codes table", stats.OrphanedRows)
	} else {
		log.Println("All violation codes are properly linked")
	}

	stats.TotalViolations, err = gorm.G[models.Violation](db).Count(ctx, "id")
	if err != nil {
		return nil, err
	}
	err = db.WithContext(ctx).Raw("SELECT COUNT(DISTINCT violation_code) FROM violations").Scan(&stats.DistinctCodes).Error
	if err != nil {
		return nil, err
	}

	log.Printf("Total violations: %d, distinct codes: %d, codes in lookup: %d",
		stats.TotalViolations, stats.DistinctCodes, stats.LookupCodes)

	return stats, nil
}
