package ingest

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bostonfood/internal/models"
	"bostonfood/internal/snapshot"
)

const insertBatchSize = 500

// Stats summarizes one incremental update run.
type Stats struct {
	Incoming int
	Inserted int
	Skipped  int
	NewCodes int
	Total    int64 // rows in the fact table afterwards
}

// UpdateFromSnapshot reads the latest snapshot file and appends its
// previously-unseen rows to the database.
func UpdateFromSnapshot(ctx context.Context, db *gorm.DB, path string) (*Stats, error) {
	log.Printf("Reading data from %s...", path)
	rows, err := snapshot.Read(path)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d records from CSV", len(rows))

	if len(rows) == 0 {
		return nil, fmt.Errorf("no records to process in %s", path)
	}

	return Run(ctx, db, MapRows(rows))
}

// Run performs the incremental update: refresh the lookup table, fingerprint
// everything, and append only incoming rows whose fingerprint is not already
// stored. First write wins; a later row with an identical fingerprint is
// dropped.
func Run(ctx context.Context, db *gorm.DB, rows []models.Violation) (*Stats, error) {
	stats := &Stats{Incoming: len(rows)}

	log.Println("Updating violation codes lookup table...")
	newCodes, err := UpdateViolationCodes(ctx, db, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to update violation codes: %w", err)
	}
	stats.NewCodes = newCodes
	if newCodes > 0 {
		log.Printf("  Added %d new violation codes to lookup table", newCodes)
	}

	log.Println("Checking for duplicates...")
	existing, err := existingFingerprints(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing records: %w", err)
	}
	log.Printf("Found %d existing unique records in database", len(existing))

	var fresh []models.Violation
	for _, row := range rows {
		if _, seen := existing[Fingerprint(row)]; !seen {
			fresh = append(fresh, row)
		}
	}
	stats.Skipped = stats.Incoming - len(fresh)

	if len(fresh) == 0 {
		log.Println("No new records to insert (all records already exist)")
		stats.Total, err = countViolations(ctx, db)
		return stats, err
	}

	log.Printf("Inserting %d new records...", len(fresh))
	if err := db.WithContext(ctx).CreateInBatches(&fresh, insertBatchSize).Error; err != nil {
		return nil, fmt.Errorf("failed to insert records: %w", err)
	}
	stats.Inserted = len(fresh)

	stats.Total, err = countViolations(ctx, db)
	if err != nil {
		return nil, err
	}

	log.Printf("Inserted %d new records, skipped %d duplicates, %d total", stats.Inserted, stats.Skipped, stats.Total)
	return stats, nil
}

// UpdateViolationCodes inserts any unseen (code, description) pairs into the
// lookup table, keeping existing rows untouched. Returns how many codes were
// new.
func UpdateViolationCodes(ctx context.Context, db *gorm.DB, rows []models.Violation) (int, error) {
	seen := map[string]bool{}
	var codes []models.ViolationCode
	for _, row := range rows {
		if row.ViolationCode == nil || seen[*row.ViolationCode] {
			continue
		}
		seen[*row.ViolationCode] = true
		codes = append(codes, models.ViolationCode{
			Code:        *row.ViolationCode,
			Description: row.ViolationDesc,
		})
	}

	if len(codes) == 0 {
		return 0, nil
	}

	res := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&codes)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func existingFingerprints(ctx context.Context, db *gorm.DB) (map[string]struct{}, error) {
	rows, err := gorm.G[models.Violation](db).Select("business_name, address, violation_code, date").Find(ctx)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		set[Fingerprint(row)] = struct{}{}
	}
	return set, nil
}

func countViolations(ctx context.Context, db *gorm.DB) (int64, error) {
	return gorm.G[models.Violation](db).Count(ctx, "id")
}
