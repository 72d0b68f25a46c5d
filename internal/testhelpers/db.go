package testhelpers

import (
	"fmt"

	g "github.com/onsi/gomega"
	"gorm.io/gorm"

	"bostonfood/internal/db"
	"bostonfood/internal/models"
)

// OpenTestDB opens a fresh in-memory SQLite database with the schema applied.
// The database is named so every pooled connection sees the same instance,
// and serial-numbered so suites do not share state.
func OpenTestDB() *gorm.DB {
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSerial())
	conn, err := db.InitDB(dsn)
	g.Expect(err).NotTo(g.HaveOccurred())

	g.Expect(models.Migrate(conn)).To(g.Succeed())
	return conn
}

// CleanupDB empties every user table and resets the autoincrement counters.
func CleanupDB(db *gorm.DB) {
	var tables []string

	err := db.Raw("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'").Scan(&tables).Error
	g.Expect(err).NotTo(g.HaveOccurred())

	for _, table := range tables {
		err := db.Exec(fmt.Sprintf("DELETE FROM %q", table)).Error
		g.Expect(err).NotTo(g.HaveOccurred(), "Failed to empty table: "+table)
	}

	// sqlite_sequence only exists once an AUTOINCREMENT table has rows.
	db.Exec("DELETE FROM sqlite_sequence")
}

var serial int

func dbSerial() int {
	serial++
	return serial
}
