package maintenance_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"bostonfood/internal/maintenance"
	"bostonfood/internal/models"
	"bostonfood/internal/testhelpers"
)

func strPtr(s string) *string { return &s }

func seed(dbConn *gorm.DB, ctx context.Context, rows ...models.Violation) {
	for i := range rows {
		Expect(gorm.G[models.Violation](dbConn).Create(ctx, &rows[i])).To(Succeed())
	}
}

var _ = Describe("CleanSentinelCodes", func() {
	var (
		dbConn *gorm.DB
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		dbConn = testhelpers.OpenTestDB()
	})

	It("converts literal 'nan' codes to NULL and leaves the rest", func() {
		seed(dbConn, ctx,
			models.Violation{BusinessName: strPtr("Taco Hut"), ViolationCode: strPtr("nan")},
			models.Violation{BusinessName: strPtr("Pizza Barn"), ViolationCode: strPtr("nan")},
			models.Violation{BusinessName: strPtr("Noodle Shed"), ViolationCode: strPtr("M-7")},
		)

		changed, err := maintenance.CleanSentinelCodes(ctx, dbConn)
		Expect(err).NotTo(HaveOccurred())
		Expect(changed).To(Equal(int64(2)))

		var withNan int64
		Expect(dbConn.Raw("SELECT COUNT(*) FROM violations WHERE violation_code = 'nan'").Scan(&withNan).Error).To(Succeed())
		Expect(withNan).To(BeZero())

		kept, err := gorm.G[models.Violation](dbConn).Where("business_name = ?", "Noodle Shed").First(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(*kept.ViolationCode).To(Equal("M-7"))
	})
})

var _ = Describe("Normalize", func() {
	var (
		dbConn *gorm.DB
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		dbConn = testhelpers.OpenTestDB()

		seed(dbConn, ctx,
			models.Violation{ViolationCode: strPtr("M-7"), ViolationDesc: strPtr("Improper cold holding")},
			models.Violation{ViolationCode: strPtr("M-7"), ViolationDesc: strPtr("Improper cold holding")},
			models.Violation{ViolationCode: strPtr("M-9"), ViolationDesc: strPtr("No handwashing sign")},
			models.Violation{ViolationCode: nil, ViolationDesc: nil},
		)
	})

	It("backfills the lookup table from the fact table", func() {
		stats, err := maintenance.Normalize(ctx, dbConn)
		Expect(err).NotTo(HaveOccurred())

		// M-7, M-9 and the UNKNOWN parking entry
		Expect(stats.LookupCodes).To(Equal(int64(3)))
		Expect(stats.TotalViolations).To(Equal(int64(4)))
		Expect(stats.DistinctCodes).To(Equal(int64(2)))

		code, err := gorm.G[models.ViolationCode](dbConn).Where("code = ?", "M-9").First(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(*code.Description).To(Equal("No handwashing sign"))

		unknown, err := gorm.G[models.ViolationCode](dbConn).Where("code = ?", maintenance.UnknownCode).First(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(unknown.Description).To(BeNil())
	})

	It("leaves every non-null fact code linked", func() {
		stats, err := maintenance.Normalize(ctx, dbConn)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.OrphanedRows).To(BeZero())
	})

	It("counts orphans instead of failing when a lookup row is missing", func() {
		_, err := maintenance.Normalize(ctx, dbConn)
		Expect(err).NotTo(HaveOccurred())

		// Simulate a lookup row lost to an earlier partial migration.
		Expect(dbConn.Exec("DELETE FROM violation_codes WHERE code = 'M-9'").Error).To(Succeed())
		seed(dbConn, ctx, models.Violation{ViolationCode: strPtr("Z-1"), ViolationDesc: nil})
		Expect(dbConn.Exec("DELETE FROM violation_codes WHERE code = 'Z-1'").Error).To(Succeed())

		var orphans int64
		Expect(dbConn.Raw(`
			SELECT COUNT(*) FROM violations v
			LEFT JOIN violation_codes vc ON v.violation_code = vc.code
			WHERE v.violation_code IS NOT NULL AND vc.code IS NULL
		`).Scan(&orphans).Error).To(Succeed())
		// M-9 row plus the Z-1 row are orphaned until the next normalize run.
		Expect(orphans).To(Equal(int64(2)))

		stats, err := maintenance.Normalize(ctx, dbConn)
		Expect(err).NotTo(HaveOccurred())
		// Normalize re-inserts both from the fact table.
		Expect(stats.OrphanedRows).To(BeZero())
	})
})
