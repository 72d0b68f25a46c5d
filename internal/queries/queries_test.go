package queries_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"bostonfood/internal/models"
	"bostonfood/internal/queries"
	"bostonfood/internal/testhelpers"
)

func strPtr(s string) *string { return &s }

var _ = Describe("Aggregates", func() {
	var (
		dbConn *gorm.DB
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		dbConn = testhelpers.OpenTestDB()

		add := func(code, desc string, n int) {
			for i := 0; i < n; i++ {
				v := models.Violation{ViolationCode: strPtr(code), ViolationDesc: strPtr(desc)}
				Expect(gorm.G[models.Violation](dbConn).Create(ctx, &v)).To(Succeed())
			}
		}

		add("M-7", "Improper cold holding", 3)
		add("M-9", "No handwashing sign", 2)
		add("T-1", "Unclean surfaces", 1)
	})

	It("ranks violation codes by frequency", func() {
		top, err := queries.TopViolationCodes(ctx, dbConn, 2)
		Expect(err).NotTo(HaveOccurred())

		Expect(top).To(HaveLen(2))
		Expect(*top[0].ViolationCode).To(Equal("M-7"))
		Expect(top[0].Count).To(Equal(int64(3)))
		Expect(*top[1].ViolationCode).To(Equal("M-9"))
	})

	It("ranks descriptions by frequency", func() {
		top, err := queries.TopDescriptions(ctx, dbConn, 10)
		Expect(err).NotTo(HaveOccurred())

		Expect(top).To(HaveLen(3))
		Expect(*top[0].ViolationDesc).To(Equal("Improper cold holding"))
		Expect(top[0].Count).To(Equal(int64(3)))
	})
})
