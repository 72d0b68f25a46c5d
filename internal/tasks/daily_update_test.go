package tasks_test

import (
	"context"
	"path/filepath"

	"github.com/hibiken/asynq"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"bostonfood/internal/config"
	"bostonfood/internal/models"
	"bostonfood/internal/snapshot"
	"bostonfood/internal/tasks"
	"bostonfood/internal/testhelpers"
)

var _ = Describe("HandleDailyUpdateTask", func() {
	var (
		dbConn *gorm.DB
		p      *tasks.TaskProcessor
		rawDir string
	)

	const searchPage = `{
		"success": true,
		"result": {
			"total": 2,
			"records": [
				{
					"businessname": "TACO HUT",
					"address": "1 Main St",
					"violation": "M-7",
					"violdesc": "Improper cold holding",
					"violdttm": "2024-03-15 10:30:00",
					"result": "Fail"
				},
				{
					"businessname": "PIZZA BARN",
					"address": "2 Main St",
					"violation": "M-9",
					"violdesc": "No handwashing sign",
					"violdttm": "2024-03-16 09:00:00",
					"result": "Pass"
				}
			]
		}
	}`

	mockSearch := func() {
		testhelpers.New("https://data.boston.gov").
			Get("/api/3/action/datastore_search").Reply(200).
			BodyString(searchPage).
			Header("Content-Type", "application/json")
	}

	BeforeEach(func() {
		rawDir = GinkgoT().TempDir()
		GinkgoT().Setenv("RAW_DATA_DIR", rawDir)

		cfg, err := config.LoadConfig()
		Expect(err).NotTo(HaveOccurred())

		dbConn = testhelpers.OpenTestDB()

		p = tasks.NewTaskProcessor(dbConn, cfg)

		testhelpers.Activate()
		p.GetCkanClient().UseDefaultClient()
	})

	AfterEach(func() {
		testhelpers.Deactivate()
	})

	It("fetches, snapshots and stores new violations", func() {
		mockSearch()

		task, err := tasks.NewDailyUpdateTask(nil, nil)
		Expect(err).NotTo(HaveOccurred())

		ctx := context.Background()
		Expect(p.HandleDailyUpdateTask(ctx, task)).To(Succeed())

		count, err := gorm.G[models.Violation](dbConn).Count(ctx, "id")
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(int64(2)))

		stored, err := gorm.G[models.Violation](dbConn).Where("business_name = ?", "TACO HUT").First(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(*stored.ViolationCode).To(Equal("M-7"))
		Expect(*stored.Date).To(Equal("2024-03-15"))

		Expect(filepath.Join(rawDir, snapshot.LatestName)).To(BeAnExistingFile())
	})

	It("inserts nothing when the data is unchanged", func() {
		mockSearch()
		task, err := tasks.NewDailyUpdateTask(nil, nil)
		Expect(err).NotTo(HaveOccurred())

		ctx := context.Background()
		Expect(p.HandleDailyUpdateTask(ctx, task)).To(Succeed())

		mockSearch()
		Expect(p.HandleDailyUpdateTask(ctx, task)).To(Succeed())

		count, err := gorm.G[models.Violation](dbConn).Count(ctx, "id")
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(int64(2)))
	})

	It("fails the task when the fetch returns nothing", func() {
		testhelpers.New("https://data.boston.gov").
			Get("/api/3/action/datastore_search").Reply(200).
			BodyString(`{"success": true, "result": {"total": 0, "records": []}}`)

		task, err := tasks.NewDailyUpdateTask(nil, nil)
		Expect(err).NotTo(HaveOccurred())

		err = p.HandleDailyUpdateTask(context.Background(), task)
		Expect(err).To(MatchError(snapshot.ErrNoRecords))
	})

	It("rejects a malformed payload without retrying", func() {
		err := p.HandleDailyUpdateTask(context.Background(), asynq.NewTask(tasks.TypeTaskDailyUpdate, []byte("{nope")))
		Expect(err).To(MatchError(asynq.SkipRetry))
	})
})
