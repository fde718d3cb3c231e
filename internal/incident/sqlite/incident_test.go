package sqlite_test

import (
	"errors"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	incidentDatamodel "github.com/joshwmy/record-management/internal/core/datamodel/incident"
	"github.com/joshwmy/record-management/internal/incident"
	incidentSQLite "github.com/joshwmy/record-management/internal/incident/sqlite"
)

func TestIncidentSQLite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Incident SQLite Suite")
}

var _ = Describe("Incident SQLite Repository", func() {
	var (
		db   *gorm.DB
		repo *incidentSQLite.Repository
	)

	newIncident := func(id string, severity string) *incident.Incident {
		return &incident.Incident{
			IncidentID:  id,
			Timestamp:   time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
			Severity:    severity,
			Category:    "Phishing",
			Status:      "Open",
			Description: "test incident",
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&incidentDatamodel.Incident{})
		Expect(err).NotTo(HaveOccurred())

		repo = incidentSQLite.NewRepository(db)
	})

	Describe("Create", func() {
		It("should store a new incident and backfill the id", func() {
			inc := newIncident("INC-100", "High")

			err := repo.Create(inc)

			Expect(err).NotTo(HaveOccurred())
			Expect(inc.ID).To(BeNumerically(">", 0))
		})

		It("should reject a duplicate incident_id", func() {
			Expect(repo.Create(newIncident("INC-100", "High"))).To(Succeed())

			err := repo.Create(newIncident("INC-100", "Low"))
			Expect(errors.Is(err, incident.ErrDuplicate)).To(BeTrue())
		})
	})

	Describe("CreateBatch", func() {
		It("should store every row in one call", func() {
			incs := []*incident.Incident{
				newIncident("INC-100", "High"),
				newIncident("INC-101", "Low"),
				newIncident("INC-102", "Critical"),
			}

			err := repo.CreateBatch(incs)

			Expect(err).NotTo(HaveOccurred())
			stored, err := repo.List(incident.Filter{}, 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(HaveLen(3))
		})

		It("should accept an empty batch", func() {
			Expect(repo.CreateBatch(nil)).To(Succeed())
		})

		It("should report a batch colliding with a stored incident_id as a duplicate", func() {
			Expect(repo.Create(newIncident("INC-100", "High"))).To(Succeed())

			err := repo.CreateBatch([]*incident.Incident{newIncident("INC-100", "Low")})
			Expect(errors.Is(err, incident.ErrDuplicate)).To(BeTrue())
		})
	})

	Describe("GetByID", func() {
		It("should return the stored incident", func() {
			inc := newIncident("INC-100", "High")
			Expect(repo.Create(inc)).To(Succeed())

			found, err := repo.GetByID(inc.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(found.IncidentID).To(Equal("INC-100"))
			Expect(found.Severity).To(Equal("High"))
		})

		It("should return ErrNotFound for a missing id", func() {
			_, err := repo.GetByID(999)
			Expect(err).To(MatchError(incident.ErrNotFound))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			a := newIncident("INC-100", "High")
			b := newIncident("INC-101", "Low")
			b.Category = "Malware"
			c := newIncident("INC-102", "High")
			c.Status = "Closed"
			Expect(repo.CreateBatch([]*incident.Incident{a, b, c})).To(Succeed())
		})

		It("should filter by severity", func() {
			found, err := repo.List(incident.Filter{Severity: "High"}, 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(HaveLen(2))
		})

		It("should combine filters", func() {
			found, err := repo.List(incident.Filter{Severity: "High", Status: "Closed"}, 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(HaveLen(1))
			Expect(found[0].IncidentID).To(Equal("INC-102"))
		})

		It("should respect limit and offset", func() {
			page, err := repo.List(incident.Filter{}, 2, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(page).To(HaveLen(2))

			rest, err := repo.List(incident.Filter{}, 2, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(rest).To(HaveLen(1))
		})
	})

	Describe("Update", func() {
		It("should persist changed fields", func() {
			inc := newIncident("INC-100", "High")
			Expect(repo.Create(inc)).To(Succeed())

			inc.Status = "Resolved"
			inc.Severity = "Low"
			Expect(repo.Update(inc)).To(Succeed())

			found, err := repo.GetByID(inc.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Status).To(Equal("Resolved"))
			Expect(found.Severity).To(Equal("Low"))
		})

		It("should return ErrNotFound for a missing id", func() {
			inc := newIncident("INC-999", "High")
			inc.ID = 999
			Expect(repo.Update(inc)).To(MatchError(incident.ErrNotFound))
		})
	})

	Describe("Delete", func() {
		It("should remove the incident", func() {
			inc := newIncident("INC-100", "High")
			Expect(repo.Create(inc)).To(Succeed())

			Expect(repo.Delete(inc.ID)).To(Succeed())

			_, err := repo.GetByID(inc.ID)
			Expect(err).To(MatchError(incident.ErrNotFound))
		})

		It("should return ErrNotFound for a missing id", func() {
			Expect(repo.Delete(999)).To(MatchError(incident.ErrNotFound))
		})
	})
})
