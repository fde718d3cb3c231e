package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	apperrors "github.com/joshwmy/record-management/internal"
	"github.com/joshwmy/record-management/internal/authz"
	"github.com/joshwmy/record-management/internal/core/events"
	"github.com/joshwmy/record-management/internal/dataset"
	"github.com/joshwmy/record-management/internal/incident"
	"github.com/joshwmy/record-management/internal/ticket"
)

func TestIngest(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Ingest Module Suite")
}

var _ = ginkgo.Describe("IncidentSchema", func() {
	header := []string{"incident_id", "timestamp", "severity", "category", "status", "description"}

	row := func(id, ts, severity, category, status string) []string {
		return []string{id, ts, severity, category, status, "desc"}
	}

	ginkgo.Describe("ValidateHeader", func() {
		ginkgo.It("should accept the full header in any order", func() {
			shuffled := []string{"status", "description", "incident_id", "category", "severity", "timestamp"}
			gomega.Expect(IncidentSchema.ValidateHeader(shuffled)).To(gomega.Succeed())
		})

		ginkgo.It("should accept missing optional columns", func() {
			short := []string{"incident_id", "timestamp", "severity", "category", "status"}
			gomega.Expect(IncidentSchema.ValidateHeader(short)).To(gomega.Succeed())
		})

		ginkgo.It("should reject a header missing required columns", func() {
			err := IncidentSchema.ValidateHeader([]string{"incident_id", "timestamp"})

			gomega.Expect(errors.Is(err, ErrSchemaMismatch)).To(gomega.BeTrue())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("severity"))
		})

		ginkgo.It("should ignore unknown columns", func() {
			extended := append([]string{"extra"}, header...)
			gomega.Expect(IncidentSchema.ValidateHeader(extended)).To(gomega.Succeed())
		})
	})

	ginkgo.Describe("Ingest", func() {
		ginkgo.It("should accept valid rows and keep their order", func() {
			rows := [][]string{
				row("INC-1", "2026-01-02 10:00:00", "High", "Phishing", "Open"),
				row("INC-2", "2026-01-03", "Low", "Malware", "Closed"),
			}

			accepted, rejected := IncidentSchema.Ingest(header, rows)

			gomega.Expect(rejected).To(gomega.BeEmpty())
			gomega.Expect(accepted).To(gomega.HaveLen(2))
			gomega.Expect(accepted[0]["incident_id"]).To(gomega.Equal("INC-1"))
			gomega.Expect(accepted[1]["incident_id"]).To(gomega.Equal("INC-2"))
		})

		ginkgo.It("should normalize date-only timestamps", func() {
			rows := [][]string{row("INC-1", "2026-01-03", "Low", "Malware", "Closed")}

			accepted, _ := IncidentSchema.Ingest(header, rows)

			gomega.Expect(accepted[0]["timestamp"]).To(gomega.Equal("2026-01-03 00:00:00"))
		})

		ginkgo.It("should reject a row with a missing key but keep its siblings", func() {
			rows := [][]string{
				row("INC-1", "2026-01-02 10:00:00", "High", "Phishing", "Open"),
				row("", "2026-01-02 11:00:00", "High", "Phishing", "Open"),
				row("INC-3", "2026-01-02 12:00:00", "High", "Phishing", "Open"),
			}

			accepted, rejected := IncidentSchema.Ingest(header, rows)

			gomega.Expect(accepted).To(gomega.HaveLen(2))
			gomega.Expect(rejected).To(gomega.HaveLen(1))
			gomega.Expect(rejected[0].Index).To(gomega.Equal(1))
			gomega.Expect(rejected[0].Reason).To(gomega.ContainSubstring("incident_id is required"))
		})

		ginkgo.It("should reject out-of-vocabulary enum values", func() {
			rows := [][]string{row("INC-1", "2026-01-02 10:00:00", "Catastrophic", "Phishing", "Open")}

			accepted, rejected := IncidentSchema.Ingest(header, rows)

			gomega.Expect(accepted).To(gomega.BeEmpty())
			gomega.Expect(rejected[0].Reason).To(gomega.ContainSubstring("severity must be one of"))
		})

		ginkgo.It("should reject unparseable dates", func() {
			rows := [][]string{row("INC-1", "02/01/2026", "High", "Phishing", "Open")}

			_, rejected := IncidentSchema.Ingest(header, rows)

			gomega.Expect(rejected).To(gomega.HaveLen(1))
			gomega.Expect(rejected[0].Reason).To(gomega.ContainSubstring("not a valid date"))
		})

		ginkgo.It("should reject duplicate keys within one batch", func() {
			rows := [][]string{
				row("INC-1", "2026-01-02 10:00:00", "High", "Phishing", "Open"),
				row("INC-1", "2026-01-02 11:00:00", "Low", "Malware", "Closed"),
			}

			accepted, rejected := IncidentSchema.Ingest(header, rows)

			gomega.Expect(accepted).To(gomega.HaveLen(1))
			gomega.Expect(rejected).To(gomega.HaveLen(1))
			gomega.Expect(rejected[0].Index).To(gomega.Equal(1))
			gomega.Expect(rejected[0].Reason).To(gomega.ContainSubstring(`duplicate incident_id "INC-1"`))
		})

		ginkgo.It("should never partially ingest a row", func() {
			// bad enum and bad date in one row: the whole row is rejected once
			rows := [][]string{row("INC-1", "bad-date", "Nope", "Phishing", "Open")}

			accepted, rejected := IncidentSchema.Ingest(header, rows)

			gomega.Expect(accepted).To(gomega.BeEmpty())
			gomega.Expect(rejected).To(gomega.HaveLen(1))
		})
	})
})

var _ = ginkgo.Describe("TicketSchema", func() {
	ginkgo.It("should reject negative resolution hours", func() {
		header := []string{"ticket_id", "priority", "status", "created_at", "resolution_time_hours"}
		rows := [][]string{{"TCK-1", "High", "Open", "2026-01-02", "-4"}}

		_, rejected := TicketSchema.Ingest(header, rows)

		gomega.Expect(rejected).To(gomega.HaveLen(1))
		gomega.Expect(rejected[0].Reason).To(gomega.ContainSubstring("cannot be negative"))
	})
})

var _ = ginkgo.Describe("SchemaFor", func() {
	ginkgo.It("should map each business domain to its schema", func() {
		for _, domain := range []authz.Domain{authz.DomainCybersecurity, authz.DomainTickets, authz.DomainDatasets} {
			_, ok := SchemaFor(domain)
			gomega.Expect(ok).To(gomega.BeTrue())
		}
	})

	ginkgo.It("should have no schema for the admin domain", func() {
		_, ok := SchemaFor(authz.DomainAdmin)
		gomega.Expect(ok).To(gomega.BeFalse())
	})
})

// Mock stores for service tests
type mockIncidentStore struct {
	stored []*incident.Incident
	err    error
}

func (m *mockIncidentStore) CreateBatch(incs []*incident.Incident) error {
	if m.err != nil {
		return m.err
	}
	m.stored = append(m.stored, incs...)
	return nil
}

type mockTicketStore struct {
	stored []*ticket.Ticket
}

func (m *mockTicketStore) CreateBatch(ts []*ticket.Ticket) error {
	m.stored = append(m.stored, ts...)
	return nil
}

type mockDatasetStore struct {
	stored []*dataset.Dataset
}

func (m *mockDatasetStore) CreateBatch(ds []*dataset.Dataset) error {
	m.stored = append(m.stored, ds...)
	return nil
}

type mockPublisher struct {
	published []events.Event
}

func (m *mockPublisher) Publish(_ context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = ginkgo.Describe("IngestService", func() {
	var (
		service   *Service
		incidents *mockIncidentStore
		tickets   *mockTicketStore
		datasets  *mockDatasetStore
		bus       *mockPublisher
	)

	ginkgo.BeforeEach(func() {
		incidents = &mockIncidentStore{}
		tickets = &mockTicketStore{}
		datasets = &mockDatasetStore{}
		bus = &mockPublisher{}
		service = NewService(incidents, tickets, datasets, bus, slog.Default())
	})

	ginkgo.It("should ingest a valid incident CSV and publish an event", func() {
		csvData := strings.Join([]string{
			"incident_id,timestamp,severity,category,status,description",
			"INC-1,2026-01-02 10:00:00,High,Phishing,Open,campaign",
			"INC-2,2026-01-03,Low,Malware,Closed,",
		}, "\n")

		report, err := service.IngestCSV(context.Background(), authz.DomainCybersecurity, strings.NewReader(csvData), "cyber_lead")

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(report.Accepted).To(gomega.Equal(2))
		gomega.Expect(report.Rejected).To(gomega.BeEmpty())
		gomega.Expect(incidents.stored).To(gomega.HaveLen(2))
		gomega.Expect(incidents.stored[0].IncidentID).To(gomega.Equal("INC-1"))
		gomega.Expect(bus.published).To(gomega.HaveLen(1))
		gomega.Expect(bus.published[0].EventType()).To(gomega.Equal(events.EventTypeRecordsIngested))
	})

	ginkgo.It("should store valid rows and report invalid ones", func() {
		csvData := strings.Join([]string{
			"incident_id,timestamp,severity,category,status",
			"INC-1,2026-01-02 10:00:00,High,Phishing,Open",
			",2026-01-02 11:00:00,High,Phishing,Open",
		}, "\n")

		report, err := service.IngestCSV(context.Background(), authz.DomainCybersecurity, strings.NewReader(csvData), "cyber_lead")

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(report.Accepted).To(gomega.Equal(1))
		gomega.Expect(report.Rejected).To(gomega.HaveLen(1))
		gomega.Expect(incidents.stored).To(gomega.HaveLen(1))
	})

	ginkgo.It("should reject a CSV whose header misses required columns", func() {
		csvData := "incident_id,timestamp\nINC-1,2026-01-02"

		_, err := service.IngestCSV(context.Background(), authz.DomainCybersecurity, strings.NewReader(csvData), "cyber_lead")

		var appErr *apperrors.AppError
		gomega.Expect(errors.As(err, &appErr)).To(gomega.BeTrue())
		gomega.Expect(appErr.StatusCode).To(gomega.Equal(422))
		gomega.Expect(incidents.stored).To(gomega.BeEmpty())
	})

	ginkgo.It("should reject an empty file", func() {
		_, err := service.IngestCSV(context.Background(), authz.DomainCybersecurity, strings.NewReader(""), "cyber_lead")

		var appErr *apperrors.AppError
		gomega.Expect(errors.As(err, &appErr)).To(gomega.BeTrue())
		gomega.Expect(appErr.StatusCode).To(gomega.Equal(422))
	})

	ginkgo.It("should fill uploaded_by from the session for dataset rows", func() {
		csvData := strings.Join([]string{
			"name,rows,columns,uploaded_by,upload_date",
			"traffic_logs,100,5,,2026-01-02",
		}, "\n")

		report, err := service.IngestCSV(context.Background(), authz.DomainDatasets, strings.NewReader(csvData), "data_lead")

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(report.Accepted).To(gomega.Equal(1))
		gomega.Expect(datasets.stored[0].UploadedBy).To(gomega.Equal("data_lead"))
	})

	ginkgo.It("should convert ticket resolution hours", func() {
		csvData := strings.Join([]string{
			"ticket_id,priority,status,created_at,resolution_time_hours",
			"TCK-1,High,Resolved,2026-01-02,6",
		}, "\n")

		report, err := service.IngestCSV(context.Background(), authz.DomainTickets, strings.NewReader(csvData), "it_lead")

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(report.Accepted).To(gomega.Equal(1))
		gomega.Expect(tickets.stored[0].ResolutionTimeHours).ToNot(gomega.BeNil())
		gomega.Expect(*tickets.stored[0].ResolutionTimeHours).To(gomega.Equal(6))
	})

	ginkgo.It("should surface a storage failure as unavailable", func() {
		incidents.err = errors.New("disk gone")
		csvData := strings.Join([]string{
			"incident_id,timestamp,severity,category,status",
			"INC-1,2026-01-02 10:00:00,High,Phishing,Open",
		}, "\n")

		_, err := service.IngestCSV(context.Background(), authz.DomainCybersecurity, strings.NewReader(csvData), "cyber_lead")

		var appErr *apperrors.AppError
		gomega.Expect(errors.As(err, &appErr)).To(gomega.BeTrue())
		gomega.Expect(appErr.StatusCode).To(gomega.Equal(503))
		gomega.Expect(bus.published).To(gomega.BeEmpty())
	})

	ginkgo.It("should classify a collision with stored records as a conflict", func() {
		incidents.err = fmt.Errorf("%w: INC-1", incident.ErrDuplicate)
		csvData := strings.Join([]string{
			"incident_id,timestamp,severity,category,status",
			"INC-1,2026-01-02 10:00:00,High,Phishing,Open",
		}, "\n")

		_, err := service.IngestCSV(context.Background(), authz.DomainCybersecurity, strings.NewReader(csvData), "cyber_lead")

		var appErr *apperrors.AppError
		gomega.Expect(errors.As(err, &appErr)).To(gomega.BeTrue())
		gomega.Expect(appErr.StatusCode).To(gomega.Equal(409))
		gomega.Expect(bus.published).To(gomega.BeEmpty())
	})

	ginkgo.It("should have no upload path for the admin domain", func() {
		_, err := service.IngestCSV(context.Background(), authz.DomainAdmin, strings.NewReader("x"), "admin")
		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})
