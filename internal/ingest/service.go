package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	apperrors "github.com/joshwmy/record-management/internal"
	"github.com/joshwmy/record-management/internal/authz"
	"github.com/joshwmy/record-management/internal/core/events"
	"github.com/joshwmy/record-management/internal/dataset"
	"github.com/joshwmy/record-management/internal/incident"
	"github.com/joshwmy/record-management/internal/ticket"
)

// Report summarizes one CSV upload. Rejected entries keep the zero-based
// data row index from the source file.
type Report struct {
	Domain   string     `json:"domain"`
	Total    int        `json:"total"`
	Accepted int        `json:"accepted"`
	Rejected []RowError `json:"rejected,omitempty"`
}

type IncidentStore interface {
	CreateBatch(incs []*incident.Incident) error
}

type TicketStore interface {
	CreateBatch(ts []*ticket.Ticket) error
}

type DatasetStore interface {
	CreateBatch(ds []*dataset.Dataset) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	incidents IncidentStore
	tickets   TicketStore
	datasets  DatasetStore
	bus       EventPublisher
	logger    *slog.Logger
}

func NewService(incidents IncidentStore, tickets TicketStore, datasets DatasetStore, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		incidents: incidents,
		tickets:   tickets,
		datasets:  datasets,
		bus:       bus,
		logger:    logger,
	}
}

// IngestCSV validates and stores the CSV stream for one business domain.
// Valid rows are stored even when other rows fail validation; the report
// lists every rejected row with its reason.
func (s *Service) IngestCSV(ctx context.Context, domain authz.Domain, r io.Reader, uploadedBy string) (*Report, error) {
	schema, ok := SchemaFor(domain)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("domain %s does not accept uploads", domain), apperrors.ErrCodeValidationFailed)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.NewUnprocessableError("file is empty", apperrors.ErrCodeSchemaMismatch)
		}
		return nil, apperrors.NewUnprocessableError("file is not valid CSV", apperrors.ErrCodeSchemaMismatch).WithCause(err)
	}

	if err := schema.ValidateHeader(header); err != nil {
		return nil, apperrors.NewUnprocessableError(err.Error(), apperrors.ErrCodeSchemaMismatch)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewUnprocessableError("file is not valid CSV", apperrors.ErrCodeSchemaMismatch).WithCause(err)
	}

	accepted, rejected := schema.Ingest(header, records)

	if len(accepted) > 0 {
		if err := s.store(domain, accepted, uploadedBy); err != nil {
			if isDuplicate(err) {
				s.logger.Warn("upload rejected, batch collides with stored records", "error", err, "domain", domain)
				return nil, apperrors.NewConflictError("upload contains records that already exist", apperrors.ErrCodeDuplicateRecord)
			}
			s.logger.Error("failed to store ingested rows", "error", err, "domain", domain, "rows", len(accepted))
			return nil, apperrors.NewUnavailableError("record store unavailable", err)
		}
	}

	report := &Report{
		Domain:   string(domain),
		Total:    len(records),
		Accepted: len(accepted),
		Rejected: rejected,
	}

	s.logger.Info("csv upload processed",
		"domain", domain,
		"total", report.Total,
		"accepted", report.Accepted,
		"rejected", len(report.Rejected),
		"uploaded_by", uploadedBy)

	if s.bus != nil {
		event := events.NewRecordsIngestedEvent(string(domain), report.Accepted, len(report.Rejected), uploadedBy)
		if err := s.bus.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish ingest event", "error", err)
		}
	}

	return report, nil
}

// isDuplicate reports whether a batch insert failed on a unique key that is
// already persisted, as opposed to the store being unreachable.
func isDuplicate(err error) bool {
	return errors.Is(err, incident.ErrDuplicate) ||
		errors.Is(err, ticket.ErrDuplicate) ||
		errors.Is(err, dataset.ErrDuplicate)
}

func (s *Service) store(domain authz.Domain, rows []Row, uploadedBy string) error {
	switch domain {
	case authz.DomainCybersecurity:
		return s.incidents.CreateBatch(toIncidents(rows))
	case authz.DomainTickets:
		return s.tickets.CreateBatch(toTickets(rows))
	case authz.DomainDatasets:
		return s.datasets.CreateBatch(toDatasets(rows, uploadedBy))
	}
	return fmt.Errorf("no store for domain %s", domain)
}

func toIncidents(rows []Row) []*incident.Incident {
	incs := make([]*incident.Incident, len(rows))
	for i, row := range rows {
		ts, _ := parseDate(row["timestamp"])
		incs[i] = &incident.Incident{
			IncidentID:  row["incident_id"],
			Timestamp:   ts,
			Severity:    row["severity"],
			Category:    row["category"],
			Status:      row["status"],
			Description: row["description"],
		}
	}
	return incs
}

func toTickets(rows []Row) []*ticket.Ticket {
	ts := make([]*ticket.Ticket, len(rows))
	for i, row := range rows {
		createdAt, _ := parseDate(row["created_at"])
		t := &ticket.Ticket{
			TicketID:    row["ticket_id"],
			Priority:    row["priority"],
			Status:      row["status"],
			CreatedAt:   createdAt,
			AssignedTo:  row["assigned_to"],
			Description: row["description"],
		}
		if v, ok := row["resolution_time_hours"]; ok {
			if hours, err := strconv.Atoi(v); err == nil {
				t.ResolutionTimeHours = &hours
			}
		}
		ts[i] = t
	}
	return ts
}

func toDatasets(rows []Row, uploadedBy string) []*dataset.Dataset {
	ds := make([]*dataset.Dataset, len(rows))
	for i, row := range rows {
		uploadDate, _ := parseDate(row["upload_date"])
		numRows, _ := strconv.ParseInt(row["rows"], 10, 64)
		numCols, _ := strconv.ParseInt(row["columns"], 10, 64)

		by := row["uploaded_by"]
		if by == "" {
			by = uploadedBy
		}

		ds[i] = &dataset.Dataset{
			Name:       row["name"],
			Rows:       numRows,
			Columns:    numCols,
			UploadedBy: by,
			UploadDate: uploadDate,
		}
	}
	return ds
}
