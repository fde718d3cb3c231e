package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joshwmy/record-management/internal/authz"
)

// ErrSchemaMismatch aborts a whole ingestion call before any row runs: the
// upload's header is missing at least one required column.
var ErrSchemaMismatch = errors.New("csv header does not match domain schema")

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

type FieldKind int

const (
	KindText FieldKind = iota
	KindDate
	KindInt
	KindEnum
)

type Column struct {
	Name     string
	Required bool
	Kind     FieldKind
	Enum     []string
}

// Schema describes one domain's tabular input: its columns and the column
// whose values must be unique within a batch.
type Schema struct {
	Domain  authz.Domain
	Key     string
	Columns []Column
}

// Row is a validated, normalized record keyed by column name. Date cells are
// normalized to the date-time layout and int cells to base-10 text.
type Row map[string]string

// RowError reports one rejected input row. Index is zero-based over the data
// rows, excluding the header.
type RowError struct {
	Index  int    `json:"row"`
	Reason string `json:"reason"`
}

var IncidentSchema = Schema{
	Domain: authz.DomainCybersecurity,
	Key:    "incident_id",
	Columns: []Column{
		{Name: "incident_id", Required: true, Kind: KindText},
		{Name: "timestamp", Required: true, Kind: KindDate},
		{Name: "severity", Required: true, Kind: KindEnum, Enum: []string{"Low", "Medium", "High", "Critical"}},
		{Name: "category", Required: true, Kind: KindEnum, Enum: []string{"Phishing", "Malware", "DDoS", "Unauthorized Access", "Misconfiguration"}},
		{Name: "status", Required: true, Kind: KindEnum, Enum: []string{"Open", "In Progress", "Resolved", "Closed"}},
		{Name: "description", Kind: KindText},
	},
}

var TicketSchema = Schema{
	Domain: authz.DomainTickets,
	Key:    "ticket_id",
	Columns: []Column{
		{Name: "ticket_id", Required: true, Kind: KindText},
		{Name: "priority", Required: true, Kind: KindEnum, Enum: []string{"Low", "Medium", "High", "Critical"}},
		{Name: "status", Required: true, Kind: KindEnum, Enum: []string{"Open", "In Progress", "Resolved", "Closed"}},
		{Name: "created_at", Required: true, Kind: KindDate},
		{Name: "assigned_to", Kind: KindText},
		{Name: "description", Kind: KindText},
		{Name: "resolution_time_hours", Kind: KindInt},
	},
}

var DatasetSchema = Schema{
	Domain: authz.DomainDatasets,
	Key:    "name",
	Columns: []Column{
		{Name: "name", Required: true, Kind: KindText},
		{Name: "rows", Required: true, Kind: KindInt},
		{Name: "columns", Required: true, Kind: KindInt},
		// uploaded_by falls back to the uploading session's username
		{Name: "uploaded_by", Kind: KindText},
		{Name: "upload_date", Required: true, Kind: KindDate},
	},
}

// SchemaFor returns the ingestion schema for a business domain. The admin
// domain has no tabular records.
func SchemaFor(domain authz.Domain) (Schema, bool) {
	switch domain {
	case authz.DomainCybersecurity:
		return IncidentSchema, true
	case authz.DomainTickets:
		return TicketSchema, true
	case authz.DomainDatasets:
		return DatasetSchema, true
	}
	return Schema{}, false
}

// ValidateHeader checks that every required column is present. Column order
// in the file does not matter; unknown columns are ignored.
func (s Schema) ValidateHeader(header []string) error {
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		seen[strings.TrimSpace(h)] = true
	}

	var missing []string
	for _, col := range s.Columns {
		if col.Required && !seen[col.Name] {
			missing = append(missing, col.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required columns %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return nil
}

// Ingest validates each data row against the schema. Rows are atomically
// accepted or rejected, never partially ingested, and both result slices
// preserve the input order. The header must already have passed
// ValidateHeader.
func (s Schema) Ingest(header []string, rows [][]string) ([]Row, []RowError) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	accepted := make([]Row, 0, len(rows))
	var rejected []RowError
	seenKeys := make(map[string]int)

	for i, raw := range rows {
		row, err := s.validateRow(index, raw)
		if err != nil {
			rejected = append(rejected, RowError{Index: i, Reason: err.Error()})
			continue
		}

		if s.Key != "" {
			key := row[s.Key]
			if prev, dup := seenKeys[key]; dup {
				rejected = append(rejected, RowError{Index: i, Reason: fmt.Sprintf("duplicate %s %q (also on row %d)", s.Key, key, prev)})
				continue
			}
			seenKeys[key] = i
		}

		accepted = append(accepted, row)
	}

	return accepted, rejected
}

func (s Schema) validateRow(index map[string]int, raw []string) (Row, error) {
	row := make(Row, len(s.Columns))

	for _, col := range s.Columns {
		pos, present := index[col.Name]

		var value string
		if present && pos < len(raw) {
			value = strings.TrimSpace(raw[pos])
		}

		if value == "" {
			if col.Required {
				return nil, fmt.Errorf("%s is required", col.Name)
			}
			continue
		}

		normalized, err := col.normalize(value)
		if err != nil {
			return nil, err
		}
		row[col.Name] = normalized
	}

	return row, nil
}

func (c Column) normalize(value string) (string, error) {
	switch c.Kind {
	case KindDate:
		t, err := parseDate(value)
		if err != nil {
			return "", fmt.Errorf("%s %q is not a valid date", c.Name, value)
		}
		return t.Format(dateTimeLayout), nil
	case KindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return "", fmt.Errorf("%s %q is not an integer", c.Name, value)
		}
		if n < 0 {
			return "", fmt.Errorf("%s cannot be negative", c.Name)
		}
		return strconv.Itoa(n), nil
	case KindEnum:
		for _, allowed := range c.Enum {
			if value == allowed {
				return value, nil
			}
		}
		return "", fmt.Errorf("%s must be one of %s", c.Name, strings.Join(c.Enum, ", "))
	default:
		return value, nil
	}
}

// parseDate accepts the two timestamp shapes the source files use.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateTimeLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, value)
}
