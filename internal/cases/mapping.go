package cases

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/JaimeStill/pendakwaan/internal/laws"
	"github.com/JaimeStill/pendakwaan/internal/workflow"
	"github.com/JaimeStill/pendakwaan/pkg/civil"
	"github.com/JaimeStill/pendakwaan/pkg/query"
	"github.com/JaimeStill/pendakwaan/pkg/repository"
	"github.com/JaimeStill/pendakwaan/pkg/validation"
)

var projection = query.
	NewProjectionMap("public", "cases", "c").
	Project("id", "ID").
	Project("case_number", "CaseNumber").
	Project("employer_id", "EmployerID").
	Project("officer_id", "OfficerID").
	Project("status", "Status").
	Project("act_type", "ActType").
	Project("offense_type", "OffenseType").
	Project("charge_section", "ChargeSection").
	Project("penalty_section", "PenaltySection").
	Project("compound_section", "CompoundSection").
	Project("date_of_offense", "DateOfOffense").
	Project("inspection_date", "InspectionDate").
	Project("inspection_location", "InspectionLocation").
	Project("issue_summary", "IssueSummary").
	Project("notes", "Notes").
	Project("version", "Version").
	Project("created_by", "CreatedBy").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Join("public", "employers", "e", "LEFT JOIN", "c.employer_id = e.id").
	Project("name", "EmployerName")

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

// Filters narrows a case listing. Nil fields are ignored.
type Filters struct {
	Status       *workflow.Status `json:"status,omitempty"`
	ActType      *laws.Act        `json:"act_type,omitempty"`
	OfficerID    *uuid.UUID       `json:"officer_id,omitempty"`
	EmployerID   *uuid.UUID       `json:"employer_id,omitempty"`
	OffenseType  *string          `json:"offense_type,omitempty"`
	OffenseFrom  *civil.Date      `json:"offense_from,omitempty"`
	OffenseUntil *civil.Date      `json:"offense_until,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereEquals("Status", f.Status).
		WhereEquals("ActType", f.ActType).
		WhereEquals("OfficerID", f.OfficerID).
		WhereEquals("EmployerID", f.EmployerID).
		WhereEquals("OffenseType", f.OffenseType)

	if f.OffenseFrom != nil && !f.OffenseFrom.IsZero() {
		b.WhereCompare("DateOfOffense", ">=", *f.OffenseFrom)
	}
	if f.OffenseUntil != nil && !f.OffenseUntil.IsZero() {
		b.WhereCompare("DateOfOffense", "<=", *f.OffenseUntil)
	}
	return b
}

// FiltersFromQuery reads status, act, officer_id, employer_id, offense,
// offense_from, and offense_until. Malformed values are validation errors.
func FiltersFromQuery(values url.Values) (Filters, error) {
	var (
		f Filters
		v validation.Collector
	)

	if raw := values.Get("status"); raw != "" {
		s, err := workflow.ParseStatus(raw)
		v.Check(err == nil, "status", "unknown status")
		f.Status = &s
	}
	if raw := values.Get("act"); raw != "" {
		a, err := laws.ParseAct(raw)
		v.Check(err == nil, "act", "unknown act")
		f.ActType = &a
	}
	for key, dst := range map[string]**uuid.UUID{"officer_id": &f.OfficerID, "employer_id": &f.EmployerID} {
		if raw := values.Get(key); raw != "" {
			id, err := uuid.Parse(raw)
			v.Check(err == nil, key, "must be a UUID")
			*dst = &id
		}
	}
	if raw := values.Get("offense"); raw != "" {
		f.OffenseType = &raw
	}
	for key, dst := range map[string]**civil.Date{"offense_from": &f.OffenseFrom, "offense_until": &f.OffenseUntil} {
		if raw := values.Get(key); raw != "" {
			d, err := civil.Parse(raw)
			v.Check(err == nil, key, "must be a YYYY-MM-DD date")
			*dst = &d
		}
	}

	if err := v.Err(); err != nil {
		return Filters{}, err
	}
	return f, nil
}

func scanCase(s repository.Scanner) (Case, error) {
	var c Case
	err := s.Scan(
		&c.ID,
		&c.CaseNumber,
		&c.EmployerID,
		&c.OfficerID,
		&c.Status,
		&c.ActType,
		&c.OffenseType,
		&c.ChargeSection,
		&c.PenaltySection,
		&c.CompoundSection,
		&c.DateOfOffense,
		&c.InspectionDate,
		&c.InspectionLocation,
		&c.IssueSummary,
		&c.Notes,
		&c.Version,
		&c.CreatedBy,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.EmployerName,
	)
	return c, err
}
