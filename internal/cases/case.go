// Package cases manages prosecution cases: creation with statutory
// auto-fill, partial updates, hard deletion, and workflow transitions.
package cases

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/pendakwaan/internal/employers"
	"github.com/JaimeStill/pendakwaan/internal/laws"
	"github.com/JaimeStill/pendakwaan/internal/persons"
	"github.com/JaimeStill/pendakwaan/internal/workflow"
	"github.com/JaimeStill/pendakwaan/pkg/civil"
)

// Case is one prosecution matter against an employer. Version increments
// on every write and guards concurrent updates and transitions.
type Case struct {
	ID                 uuid.UUID       `json:"id"`
	CaseNumber         string          `json:"case_number"`
	EmployerID         *uuid.UUID      `json:"employer_id,omitempty"`
	EmployerName       *string         `json:"employer_name,omitempty"`
	OfficerID          *uuid.UUID      `json:"officer_id,omitempty"`
	Status             workflow.Status `json:"status"`
	ActType            laws.Act        `json:"act_type"`
	OffenseType        string          `json:"offense_type"`
	ChargeSection      string          `json:"charge_section"`
	PenaltySection     string          `json:"penalty_section"`
	CompoundSection    string          `json:"compound_section"`
	DateOfOffense      civil.Date      `json:"date_of_offense"`
	InspectionDate     civil.Date      `json:"inspection_date"`
	InspectionLocation string          `json:"inspection_location"`
	IssueSummary       string          `json:"issue_summary"`
	Notes              string          `json:"notes"`
	Version            int             `json:"version"`
	CreatedBy          *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Detail is a case with its persons and the transitions open to the caller.
type Detail struct {
	Case
	Persons []persons.Person      `json:"persons"`
	Actions []workflow.Transition `json:"actions"`
}

// CreateCommand contains the fields for a new case. Blank sections are
// filled from the law table when the act and offense are known. Employer
// creates a new employer in the same transaction and excludes EmployerID.
type CreateCommand struct {
	EmployerID         *uuid.UUID               `json:"employer_id,omitempty"`
	Employer           *employers.CreateCommand `json:"employer,omitempty"`
	OfficerID          *uuid.UUID               `json:"officer_id,omitempty"`
	ActType            laws.Act                 `json:"act_type"`
	OffenseType        string                   `json:"offense_type"`
	ChargeSection      string                   `json:"charge_section,omitempty"`
	PenaltySection     string                   `json:"penalty_section,omitempty"`
	CompoundSection    string                   `json:"compound_section,omitempty"`
	DateOfOffense      civil.Date               `json:"date_of_offense"`
	InspectionDate     civil.Date               `json:"inspection_date,omitempty"`
	InspectionLocation string                   `json:"inspection_location,omitempty"`
	IssueSummary       string                   `json:"issue_summary,omitempty"`
	Notes              string                   `json:"notes,omitempty"`
}

// UpdateCommand changes a case. Nil fields keep their stored value; a nil
// UUID clears EmployerID or OfficerID. Version, when set, must equal the
// stored version. Status changes go through Transition.
type UpdateCommand struct {
	EmployerID         *uuid.UUID  `json:"employer_id,omitempty"`
	OfficerID          *uuid.UUID  `json:"officer_id,omitempty"`
	ActType            *laws.Act   `json:"act_type,omitempty"`
	OffenseType        *string     `json:"offense_type,omitempty"`
	ChargeSection      *string     `json:"charge_section,omitempty"`
	PenaltySection     *string     `json:"penalty_section,omitempty"`
	CompoundSection    *string     `json:"compound_section,omitempty"`
	DateOfOffense      *civil.Date `json:"date_of_offense,omitempty"`
	InspectionDate     *civil.Date `json:"inspection_date,omitempty"`
	InspectionLocation *string     `json:"inspection_location,omitempty"`
	IssueSummary       *string     `json:"issue_summary,omitempty"`
	Notes              *string     `json:"notes,omitempty"`
	Version            *int        `json:"version,omitempty"`
}

// TransitionCommand moves a case to To. Version, when set, must equal the
// stored version.
type TransitionCommand struct {
	To      workflow.Status `json:"to"`
	Version *int            `json:"version,omitempty"`
}
