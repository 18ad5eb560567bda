// Package workflow defines the case status enumeration and the one table of
// legal status transitions with the roles allowed to take each edge.
package workflow

import (
	"encoding/json"
	"slices"
)

// Status is the workflow state of a case.
type Status string

const (
	StatusDraft            Status = "draft"
	StatusInInvestigation  Status = "in-investigation"
	StatusPendingReview    Status = "pending-review"
	StatusPendingSanction  Status = "pending-sanction"
	StatusSanctionApproved Status = "sanction-approved"
	StatusCompounded       Status = "compounded"
	StatusCharged          Status = "charged"
	StatusClosed           Status = "closed"
	StatusNFA              Status = "nfa"
)

var statuses = []Status{
	StatusDraft,
	StatusInInvestigation,
	StatusPendingReview,
	StatusPendingSanction,
	StatusSanctionApproved,
	StatusCompounded,
	StatusCharged,
	StatusClosed,
	StatusNFA,
}

var labels = map[Status]string{
	StatusDraft:            "Draf",
	StatusInInvestigation:  "Dalam Siasatan",
	StatusPendingReview:    "Menunggu Semakan",
	StatusPendingSanction:  "Menunggu Sanksi",
	StatusSanctionApproved: "Sanksi Diluluskan",
	StatusCompounded:       "Dikompaun",
	StatusCharged:          "Dituduh",
	StatusClosed:           "Ditutup",
	StatusNFA:              "Tiada Tindakan Lanjut",
}

// Statuses returns every status in workflow order.
func Statuses() []Status {
	return slices.Clone(statuses)
}

// Label returns the Malay display label.
func (s Status) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// Valid reports whether s is a member of the enumeration.
func (s Status) Valid() bool {
	return slices.Contains(statuses, s)
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusClosed || s == StatusNFA
}

// UnmarshalJSON rejects values outside the enumeration. An empty string
// decodes to the zero Status; callers check Valid where one is required.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*s = ""
		return nil
	}
	v, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStatus validates raw as a known status.
func ParseStatus(raw string) (Status, error) {
	v := Status(raw)
	if !v.Valid() {
		return "", ErrInvalidStatus
	}
	return v, nil
}
