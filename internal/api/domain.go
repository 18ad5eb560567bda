package api

import (
	"github.com/JaimeStill/pendakwaan/internal/audit"
	"github.com/JaimeStill/pendakwaan/internal/cases"
	"github.com/JaimeStill/pendakwaan/internal/employers"
	"github.com/JaimeStill/pendakwaan/internal/persons"
	"github.com/JaimeStill/pendakwaan/internal/profiles"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Audit     audit.System
	Cases     cases.System
	Employers employers.System
	Persons   persons.System
	Profiles  profiles.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	return &Domain{
		Audit:     audit.New(db, runtime.Logger, runtime.Pagination),
		Cases:     cases.New(db, runtime.Logger, runtime.Pagination, cases.NewMetrics(runtime.Registry)),
		Employers: employers.New(db, runtime.Logger, runtime.Pagination),
		Persons:   persons.New(db, runtime.Logger),
		Profiles:  profiles.New(db, runtime.Logger, runtime.Pagination, runtime.AdminEmails),
	}
}
