package persons

import (
	"github.com/JaimeStill/pendakwaan/pkg/query"
	"github.com/JaimeStill/pendakwaan/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "persons", "p").
	Project("id", "ID").
	Project("case_id", "CaseID").
	Project("name", "Name").
	Project("identity_number", "IdentityNumber").
	Project("role", "Role").
	Project("phone", "Phone").
	Project("address", "Address").
	Project("position", "Position").
	Project("employed_since", "EmployedSince").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{Field: "CreatedAt"}

const returning = "id, case_id, name, identity_number, role, phone, address, position, employed_since, created_at"

func scanPerson(s repository.Scanner) (Person, error) {
	var p Person
	err := s.Scan(
		&p.ID,
		&p.CaseID,
		&p.Name,
		&p.IdentityNumber,
		&p.Role,
		&p.Phone,
		&p.Address,
		&p.Position,
		&p.EmployedSince,
		&p.CreatedAt,
	)
	return p, err
}
