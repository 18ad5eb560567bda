package audit

import (
	"encoding/json"
	"net/url"

	"github.com/google/uuid"

	"github.com/JaimeStill/pendakwaan/pkg/query"
	"github.com/JaimeStill/pendakwaan/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "audit_trail", "a").
	Project("id", "ID").
	Project("table_name", "TableName").
	Project("record_id", "RecordID").
	Project("action", "Action").
	Project("old_data", "OldData").
	Project("new_data", "NewData").
	Project("user_id", "UserID").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{Field: "ID", Descending: true}

// Filters narrows an audit listing. Nil fields are ignored.
type Filters struct {
	TableName *string    `json:"table_name,omitempty"`
	RecordID  *uuid.UUID `json:"record_id,omitempty"`
	Action    *Action    `json:"action,omitempty"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("TableName", f.TableName).
		WhereEquals("RecordID", f.RecordID).
		WhereEquals("Action", f.Action).
		WhereEquals("UserID", f.UserID)
}

// FiltersFromQuery reads table, record_id, action, and user_id. Malformed
// ids yield ErrInvalidFilter.
func FiltersFromQuery(values url.Values) (Filters, error) {
	var f Filters

	if t := values.Get("table"); t != "" {
		f.TableName = &t
	}
	if a := values.Get("action"); a != "" {
		act := Action(a)
		switch act {
		case ActionCreate, ActionUpdate, ActionDelete:
			f.Action = &act
		default:
			return Filters{}, ErrInvalidFilter
		}
	}
	for key, dst := range map[string]**uuid.UUID{"record_id": &f.RecordID, "user_id": &f.UserID} {
		raw := values.Get(key)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return Filters{}, ErrInvalidFilter
		}
		*dst = &id
	}

	return f, nil
}

func scanTrail(s repository.Scanner) (Trail, error) {
	var (
		t                Trail
		oldData, newData []byte
	)
	err := s.Scan(
		&t.ID,
		&t.TableName,
		&t.RecordID,
		&t.Action,
		&oldData,
		&newData,
		&t.UserID,
		&t.CreatedAt,
	)
	if oldData != nil {
		t.OldData = json.RawMessage(oldData)
	}
	if newData != nil {
		t.NewData = json.RawMessage(newData)
	}
	return t, err
}
