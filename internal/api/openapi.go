package api

import (
	"maps"
	"net/http"
	"strings"

	"github.com/JaimeStill/pendakwaan/internal/config"
	"github.com/JaimeStill/pendakwaan/pkg/openapi"
)

var (
	idParam      = openapi.PathParam("id", "Record identifier")
	caseIDParam  = openapi.PathParam("caseId", "Case identifier")
	actParam     = openapi.PathKey("act", "akta4, akta800, or both")
	offenseParam = openapi.PathKey("offense", "Offense key from the law table")
	ifMatch      = openapi.HeaderParam("If-Match", "Expected case version as a quoted ETag; used when the body omits version", false)
)

func tagged(r *openapi.Response) *openapi.Response {
	return openapi.WithHeader(r, "ETag", "Current case version")
}

var pageParams = []*openapi.Parameter{
	openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
	openapi.QueryParam("page_size", "integer", "Results per page", false),
	openapi.QueryParam("search", "string", "Free-text search", false),
	openapi.QueryParam("sort", "string", "Comma-separated sort fields; prefix - for descending", false),
}

func withPage(params ...*openapi.Parameter) []*openapi.Parameter {
	return append(append([]*openapi.Parameter{}, pageParams...), params...)
}

func responses(status int, r *openapi.Response, errs ...string) map[int]*openapi.Response {
	out := map[int]*openapi.Response{
		status:                  r,
		http.StatusUnauthorized: openapi.ResponseRef("Unauthorized"),
	}
	codes := map[string]int{
		"BadRequest":    http.StatusBadRequest,
		"Forbidden":     http.StatusForbidden,
		"NotFound":      http.StatusNotFound,
		"Conflict":      http.StatusConflict,
		"Unprocessable": http.StatusUnprocessableEntity,
	}
	for _, name := range errs {
		out[codes[name]] = openapi.ResponseRef(name)
	}
	return out
}

var noContent = &openapi.Response{Description: "No content"}

// operations documents every route in Groups, keyed by mux pattern.
var operations = map[string]*openapi.Operation{
	"GET /laws": {
		Summary:   "List acts",
		Tags:      []string{"Laws"},
		Responses: responses(http.StatusOK, &openapi.Response{Description: "Acts", Content: jsonOf(openapi.ArrayOf("ActInfo"))}),
	},
	"GET /laws/{act}/offenses": {
		Summary:    "List offenses for an act",
		Tags:       []string{"Laws"},
		Parameters: []*openapi.Parameter{actParam},
		Responses:  responses(http.StatusOK, &openapi.Response{Description: "Offenses", Content: jsonOf(openapi.ArrayOf("Offense"))}, "BadRequest"),
	},
	"GET /laws/{act}/offenses/{offense}": {
		Summary:    "Look up statutory sections",
		Tags:       []string{"Laws"},
		Parameters: []*openapi.Parameter{actParam, offenseParam},
		Responses:  responses(http.StatusOK, openapi.ResponseJSON("Sections", "LawEntry"), "BadRequest", "NotFound"),
	},
	"GET /workflow/statuses": {
		Summary:   "List case statuses",
		Tags:      []string{"Workflow"},
		Responses: responses(http.StatusOK, &openapi.Response{Description: "Statuses", Content: jsonOf(openapi.ArrayOf("StatusInfo"))}),
	},
	"GET /workflow/transitions": {
		Summary:    "List workflow transitions",
		Tags:       []string{"Workflow"},
		Parameters: []*openapi.Parameter{openapi.QueryParam("from", "string", "Only edges leaving this status", false)},
		Responses:  responses(http.StatusOK, &openapi.Response{Description: "Transitions", Content: jsonOf(openapi.ArrayOf("Transition"))}, "BadRequest"),
	},
	"GET /cases": {
		Summary: "List cases",
		Tags:    []string{"Cases"},
		Parameters: withPage(
			openapi.QueryParam("status", "string", "Workflow status", false),
			openapi.QueryParam("act", "string", "Act type", false),
			openapi.QueryParam("officer_id", "string", "Investigating officer", false),
			openapi.QueryParam("employer_id", "string", "Employer", false),
			openapi.QueryParam("offense", "string", "Offense key", false),
			openapi.QueryParam("offense_from", "string", "Earliest date of offense (YYYY-MM-DD)", false),
			openapi.QueryParam("offense_until", "string", "Latest date of offense (YYYY-MM-DD)", false),
		),
		Responses: responses(http.StatusOK, openapi.ResponseJSON("Case page", "CasePage"), "BadRequest"),
	},
	"POST /cases": {
		Summary:     "Create a case in draft",
		Description: "Blank sections are filled from the law table. An inline employer is created in the same transaction.",
		Tags:        []string{"Cases"},
		RequestBody: openapi.RequestBodyJSON("CreateCase", true),
		Responses:   responses(http.StatusCreated, openapi.ResponseJSON("Created case", "Case"), "BadRequest", "Forbidden", "Conflict"),
	},
	"POST /cases/search": {
		Summary:     "Search cases",
		Tags:        []string{"Cases"},
		RequestBody: openapi.RequestBodyJSON("PageRequest", false),
		Responses:   responses(http.StatusOK, openapi.ResponseJSON("Case page", "CasePage"), "BadRequest"),
	},
	"GET /cases/{id}": {
		Summary:    "Get a case with its persons and available actions",
		Tags:       []string{"Cases"},
		Parameters: []*openapi.Parameter{idParam},
		Responses:  responses(http.StatusOK, tagged(openapi.ResponseJSON("Case detail", "CaseDetail")), "BadRequest", "NotFound"),
	},
	"PATCH /cases/{id}": {
		Summary:     "Update a case",
		Description: "Status is not editable here.",
		Tags:        []string{"Cases"},
		Parameters:  []*openapi.Parameter{idParam, ifMatch},
		RequestBody: openapi.RequestBodyJSON("UpdateCase", true),
		Responses:   responses(http.StatusOK, tagged(openapi.ResponseJSON("Updated case", "Case")), "BadRequest", "Forbidden", "NotFound", "Conflict"),
	},
	"DELETE /cases/{id}": {
		Summary:    "Delete a case",
		Tags:       []string{"Cases"},
		Parameters: []*openapi.Parameter{idParam},
		Responses:  responses(http.StatusNoContent, noContent, "BadRequest", "Forbidden", "NotFound"),
	},
	"GET /cases/{id}/actions": {
		Summary:    "List transitions the caller may take",
		Tags:       []string{"Cases", "Workflow"},
		Parameters: []*openapi.Parameter{idParam},
		Responses:  responses(http.StatusOK, &openapi.Response{Description: "Transitions", Content: jsonOf(openapi.ArrayOf("Transition"))}, "BadRequest", "NotFound"),
	},
	"POST /cases/{id}/transition": {
		Summary:     "Move a case along a workflow edge",
		Tags:        []string{"Cases", "Workflow"},
		Parameters:  []*openapi.Parameter{idParam, ifMatch},
		RequestBody: openapi.RequestBodyJSON("TransitionCommand", true),
		Responses:   responses(http.StatusOK, tagged(openapi.ResponseJSON("Moved case", "Case")), "BadRequest", "Forbidden", "NotFound", "Conflict", "Unprocessable"),
	},
	"GET /cases/{caseId}/persons": {
		Summary:    "List persons on a case",
		Tags:       []string{"Persons"},
		Parameters: []*openapi.Parameter{caseIDParam},
		Responses:  responses(http.StatusOK, &openapi.Response{Description: "Persons", Content: jsonOf(openapi.ArrayOf("Person"))}, "BadRequest"),
	},
	"POST /cases/{caseId}/persons": {
		Summary:     "Add a person to a case",
		Tags:        []string{"Persons"},
		Parameters:  []*openapi.Parameter{caseIDParam},
		RequestBody: openapi.RequestBodyJSON("CreatePerson", true),
		Responses:   responses(http.StatusCreated, openapi.ResponseJSON("Created person", "Person"), "BadRequest", "Forbidden", "NotFound"),
	},
	"GET /employers": {
		Summary: "List employers",
		Tags:    []string{"Employers"},
		Parameters: withPage(
			openapi.QueryParam("registration_number", "string", "Registration number", false),
			openapi.QueryParam("business_type", "string", "Business type", false),
		),
		Responses: responses(http.StatusOK, openapi.ResponseJSON("Employer page", "EmployerPage")),
	},
	"POST /employers": {
		Summary:     "Create an employer",
		Tags:        []string{"Employers"},
		RequestBody: openapi.RequestBodyJSON("CreateEmployer", true),
		Responses:   responses(http.StatusCreated, openapi.ResponseJSON("Created employer", "Employer"), "BadRequest", "Forbidden", "Conflict"),
	},
	"POST /employers/search": {
		Summary:     "Search employers",
		Tags:        []string{"Employers"},
		RequestBody: openapi.RequestBodyJSON("PageRequest", false),
		Responses:   responses(http.StatusOK, openapi.ResponseJSON("Employer page", "EmployerPage"), "BadRequest"),
	},
	"GET /employers/{id}": {
		Summary:    "Get an employer",
		Tags:       []string{"Employers"},
		Parameters: []*openapi.Parameter{idParam},
		Responses:  responses(http.StatusOK, openapi.ResponseJSON("Employer", "Employer"), "BadRequest", "NotFound"),
	},
	"PATCH /employers/{id}": {
		Summary:     "Update an employer",
		Tags:        []string{"Employers"},
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyJSON("UpdateEmployer", true),
		Responses:   responses(http.StatusOK, openapi.ResponseJSON("Updated employer", "Employer"), "BadRequest", "Forbidden", "NotFound", "Conflict"),
	},
	"GET /profiles": {
		Summary:    "List profiles",
		Tags:       []string{"Profiles"},
		Parameters: withPage(openapi.QueryParam("role", "string", "Role", false), openapi.QueryParam("department", "string", "Department", false)),
		Responses:  responses(http.StatusOK, openapi.ResponseJSON("Profile page", "ProfilePage"), "BadRequest", "Forbidden"),
	},
	"GET /profiles/me": {
		Summary:   "Get the caller's profile",
		Tags:      []string{"Profiles"},
		Responses: responses(http.StatusOK, openapi.ResponseJSON("Profile", "Profile")),
	},
	"GET /profiles/{id}": {
		Summary:    "Get a profile",
		Tags:       []string{"Profiles"},
		Parameters: []*openapi.Parameter{idParam},
		Responses:  responses(http.StatusOK, openapi.ResponseJSON("Profile", "Profile"), "BadRequest", "Forbidden", "NotFound"),
	},
	"PATCH /profiles/{id}": {
		Summary:     "Update a profile",
		Tags:        []string{"Profiles"},
		Parameters:  []*openapi.Parameter{idParam},
		RequestBody: openapi.RequestBodyJSON("UpdateProfile", true),
		Responses:   responses(http.StatusOK, openapi.ResponseJSON("Updated profile", "Profile"), "BadRequest", "Forbidden", "NotFound"),
	},
	"GET /audit": {
		Summary: "List audit trail entries",
		Tags:    []string{"Audit"},
		Parameters: withPage(
			openapi.QueryParam("table", "string", "Table name", false),
			openapi.QueryParam("record_id", "string", "Record identifier", false),
			openapi.QueryParam("action", "string", "create, update, or delete", false),
			openapi.QueryParam("user_id", "string", "Acting user", false),
		),
		Responses: responses(http.StatusOK, openapi.ResponseJSON("Audit page", "AuditPage"), "BadRequest", "Forbidden"),
	},
}

func jsonOf(s *openapi.Schema) map[string]*openapi.MediaType {
	return map[string]*openapi.MediaType{"application/json": {Schema: s}}
}

func str(description string) *openapi.Schema {
	return &openapi.Schema{Type: "string", Description: description}
}

func uuidRef(description string) *openapi.Schema {
	return &openapi.Schema{Type: "string", Format: "uuid", Description: description}
}

func date(description string) *openapi.Schema {
	return &openapi.Schema{Type: "string", Format: "date", Description: description}
}

func object(required []string, props map[string]*openapi.Schema) *openapi.Schema {
	return &openapi.Schema{Type: "object", Properties: props, Required: required}
}

func page(item string) *openapi.Schema {
	return object(nil, map[string]*openapi.Schema{
		"data":        openapi.ArrayOf(item),
		"total":       {Type: "integer"},
		"page":        {Type: "integer"},
		"page_size":   {Type: "integer"},
		"total_pages": {Type: "integer"},
	})
}

func schemas() map[string]*openapi.Schema {
	caseFields := map[string]*openapi.Schema{
		"employer_id":         uuidRef("Employer"),
		"officer_id":          uuidRef("Investigating officer profile"),
		"act_type":            {Type: "string", Enum: []any{"akta4", "akta800", "both"}},
		"offense_type":        str("Offense key"),
		"charge_section":      str("Charge section"),
		"penalty_section":     str("Penalty section"),
		"compound_section":    str("Compound section"),
		"date_of_offense":     date("Date of offense"),
		"inspection_date":     date("Inspection date"),
		"inspection_location": str("Inspection location"),
		"issue_summary":       str("Issue summary"),
		"notes":               str("Notes"),
	}

	stored := func(extra map[string]*openapi.Schema) map[string]*openapi.Schema {
		out := maps.Clone(caseFields)
		maps.Copy(out, extra)
		return out
	}

	employerFields := map[string]*openapi.Schema{
		"name":                str("Employer name"),
		"registration_number": str("PERKESO employer code"),
		"address":             str("Address"),
		"phone":               str("Phone"),
		"email":               str("Email"),
		"business_type":       str("Business type"),
	}

	return map[string]*openapi.Schema{
		"ActInfo":    object(nil, map[string]*openapi.Schema{"act": str("Act key"), "label": str("Act name")}),
		"Offense":    object(nil, map[string]*openapi.Schema{"key": str("Offense key"), "label": str("Offense label")}),
		"LawEntry":   object(nil, map[string]*openapi.Schema{"act": str("Act"), "offense": str("Offense"), "charge": str("Charge section"), "penalty": str("Penalty section"), "compound": str("Compound section")}),
		"StatusInfo": object(nil, map[string]*openapi.Schema{"status": str("Status"), "label": str("Label"), "terminal": {Type: "boolean"}}),
		"Transition": object(nil, map[string]*openapi.Schema{
			"from":  str("Source status"),
			"to":    str("Target status"),
			"label": str("Action label"),
			"roles": {Type: "array", Items: str("Role")},
		}),
		"Case": object(nil, stored(map[string]*openapi.Schema{
			"id":            uuidRef("Case identifier"),
			"case_number":   {Type: "string", Pattern: `^KES/[0-9]{4}/[A-Z0-9]{6}$`},
			"employer_name": str("Employer name"),
			"status":        str("Workflow status"),
			"version":       {Type: "integer", Description: "Concurrency token; also sent as ETag"},
			"created_by":    uuidRef("Creating profile"),
			"created_at":    {Type: "string", Format: "date-time"},
			"updated_at":    {Type: "string", Format: "date-time"},
		})),
		"CaseDetail": object(nil, stored(map[string]*openapi.Schema{
			"id":      uuidRef("Case identifier"),
			"status":  str("Workflow status"),
			"version": {Type: "integer"},
			"persons": openapi.ArrayOf("Person"),
			"actions": openapi.ArrayOf("Transition"),
		})),
		"CreateCase": object([]string{"act_type", "offense_type", "date_of_offense"}, stored(map[string]*openapi.Schema{
			"employer": openapi.SchemaRef("CreateEmployer"),
		})),
		"UpdateCase":        object(nil, stored(map[string]*openapi.Schema{"version": {Type: "integer"}})),
		"TransitionCommand": object([]string{"to"}, map[string]*openapi.Schema{"to": str("Target status"), "version": {Type: "integer"}}),
		"CasePage":          page("Case"),
		"Employer":          object(nil, employerFields),
		"CreateEmployer":    object([]string{"name", "registration_number"}, employerFields),
		"UpdateEmployer":    object(nil, employerFields),
		"EmployerPage":      page("Employer"),
		"Person": object(nil, map[string]*openapi.Schema{
			"id":              uuidRef("Person identifier"),
			"case_id":         uuidRef("Case"),
			"name":            str("Name"),
			"identity_number": str("Identity card number"),
			"role":            {Type: "string", Enum: []any{"witness", "person-of-interest", "employee"}},
			"position":        str("Position"),
			"employed_since":  date("Employment start"),
		}),
		"CreatePerson": object([]string{"name", "role"}, map[string]*openapi.Schema{
			"name":            str("Name"),
			"identity_number": str("Identity card number"),
			"role":            {Type: "string", Enum: []any{"witness", "person-of-interest", "employee"}},
			"phone":           str("Phone"),
			"address":         str("Address"),
			"position":        str("Position"),
			"employed_since":  date("Employment start"),
		}),
		"Profile": object(nil, map[string]*openapi.Schema{
			"id":         uuidRef("Profile identifier"),
			"email":      str("Email"),
			"full_name":  str("Full name"),
			"role":       {Type: "string", Enum: []any{"admin", "io", "po", "uip", "viewer"}},
			"department": str("Department"),
			"phone":      str("Phone"),
		}),
		"UpdateProfile": object(nil, map[string]*openapi.Schema{
			"full_name":  str("Full name"),
			"role":       {Type: "string", Enum: []any{"admin", "io", "po", "uip", "viewer"}},
			"department": str("Department"),
			"phone":      str("Phone"),
		}),
		"ProfilePage": page("Profile"),
		"AuditTrail": object(nil, map[string]*openapi.Schema{
			"id":         str("ULID"),
			"table_name": str("Table"),
			"record_id":  uuidRef("Record"),
			"action":     {Type: "string", Enum: []any{"create", "update", "delete"}},
			"old_data":   {Type: "object"},
			"new_data":   {Type: "object"},
			"user_id":    uuidRef("Acting profile"),
			"created_at": {Type: "string", Format: "date-time"},
		}),
		"AuditPage": page("AuditTrail"),
	}
}

// NewSpec builds the OpenAPI document for the API module.
func NewSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)
	spec.Components.AddSchemas(schemas())

	for pattern, op := range operations {
		method, path, _ := strings.Cut(pattern, " ")
		spec.AddOperation(method, path, op)
	}
	return spec
}
