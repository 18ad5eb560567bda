package openapi

import "maps"

// BearerAuth names the bearer token security scheme.
const BearerAuth = "bearerAuth"

// NewComponents creates Components with the shared page request schema and
// the error responses every endpoint can return.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "Page number (1-indexed)", Example: 1},
					"page_size": {Type: "integer", Description: "Results per page", Example: 25},
					"search":    {Type: "string", Description: "Search query"},
					"sort":      {Type: "string", Description: "Comma-separated sort fields. Prefix with - for descending. Example: CaseNumber,-CreatedAt"},
				},
			},
			"Error": {
				Type: "object",
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
					"fields": {
						Type:                 "object",
						Description:          "Per-field validation messages",
						AdditionalProperties: &Schema{Type: "string"},
					},
				},
				Required: []string{"error"},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":    errorResponse("Invalid request; fields names each rejected input"),
			"Unauthorized":  errorResponse("Missing or invalid bearer token"),
			"Forbidden":     errorResponse("Caller's role does not permit the operation"),
			"NotFound":      errorResponse("Resource not found"),
			"Conflict":      errorResponse("Duplicate value or stale version"),
			"Unprocessable": errorResponse("Workflow transition not permitted"),
		},
		SecuritySchemes: map[string]*SecurityScheme{
			BearerAuth: {
				Type:         "http",
				Scheme:       "bearer",
				BearerFormat: "JWT",
				Description:  "ID token from the identity provider",
			},
		},
	}
}

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef("Error")},
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
