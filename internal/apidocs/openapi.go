// Package apidocs describes the HTTP surface as data and renders it as an
// OpenAPI 3.0.3 document. Nothing here routes or validates requests.
package apidocs

// Document is the root of an OpenAPI 3.0.3 document.
type Document struct {
	OpenAPI    string               `json:"openapi"`
	Info       Info                 `json:"info"`
	Servers    []Server             `json:"servers,omitempty"`
	Tags       []Tag                `json:"tags,omitempty"`
	Paths      map[string]*PathItem `json:"paths"`
	Components Components           `json:"components"`
}

// Info carries API metadata.
type Info struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Version     string   `json:"version"`
	Contact     *Contact `json:"contact,omitempty"`
	License     *License `json:"license,omitempty"`
}

// Contact describes the API owner.
type Contact struct {
	Name  string `json:"name,omitempty"`
	URL   string `json:"url,omitempty"`
	Email string `json:"email,omitempty"`
}

// License names the API license.
type License struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Server is a base URL the API is reachable at.
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Tag groups operations.
type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PathItem holds the operations of one path, keyed by lowercase method.
type PathItem map[string]*OperationObject

// OperationObject is one rendered operation.
type OperationObject struct {
	Tags        []string                   `json:"tags,omitempty"`
	Summary     string                     `json:"summary,omitempty"`
	Description string                     `json:"description,omitempty"`
	OperationID string                     `json:"operationId,omitempty"`
	Parameters  []ParameterObject          `json:"parameters,omitempty"`
	RequestBody *RequestBody               `json:"requestBody,omitempty"`
	Responses   map[string]*ResponseObject `json:"responses"`
	Implemented *bool                      `json:"x-implemented,omitempty"`
}

// ParameterObject is a path or query parameter.
type ParameterObject struct {
	Name        string  `json:"name"`
	In          string  `json:"in"`
	Description string  `json:"description,omitempty"`
	Required    bool    `json:"required"`
	Schema      *Schema `json:"schema"`
	Example     any     `json:"example,omitempty"`
}

// RequestBody describes an operation's body.
type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

// ResponseObject describes one response status.
type ResponseObject struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

// MediaType binds a schema to a content type.
type MediaType struct {
	Schema  *Schema `json:"schema,omitempty"`
	Example any     `json:"example,omitempty"`
}

// Components holds reusable schemas.
type Components struct {
	Schemas map[string]*Schema `json:"schemas,omitempty"`
}

// Schema is the subset of JSON Schema this API needs.
type Schema struct {
	Ref                  string             `json:"$ref,omitempty"`
	Type                 string             `json:"type,omitempty"`
	Format               string             `json:"format,omitempty"`
	Description          string             `json:"description,omitempty"`
	Enum                 []string           `json:"enum,omitempty"`
	Pattern              string             `json:"pattern,omitempty"`
	MaxLength            *int               `json:"maxLength,omitempty"`
	MinLength            *int               `json:"minLength,omitempty"`
	Example              any                `json:"example,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	OneOf                []*Schema          `json:"oneOf,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty"`
}

// String returns a string schema.
func String(description string, example any) *Schema {
	return &Schema{Type: "string", Description: description, Example: example}
}

// Integer returns an integer schema.
func Integer(description string, example any) *Schema {
	return &Schema{Type: "integer", Description: description, Example: example}
}

// Enum returns a string schema restricted to values.
func Enum(description string, example string, values ...string) *Schema {
	return &Schema{Type: "string", Description: description, Example: example, Enum: values}
}

// Array returns an array schema of items.
func Array(items *Schema) *Schema {
	return &Schema{Type: "array", Items: items}
}

// Object returns a closed object schema.
func Object(properties map[string]*Schema, required ...string) *Schema {
	closed := false
	return &Schema{Type: "object", Properties: properties, Required: required, AdditionalProperties: &closed}
}

// Ref points at a component schema.
func Ref(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

// WithPattern sets a regular expression constraint.
func (s *Schema) WithPattern(p string) *Schema {
	s.Pattern = p
	return s
}

// WithMaxLength sets a length ceiling.
func (s *Schema) WithMaxLength(n int) *Schema {
	s.MaxLength = &n
	return s
}

// WithFormat sets the format hint.
func (s *Schema) WithFormat(f string) *Schema {
	s.Format = f
	return s
}
