package apidocs

import (
	"sort"
	"strconv"
	"strings"
)

// ErrorSchemaName is the component every error response points at.
const ErrorSchemaName = "Error"

// Config is the document-level metadata.
type Config struct {
	Info    Info
	Servers []Server
	Tags    []Tag
}

// Build renders the route table into an OpenAPI document. Operations with
// the same method and path keep the last definition.
func Build(cfg Config, ops []Operation) *Document {
	doc := &Document{
		OpenAPI: "3.0.3",
		Info:    cfg.Info,
		Servers: cfg.Servers,
		Tags:    cfg.Tags,
		Paths:   make(map[string]*PathItem),
		Components: Components{Schemas: map[string]*Schema{
			ErrorSchemaName: errorSchema(),
		}},
	}
	for _, op := range ops {
		item, ok := doc.Paths[op.Path]
		if !ok {
			item = &PathItem{}
			doc.Paths[op.Path] = item
		}
		(*item)[strings.ToLower(op.Method)] = render(op)
	}
	return doc
}

func render(op Operation) *OperationObject {
	out := &OperationObject{
		Summary:     op.Summary,
		Description: op.Description,
		OperationID: op.OperationID,
		Responses:   make(map[string]*ResponseObject, len(op.Responses)),
	}
	if op.Tag != "" {
		out.Tags = []string{op.Tag}
	}
	if !op.Implemented {
		planned := false
		out.Implemented = &planned
	}
	for _, p := range op.Params {
		in := p.In
		if in == "" {
			in = "path"
		}
		out.Parameters = append(out.Parameters, ParameterObject{
			Name:        p.Name,
			In:          in,
			Description: p.Description,
			Required:    p.Required || in == "path",
			Schema:      p.Schema,
			Example:     p.Example,
		})
	}
	if op.Request != nil {
		out.RequestBody = &RequestBody{
			Required: true,
			Content:  map[string]MediaType{"application/json": {Schema: op.Request}},
		}
	}
	responses := append([]Response(nil), op.Responses...)
	sort.SliceStable(responses, func(i, j int) bool { return responses[i].Status < responses[j].Status })
	for _, r := range responses {
		obj := &ResponseObject{Description: r.Description}
		if r.Schema != nil || r.Example != nil {
			obj.Content = map[string]MediaType{"application/json": {Schema: r.Schema, Example: r.Example}}
		}
		out.Responses[strconv.Itoa(r.Status)] = obj
	}
	return out
}

func errorSchema() *Schema {
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"statusCode": Integer("HTTP status code", 409),
			"message": {
				Description: "Error message, or one message per failing field",
				OneOf:       []*Schema{String("", nil), Array(String("", nil))},
				Example:     "A client with this SIRET already exists",
			},
			"errors": Array(Object(map[string]*Schema{
				"field":   String("Request field", "siret"),
				"rule":    String("Violated rule", "siret"),
				"message": String("Human readable message", "SIRET must contain exactly 14 digits"),
			})),
		},
		Required: []string{"statusCode", "message"},
	}
}
