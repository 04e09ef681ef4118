package apidocs

import "net/http"

// Operation is one row of the route description table.
type Operation struct {
	Method      string
	Path        string
	Tag         string
	Summary     string
	Description string
	OperationID string
	Params      []Param
	Request     *Schema
	Responses   []Response
	Implemented bool
}

// Param is a path or query parameter.
type Param struct {
	Name        string
	In          string
	Description string
	Required    bool
	Schema      *Schema
	Example     any
}

// Response is one possible outcome of an operation.
type Response struct {
	Status      int
	Description string
	Schema      *Schema
	Example     any
}

// Decorator stamps repeatable metadata onto an Operation.
type Decorator func(*Operation)

// Apply returns op with every decorator applied in order.
func Apply(op Operation, decorators ...Decorator) Operation {
	for _, d := range decorators {
		if d != nil {
			d(&op)
		}
	}
	return op
}

// Compose bundles several decorators into one.
func Compose(decorators ...Decorator) Decorator {
	return func(op *Operation) {
		for _, d := range decorators {
			if d != nil {
				d(op)
			}
		}
	}
}

// WithResponse adds a single response, replacing any existing one for status.
func WithResponse(status int, description string, schema *Schema) Decorator {
	return func(op *Operation) {
		for i := range op.Responses {
			if op.Responses[i].Status == status {
				op.Responses[i] = Response{Status: status, Description: description, Schema: schema}
				return
			}
		}
		op.Responses = append(op.Responses, Response{Status: status, Description: description, Schema: schema})
	}
}

// Standard response descriptions.
const (
	DescSuccess  = "Success"
	DescCreated  = "Created successfully"
	DescDeleted  = "Deleted"
	DescInvalid  = "Invalid request data"
	DescNotFound = "Resource not found"
	DescConflict = "Resource already exists"
)

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func errorResponse(status int, description string) Decorator {
	return WithResponse(status, description, Ref(ErrorSchemaName))
}

// GetResponse documents 200 and 404.
func GetResponse(schema *Schema, description string) Decorator {
	return Compose(
		WithResponse(http.StatusOK, orDefault(description, DescSuccess), schema),
		errorResponse(http.StatusNotFound, DescNotFound),
	)
}

// PostResponse documents 201, 400 and 409.
func PostResponse(schema *Schema, description string) Decorator {
	return Compose(
		WithResponse(http.StatusCreated, orDefault(description, DescCreated), schema),
		errorResponse(http.StatusBadRequest, DescInvalid),
		errorResponse(http.StatusConflict, DescConflict),
	)
}

// PutResponse documents 200, 400 and 404.
func PutResponse(schema *Schema, description string) Decorator {
	return Compose(
		WithResponse(http.StatusOK, orDefault(description, DescSuccess), schema),
		errorResponse(http.StatusBadRequest, DescInvalid),
		errorResponse(http.StatusNotFound, DescNotFound),
	)
}

// PatchResponse documents 200, 400 and 404; schema may be nil.
func PatchResponse(schema *Schema, description string) Decorator {
	return PutResponse(schema, description)
}

// DeleteResponse documents 204 and 404.
func DeleteResponse(description string) Decorator {
	return Compose(
		WithResponse(http.StatusNoContent, orDefault(description, DescDeleted), nil),
		errorResponse(http.StatusNotFound, DescNotFound),
	)
}

// ListResponse documents 200 for a list endpoint.
func ListResponse(schema *Schema, description string) Decorator {
	return WithResponse(http.StatusOK, orDefault(description, DescSuccess), schema)
}

// ExampleID is shown wherever an identifier is documented.
const ExampleID = "3f1c2b8e-5d4a-4c7b-9e2f-1a6b8c0d9e7f"

// IDParam documents a required UUID path parameter.
func IDParam(name, description string) Decorator {
	return func(op *Operation) {
		op.Params = append(op.Params, Param{
			Name:        name,
			In:          "path",
			Description: description,
			Required:    true,
			Schema:      String("", nil).WithFormat("uuid"),
			Example:     ExampleID,
		})
	}
}

// GetByID is IDParam plus GetResponse.
func GetByID(param, paramDescription string, schema *Schema, description string) Decorator {
	return Compose(IDParam(param, paramDescription), GetResponse(schema, description))
}

// PutByID is IDParam plus PutResponse.
func PutByID(param, paramDescription string, schema *Schema, description string) Decorator {
	return Compose(IDParam(param, paramDescription), PutResponse(schema, description))
}

// DeleteByID is IDParam plus DeleteResponse.
func DeleteByID(param, paramDescription, description string) Decorator {
	return Compose(IDParam(param, paramDescription), DeleteResponse(description))
}
