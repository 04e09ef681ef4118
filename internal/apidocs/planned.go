package apidocs

import "net/http"

// Tags used across the SOFT-M API.
var Tags = []Tag{
	{Name: "Clients", Description: "Local authorities management"},
	{Name: "Treasury", Description: "Treasury and accounting system configuration"},
	{Name: "Services", Description: "Service types configuration"},
	{Name: "Users", Description: "Users and roles management"},
	{Name: "Schools", Description: "Schools and classes management"},
}

// Overview is the markdown shown at the top of the documentation UI.
const Overview = `## Overview

REST API for SOFT-M - School and extracurricular management system for French local authorities.

## Features

- **Clients**: Manage local authorities (Mairies, CCAS, etc.)
- **Treasury**: Configure treasury and accounting system information
- **Services**: Configure available services (Canteen, Daycare, Leisure Center)
- **Users**: Manage managers and staff
- **Schools**: Manage schools and classes

Operations flagged ` + "`x-implemented: false`" + ` are planned and not served yet.

## Authentication

Not implemented yet.

## Onboarding workflow

1. Create client (POST /clients) → status DRAFT
2. Configure treasury (PUT /clients/{id}/treasury)
3. Create manager (POST /clients/{id}/manager) → status PENDING
4. Manager activates account → status ACTIVE
`

func uuidParam(name, description string) Param {
	return Param{Name: name, In: "path", Description: description, Required: true,
		Schema: String("", nil).WithFormat("uuid"), Example: ExampleID}
}

func queryParam(name, description string, schema *Schema) Param {
	return Param{Name: name, In: "query", Description: description, Schema: schema}
}

// PlannedOperations documents endpoints that are designed but not served.
func PlannedOperations() []Operation {
	object := &Schema{Type: "object"}
	list := Array(object)
	return []Operation{
		Apply(Operation{
			Method: http.MethodGet, Path: "/clients", Tag: "Clients",
			Summary: "List all clients", Description: "Returns a paginated list of clients with filters",
			OperationID: "listClients",
			Params: []Param{
				queryParam("page", "Page number (starts at 1)", Integer("", 1)),
				queryParam("limit", "Items per page (max 100)", Integer("", 20)),
				queryParam("status", "Filter by status", String("", "DRAFT")),
				queryParam("clientType", "Filter by client type", String("", "MAIRIE")),
				queryParam("search", "Search in name, SIRET, or city", String("", "Saint-Cloud")),
			},
		}, ListResponse(list, "")),
		Apply(Operation{
			Method: http.MethodGet, Path: "/clients/lookup/{siret}", Tag: "Clients",
			Summary: "Lookup SIRET", Description: "Checks SIRET in SOFT-M and retrieves INSEE data",
			OperationID: "lookupSiret",
			Params:      []Param{{Name: "siret", In: "path", Description: "SIRET number (14 digits)", Required: true, Schema: String("", "21920063500014")}},
		}, GetResponse(object, "")),
		Apply(Operation{
			Method: http.MethodPatch, Path: "/clients/{id}/status", Tag: "Clients",
			Summary: "Update client status", Description: "Updates the status of a client (SUSPENDED or ARCHIVED only)",
			OperationID: "updateClientStatus",
			Request:     Object(map[string]*Schema{"status": Enum("Target status", "SUSPENDED", "SUSPENDED", "ARCHIVED")}, "status"),
		}, IDParam("id", "Client unique identifier (UUID)"), PatchResponse(nil, "")),
		Apply(Operation{
			Method: http.MethodPut, Path: "/clients/{id}/treasury", Tag: "Treasury",
			Summary: "Configure treasury", Description: "Sets treasury and accounting system information",
			OperationID: "updateTreasury", Request: object,
		}, PutByID("id", "Client unique identifier (UUID)", object, "")),
		Apply(Operation{
			Method: http.MethodGet, Path: "/services/types", Tag: "Services",
			Summary: "List service types", Description: "Returns all service types",
			OperationID: "listServiceTypes",
		}, ListResponse(Array(Enum("", "CANTEEN", "CANTEEN", "DAYCARE", "LEISURE_CENTER", "COMMUNITY_HALL")), "")),
		Apply(Operation{
			Method: http.MethodGet, Path: "/clients/{id}/services", Tag: "Services",
			Summary: "Get client services", Description: "Returns services for a client",
			OperationID: "getClientServices",
		}, GetByID("id", "Client unique identifier (UUID)", list, "")),
		Apply(Operation{
			Method: http.MethodPut, Path: "/clients/{id}/services", Tag: "Services",
			Summary: "Update client services", Description: "Updates services configuration",
			OperationID: "updateClientServices", Request: object,
		}, PutByID("id", "Client unique identifier (UUID)", list, "")),
		Apply(Operation{
			Method: http.MethodGet, Path: "/users/roles", Tag: "Users",
			Summary: "List roles", Description: "Returns all available roles",
			OperationID: "listRoles",
		}, ListResponse(Array(Enum("", "GESTIONNAIRE_MAIRIE", "SUPER_ADMIN", "GESTIONNAIRE_MAIRIE", "AGENT_ECOLE", "CUISINIER")), "")),
		Apply(Operation{
			Method: http.MethodPost, Path: "/clients/{id}/manager", Tag: "Users",
			Summary: "Create manager", Description: "Creates main manager for a client",
			OperationID: "createManager", Request: object,
		}, IDParam("id", "Client unique identifier (UUID)"), PostResponse(object, "")),
		Apply(Operation{
			Method: http.MethodGet, Path: "/clients/{id}/schools", Tag: "Schools",
			Summary: "List schools", Description: "Returns paginated list of schools",
			OperationID: "listSchools",
			Params: []Param{
				uuidParam("id", "Client unique identifier (UUID)"),
				queryParam("schoolType", "Filter by school type", String("", "ELEMENTAIRE")),
				queryParam("schoolStatus", "Filter by school status", String("", "ACTIVE")),
			},
		}, ListResponse(list, "")),
		Apply(Operation{
			Method: http.MethodGet, Path: "/clients/{id}/schools/stats", Tag: "Schools",
			Summary: "Get statistics", Description: "Returns schools, classes, students counts",
			OperationID: "schoolStats",
		}, GetByID("id", "Client unique identifier (UUID)", object, "")),
		Apply(Operation{
			Method: http.MethodPost, Path: "/clients/{id}/schools", Tag: "Schools",
			Summary: "Create school", Description: "Creates a new school",
			OperationID: "createSchool", Request: object,
		}, IDParam("id", "Client unique identifier (UUID)"), PostResponse(object, "")),
		Apply(Operation{
			Method: http.MethodGet, Path: "/schools/{schoolId}", Tag: "Schools",
			Summary: "Get school", Description: "Returns school details", OperationID: "getSchool",
		}, GetByID("schoolId", "School unique identifier (UUID)", object, "")),
		Apply(Operation{
			Method: http.MethodPut, Path: "/schools/{schoolId}", Tag: "Schools",
			Summary: "Update school", Description: "Updates school information",
			OperationID: "updateSchool", Request: object,
		}, PutByID("schoolId", "School unique identifier (UUID)", object, "")),
		Apply(Operation{
			Method: http.MethodDelete, Path: "/schools/{schoolId}", Tag: "Schools",
			Summary: "Delete school", Description: "Soft deletes a school", OperationID: "deleteSchool",
		}, DeleteByID("schoolId", "School unique identifier (UUID)", "")),
		Apply(Operation{
			Method: http.MethodGet, Path: "/schools/{schoolId}/classes", Tag: "Schools",
			Summary: "List classes", Description: "Returns all classes for a school", OperationID: "listClasses",
		}, IDParam("schoolId", "School unique identifier (UUID)"), ListResponse(list, "")),
		Apply(Operation{
			Method: http.MethodPost, Path: "/schools/{schoolId}/classes", Tag: "Schools",
			Summary: "Create class", Description: "Creates a new class",
			OperationID: "createClass", Request: object,
		}, IDParam("schoolId", "School unique identifier (UUID)"), PostResponse(object, "")),
		Apply(Operation{
			Method: http.MethodPut, Path: "/classes/{classId}", Tag: "Schools",
			Summary: "Update class", Description: "Updates class information",
			OperationID: "updateClass", Request: object,
		}, PutByID("classId", "Class unique identifier (UUID)", object, "")),
		Apply(Operation{
			Method: http.MethodDelete, Path: "/classes/{classId}", Tag: "Schools",
			Summary: "Delete class", Description: "Soft deletes a class", OperationID: "deleteClass",
		}, DeleteByID("classId", "Class unique identifier (UUID)", "")),
	}
}
