package app

import (
	"github.com/soft-m/softm-api/internal/apidocs"
	"github.com/soft-m/softm-api/internal/clients"
)

// APIVersion is reported in the documentation.
const APIVersion = "1.0"

// APIDocument describes the served routes followed by the planned ones.
func APIDocument() *apidocs.Document {
	ops := append(clients.Operations(), apidocs.PlannedOperations()...)
	return apidocs.Build(apidocs.Config{
		Info: apidocs.Info{
			Title:       "SOFT-M API",
			Description: apidocs.Overview,
			Version:     APIVersion,
			Contact:     &apidocs.Contact{Name: "SOFT-M Team", Email: "contact@soft-m.fr"},
		},
		Servers: []apidocs.Server{{URL: APIPrefix, Description: "Current host"}},
		Tags:    apidocs.Tags,
	}, ops)
}
