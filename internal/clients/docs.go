package clients

import (
	"net/http"

	"github.com/soft-m/softm-api/internal/apidocs"
)

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func createClientSchema() *apidocs.Schema {
	return apidocs.Object(map[string]*apidocs.Schema{
		"clientType":       apidocs.Enum("Type de collectivité", "MAIRIE", enumStrings(ClientTypes())...),
		"siret":            apidocs.String("SIRET (14 digits)", "21920063500014").WithPattern(siretPattern.String()),
		"name":             apidocs.String("Raison sociale", "Mairie de Saint-Cloud").WithMaxLength(255),
		"address":          apidocs.String("Adresse", "Place Charles de Gaulle").WithMaxLength(255),
		"postalCode":       apidocs.String("Code postal (5 digits)", "92210").WithPattern(postalCodePattern.String()),
		"city":             apidocs.String("Ville", "Saint-Cloud").WithMaxLength(100),
		"email":            apidocs.String("Email de contact", "contact@mairie-saint-cloud.fr").WithFormat("email"),
		"phone":            apidocs.String("Téléphone", "+33146021234").WithPattern(phonePattern.String()),
		"accountingSystem": apidocs.Enum("Système comptable", "BERGER_LEVRAULT", enumStrings(AccountingSystems())...),
		"collectivityCode": apidocs.String("Code collectivité (max 15 chars)", "COLL92210").WithMaxLength(15),
		"budgetCode":       apidocs.String("Code budget (max 15 chars)", "BUD2024").WithMaxLength(15),
	}, "clientType", "siret", "name", "address", "postalCode", "city", "email", "phone")
}

func summarySchema() *apidocs.Schema {
	return apidocs.Object(map[string]*apidocs.Schema{
		"id":   apidocs.String("Unique identifier", apidocs.ExampleID).WithFormat("uuid"),
		"name": apidocs.String("Raison sociale", "Mairie de Saint-Cloud"),
	}, "id", "name")
}

func clientSchema() *apidocs.Schema {
	s := createClientSchema()
	s.Properties["id"] = apidocs.String("Unique identifier", apidocs.ExampleID).WithFormat("uuid")
	s.Properties["status"] = apidocs.Enum("Onboarding status", "DRAFT", enumStrings(Statuses())...)
	s.Properties["createdAt"] = apidocs.String("Creation time", nil).WithFormat("date-time")
	s.Properties["updatedAt"] = apidocs.String("Last update time", nil).WithFormat("date-time")
	s.Required = append(s.Required, "id", "status")
	return s
}

// Operations describes the routes mounted by MountRoutes.
func Operations() []apidocs.Operation {
	return []apidocs.Operation{
		apidocs.Apply(apidocs.Operation{
			Method:      http.MethodPost,
			Path:        "/clients",
			Tag:         "Clients",
			Summary:     "Create client",
			Description: "Creates a new local authority client. Status is always DRAFT.",
			OperationID: "createClient",
			Request:     createClientSchema(),
			Implemented: true,
		}, apidocs.PostResponse(summarySchema(), "")),
		apidocs.Apply(apidocs.Operation{
			Method:      http.MethodGet,
			Path:        "/clients/{id}",
			Tag:         "Clients",
			Summary:     "Get client by ID",
			Description: "Returns client details",
			OperationID: "getClient",
			Implemented: true,
		}, apidocs.GetByID("id", "Client unique identifier (UUID)", clientSchema(), ""),
			apidocs.WithResponse(http.StatusBadRequest, "Invalid client identifier", apidocs.Ref(apidocs.ErrorSchemaName))),
	}
}
