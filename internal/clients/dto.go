package clients

import "encoding/json"

// CreateClientRequest is the body accepted by POST /clients.
// Status is decoded so callers sending it are not rejected, but it never
// reaches storage: new clients always start as DRAFT.
type CreateClientRequest struct {
	ClientType       ClientType       `json:"clientType" validate:"clienttype"`
	SIRET            string           `json:"siret" validate:"siret"`
	Name             string           `json:"name" validate:"required,max=255"`
	Address          string           `json:"address" validate:"required,max=255"`
	PostalCode       string           `json:"postalCode" validate:"postalcode"`
	City             string           `json:"city" validate:"required,max=100"`
	Email            string           `json:"email" validate:"contactemail"`
	Phone            string           `json:"phone" validate:"frphone"`
	AccountingSystem AccountingSystem `json:"accountingSystem,omitempty" validate:"omitempty,accountingsystem"`
	CollectivityCode string           `json:"collectivityCode,omitempty" validate:"omitempty,max=15"`
	BudgetCode       string           `json:"budgetCode,omitempty" validate:"omitempty,max=15"`

	Status json.RawMessage `json:"status,omitempty" validate:"-"`
}

// toClient builds the record to persist. Status is forced to DRAFT.
func (r CreateClientRequest) toClient(id string) Client {
	return Client{
		ID:               id,
		ClientType:       r.ClientType,
		SIRET:            r.SIRET,
		Name:             r.Name,
		Address:          r.Address,
		PostalCode:       r.PostalCode,
		City:             r.City,
		Email:            NormalizeEmail(r.Email),
		Phone:            r.Phone,
		AccountingSystem: r.AccountingSystem,
		CollectivityCode: r.CollectivityCode,
		BudgetCode:       r.BudgetCode,
		Status:           StatusDraft,
	}
}
