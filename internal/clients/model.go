package clients

import (
	"strings"
	"time"
)

// ClientType is the kind of local authority.
type ClientType string

const (
	ClientTypeMairie        ClientType = "MAIRIE"
	ClientTypeCCAS          ClientType = "CCAS"
	ClientTypeSyndicat      ClientType = "SYNDICAT"
	ClientTypeCentreLoisirs ClientType = "CENTRE_LOISIRS"
)

// ClientTypes lists every ClientType in declaration order.
func ClientTypes() []ClientType {
	return []ClientType{ClientTypeMairie, ClientTypeCCAS, ClientTypeSyndicat, ClientTypeCentreLoisirs}
}

// Valid reports whether t is a declared client type.
func (t ClientType) Valid() bool {
	for _, v := range ClientTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// AccountingSystem is the software the authority keeps its books in.
type AccountingSystem string

const (
	AccountingMagnus         AccountingSystem = "MAGNUS"
	AccountingCiril          AccountingSystem = "CIRIL"
	AccountingSegilog        AccountingSystem = "SEGILOG"
	AccountingBergerLevrault AccountingSystem = "BERGER_LEVRAULT"
	AccountingJVS            AccountingSystem = "JVS"
	AccountingCosoluce       AccountingSystem = "COSOLUCE"
	AccountingOther          AccountingSystem = "OTHER"
)

// AccountingSystems lists every AccountingSystem in declaration order.
func AccountingSystems() []AccountingSystem {
	return []AccountingSystem{
		AccountingMagnus, AccountingCiril, AccountingSegilog, AccountingBergerLevrault,
		AccountingJVS, AccountingCosoluce, AccountingOther,
	}
}

// Valid reports whether a is a declared accounting system.
func (a AccountingSystem) Valid() bool {
	for _, v := range AccountingSystems() {
		if v == a {
			return true
		}
	}
	return false
}

// Status tracks where a client is in onboarding.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusArchived  Status = "ARCHIVED"
)

// Statuses lists every Status in declaration order.
func Statuses() []Status {
	return []Status{StatusDraft, StatusPending, StatusActive, StatusSuspended, StatusArchived}
}

// Valid reports whether s is a declared status.
func (s Status) Valid() bool {
	for _, v := range Statuses() {
		if v == s {
			return true
		}
	}
	return false
}

// Client is a local-authority customer of the platform.
type Client struct {
	ID               string           `json:"id"`
	ClientType       ClientType       `json:"clientType"`
	SIRET            string           `json:"siret"`
	Name             string           `json:"name"`
	Address          string           `json:"address"`
	PostalCode       string           `json:"postalCode"`
	City             string           `json:"city"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	AccountingSystem AccountingSystem `json:"accountingSystem,omitempty"`
	CollectivityCode string           `json:"collectivityCode,omitempty"`
	BudgetCode       string           `json:"budgetCode,omitempty"`
	Status           Status           `json:"status"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// ClientSummary is everything the create endpoint echoes back.
type ClientSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NormalizeEmail lowercases and trims an address for storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
