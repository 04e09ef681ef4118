package clients

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/soft-m/softm-api/internal/platform/httpx"
)

// MsgSIRETExists is returned verbatim on duplicate SIRET.
const MsgSIRETExists = "A client with this SIRET already exists"

var (
	// ErrNotFound is returned by repositories when no row matches.
	ErrNotFound = fmt.Errorf("client: %w", httpx.ErrNotFound)
	// ErrDuplicateSIRET is returned by repositories when the unique constraint fires.
	ErrDuplicateSIRET = errors.New("client: duplicate siret")
	// ErrSIRETExists is the conflict surfaced to callers.
	ErrSIRETExists = httpx.NewError(http.StatusConflict, MsgSIRETExists, httpx.ErrConflict)
)

func notFound(id string) error {
	return httpx.NewError(http.StatusNotFound, fmt.Sprintf("Client %s not found", id), ErrNotFound)
}

func invalidID(id string) error {
	return httpx.NewError(http.StatusBadRequest, fmt.Sprintf("Validation failed (uuid expected): %s", id), httpx.ErrValidation)
}
