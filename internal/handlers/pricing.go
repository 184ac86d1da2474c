package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/storage"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

// PricingHandler serves the import, export and run history endpoints
type PricingHandler struct {
	refs           database.ReferenceStore
	prices         database.PriceRepository
	runs           database.ImportRunStore
	export         database.ExportSource
	archive        *storage.Archive
	noSeasonLabel  string
	maxUploadBytes int64
	logger         zerolog.Logger
}

// PricingDeps holds the collaborators of PricingHandler. Archive may be nil.
type PricingDeps struct {
	References     database.ReferenceStore
	Prices         database.PriceRepository
	Runs           database.ImportRunStore
	Export         database.ExportSource
	Archive        *storage.Archive
	NoSeasonLabel  string
	MaxUploadBytes int64
	Logger         zerolog.Logger
}

// NewPricingHandler creates the pricing endpoints
func NewPricingHandler(deps PricingDeps) *PricingHandler {
	return &PricingHandler{
		refs:           deps.References,
		prices:         deps.Prices,
		runs:           deps.Runs,
		export:         deps.Export,
		archive:        deps.Archive,
		noSeasonLabel:  deps.NoSeasonLabel,
		maxUploadBytes: deps.MaxUploadBytes,
		logger:         deps.Logger.With().Str("component", "handlers").Logger(),
	}
}

// StatusCode maps a batch status to the HTTP response code
func StatusCode(status types.ImportStatus) int {
	switch status {
	case types.StatusSuccess:
		return http.StatusCreated
	case types.StatusPartialSuccess:
		return http.StatusOK
	case types.StatusError:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the body of non-report failures
type ErrorResponse struct {
	Error string `json:"error"`
}
