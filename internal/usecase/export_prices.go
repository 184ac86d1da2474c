package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/exporter"
)

// ExportPrices writes the filtered price list in the import layout
type ExportPrices struct {
	source        database.ExportSource
	noSeasonLabel string
	logger        zerolog.Logger
}

// NewExportPrices creates the export use case
func NewExportPrices(source database.ExportSource, noSeasonLabel string, logger zerolog.Logger) *ExportPrices {
	return &ExportPrices{
		source:        source,
		noSeasonLabel: noSeasonLabel,
		logger:        logger.With().Str("component", "export_prices").Logger(),
	}
}

// Perform streams the export to w and returns the number of data rows
func (u *ExportPrices) Perform(ctx context.Context, w io.Writer, filter database.ExportFilter) (int, error) {
	start := time.Now()
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "ExportPrices.Perform")
	defer span.End()

	cw := exporter.NewCSVWriter(w, u.noSeasonLabel)
	if err := u.source.ListExportRows(ctx, filter, cw.Write); err != nil {
		span.RecordError(err)
		return cw.Rows(), fmt.Errorf("failed to export prices: %w", err)
	}
	if err := cw.Flush(); err != nil {
		span.RecordError(err)
		return cw.Rows(), fmt.Errorf("failed to write export: %w", err)
	}

	span.SetAttributes(attribute.Int("export.rows", cw.Rows()))
	u.logger.Info().
		Int("rows", cw.Rows()).
		Dur("duration", time.Since(start)).
		Msg("Price export finished")
	return cw.Rows(), nil
}
