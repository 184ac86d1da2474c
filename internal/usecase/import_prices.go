// Package usecase runs whole import and export operations on top of the
// row importer and the stores.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/importer"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
)

const instrumentationName = "github.com/KGG-Code/mybooking-prueba-tecnica/internal/usecase"

// RowImporter imports one row, returning nil or a *importer.RowError
type RowImporter interface {
	Import(ctx context.Context, row types.RawPriceRow) error
}

// RunInfo describes the file behind an import run. An empty RunID gets a
// generated one.
type RunInfo struct {
	RunID       string
	Filename    string
	Format      Format
	ArchivePath *string
	Checksum    *string
}

// ImportPrices imports every row of one source and builds the batch report
type ImportPrices struct {
	source   RowSource
	importer RowImporter
	runs     database.ImportRunStore
	info     RunInfo
	logger   zerolog.Logger
	metrics  *importer.MetricsRecorder
	rows     metric.Int64Counter
}

// NewImportPrices creates the batch use case. runs may be nil.
func NewImportPrices(source RowSource, imp RowImporter, runs database.ImportRunStore, info RunInfo, logger zerolog.Logger) *ImportPrices {
	rows, err := otel.Meter(instrumentationName).Int64Counter(
		"pricing.import.rows",
		metric.WithDescription("Rows read by batch imports"),
	)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to create row counter")
	}

	return &ImportPrices{
		source:   source,
		importer: imp,
		runs:     runs,
		info:     info,
		logger:   logger.With().Str("component", "import_prices").Logger(),
		metrics:  importer.NewMetricsRecorder(),
		rows:     rows,
	}
}

// Perform consumes the source in file order. Row failures are collected in
// the report; a decode failure or panic aborts the batch with status error.
func (u *ImportPrices) Perform(ctx context.Context) types.BatchReport {
	start := time.Now()
	runID := u.info.RunID
	if runID == "" {
		runID = NewRunID()
	}
	logger := u.logger.With().Str("run_id", runID).Logger()

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "ImportPrices.Perform")
	defer span.End()
	span.SetAttributes(
		attribute.String("import.run_id", runID),
		attribute.String("import.filename", u.info.Filename),
		attribute.String("import.format", string(u.info.Format)),
	)

	run := &database.ImportRun{
		ID:          runID,
		Filename:    u.info.Filename,
		Format:      string(u.info.Format),
		ArchivePath: u.info.ArchivePath,
		Checksum:    u.info.Checksum,
		StartedAt:   start,
	}
	if u.runs != nil {
		if err := u.runs.CreateImportRun(ctx, run); err != nil {
			logger.Warn().Err(err).Msg("Failed to record import run")
		}
	}

	logger.Info().Str("filename", u.info.Filename).Msg("Starting price import")

	report, err := u.consume(ctx)
	if err != nil {
		logger.Error().Err(err).Int("total", report.Total).Msg("Price import aborted")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		report = types.BatchReport{
			Success:  false,
			Message:  fmt.Sprintf("Import aborted: %v", err),
			Imported: 0,
			Total:    report.Total,
			Errors:   report.Errors,
			Status:   types.StatusError,
		}
	} else {
		report.Status = types.ClassifyStatus(report.Imported, report.Total)
		report.Success = report.Status != types.StatusError
		report.Message = summary(report)
	}
	report.RunID = runID

	span.SetAttributes(
		attribute.Int("import.imported", report.Imported),
		attribute.Int("import.total", report.Total),
		attribute.String("import.status", string(report.Status)),
	)
	u.metrics.RecordBatch(string(report.Status), time.Since(start))

	if u.runs != nil {
		run.Status = string(report.Status)
		run.Imported = report.Imported
		run.Total = report.Total
		run.Message = types.StringPtr(report.Message)
		if err := u.runs.CompleteImportRun(context.WithoutCancel(ctx), run); err != nil {
			logger.Warn().Err(err).Msg("Failed to complete import run")
		}
	}

	logger.Info().
		Int("imported", report.Imported).
		Int("total", report.Total).
		Int("errors", len(report.Errors)).
		Str("status", string(report.Status)).
		Dur("duration", time.Since(start)).
		Msg("Price import finished")

	return report
}

// consume drives the source. The partial report is returned alongside a
// fatal error so the caller can keep the counters read so far.
func (u *ImportPrices) consume(ctx context.Context) (report types.BatchReport, err error) {
	report.Errors = make([]types.RowErrorEntry, 0)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while importing: %v", r)
		}
	}()

	for {
		row, nextErr := u.source.Next()
		if errors.Is(nextErr, io.EOF) {
			return report, nil
		}
		if nextErr != nil {
			return report, fmt.Errorf("failed to read row %d: %w", report.Total+1, nextErr)
		}

		report.Total++
		if u.rows != nil {
			u.rows.Add(ctx, 1)
		}

		importErr := u.importer.Import(ctx, row)
		if importErr == nil {
			report.Imported++
			continue
		}

		entry := types.RowErrorEntry{
			Row:    row.RowNumber,
			Values: row.Values(),
			Reason: string(importer.ReasonUnexpected),
			Detail: importErr.Error(),
		}
		var rowErr *importer.RowError
		if errors.As(importErr, &rowErr) {
			entry.Reason = string(rowErr.Reason)
			entry.Detail = rowErr.Detail
		}
		report.Errors = append(report.Errors, entry)
	}
}

// NewRunID returns a fresh import run id
func NewRunID() string {
	return uuid.NewString()
}

func summary(report types.BatchReport) string {
	switch report.Status {
	case types.StatusSuccess:
		return fmt.Sprintf("Import completed successfully: %d/%d rows imported", report.Imported, report.Total)
	case types.StatusPartialSuccess:
		return fmt.Sprintf("Import partially successful: %d/%d rows imported, %d with errors",
			report.Imported, report.Total, len(report.Errors))
	}
	if report.Total == 0 {
		return "No rows found in file"
	}
	return fmt.Sprintf("No rows could be imported: %d errors found", len(report.Errors))
}
