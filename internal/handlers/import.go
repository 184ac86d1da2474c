package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/importer"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/resolvers"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/resources"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/storage"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/usecase"
)

// multipartOverhead leaves room for boundaries and part headers
const multipartOverhead = 64 << 10

// ImportPrices imports a price file
// @Summary Import prices
// @Description Imports a CSV or XLSX price file row by row. Rows that fail are reported with a reason code; the rest are upserted.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Price file (.csv or .xlsx)"
// @Success 201 {object} types.BatchReport "All rows imported"
// @Success 200 {object} types.BatchReport "Some rows imported"
// @Failure 400 {object} ErrorResponse "No file sent"
// @Failure 413 {object} ErrorResponse "File too large"
// @Failure 415 {object} ErrorResponse "Unsupported format"
// @Failure 422 {object} types.BatchReport "No rows imported"
// @Failure 503 {object} ErrorResponse "Too many imports in progress"
// @Router /import/prices [post]
func (h *PricingHandler) ImportPrices(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.tooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No file was sent"})
		return
	}
	if fh.Size > h.maxUploadBytes {
		h.tooLarge(c)
		return
	}

	format, err := usecase.FormatFromFilename(fh.Filename)
	if err != nil {
		c.JSON(http.StatusUnsupportedMediaType, ErrorResponse{
			Error: fmt.Sprintf("Unsupported format: %s. Use .csv or .xlsx", filepath.Ext(fh.Filename)),
		})
		return
	}

	content, err := readUpload(fh)
	if err != nil {
		h.logger.Error().Err(err).Str("filename", fh.Filename).Msg("Failed to read upload")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read upload"})
		return
	}

	ctx := c.Request.Context()
	info := usecase.RunInfo{
		RunID:    usecase.NewRunID(),
		Filename: fh.Filename,
		Format:   format,
	}

	if h.archive != nil {
		key, checksum, err := h.archive.Save(ctx, storage.Upload{
			RunID:        info.RunID,
			OriginalName: fh.Filename,
			Format:       string(format),
			ContentType:  fh.Header.Get("Content-Type"),
			Content:      content,
		})
		if err != nil {
			h.logger.Warn().Err(err).Str("run_id", info.RunID).Msg("Upload not archived")
		} else {
			info.ArchivePath = &key
			info.Checksum = &checksum
		}
	}

	source, closeSource, err := usecase.OpenRowSource(bytes.NewReader(content), format)
	defer closeSource()
	if err != nil {
		h.logger.Warn().Err(err).Str("filename", fh.Filename).Msg("Import file rejected")
		c.JSON(http.StatusUnprocessableEntity, types.BatchReport{
			RunID:   info.RunID,
			Success: false,
			Message: fmt.Sprintf("Import aborted: %v", err),
			Errors:  []types.RowErrorEntry{},
			Status:  types.StatusError,
		})
		return
	}

	svc := importer.NewService(
		resolvers.NewSet(h.refs, h.noSeasonLabel),
		resources.NewPricesResource(h.prices, h.logger),
		h.logger,
	)
	// a started batch runs to completion even if the client goes away
	report := usecase.NewImportPrices(source, svc, h.runs, info, h.logger).Perform(context.WithoutCancel(ctx))

	c.JSON(StatusCode(report.Status), report)
}

func (h *PricingHandler) tooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
		Error: fmt.Sprintf("File exceeds the maximum size of %d bytes", h.maxUploadBytes),
	})
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
