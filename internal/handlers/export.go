package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/usecase"
)

const exportFilename = "precios_export.csv"

// ExportPricesRequest holds the export filters
type ExportPricesRequest struct {
	RentalLocationID   *int64 `form:"rental_location_id" binding:"omitempty,min=1"`
	RateTypeID         *int64 `form:"rate_type_id" binding:"omitempty,min=1"`
	SeasonDefinitionID *int64 `form:"season_definition_id" binding:"omitempty,min=1"`
	SeasonID           *int64 `form:"season_id" binding:"omitempty,min=1"`
	Unit               *int   `form:"unit" binding:"omitempty,min=1,max=4" jsonschema:"enum=1,enum=2,enum=3,enum=4"`
}

// Filter converts the request into an export filter
func (r ExportPricesRequest) Filter() database.ExportFilter {
	f := database.ExportFilter{
		RentalLocationID:   r.RentalLocationID,
		RateTypeID:         r.RateTypeID,
		SeasonDefinitionID: r.SeasonDefinitionID,
		SeasonID:           r.SeasonID,
	}
	if r.Unit != nil {
		u := types.TimeUnit(*r.Unit)
		f.TimeMeasurement = &u
	}
	return f
}

// ExportPrices downloads the price list as CSV
// @Summary Export prices
// @Description Exports prices in the import layout, grouped by category, location, rate type and time unit
// @Tags export
// @Produce text/csv
// @Param rental_location_id query int false "Rental location id"
// @Param rate_type_id query int false "Rate type id"
// @Param season_definition_id query int false "Season definition id"
// @Param season_id query int false "Season id"
// @Param unit query int false "Time unit (1 months, 2 days, 3 hours, 4 minutes)" Enums(1, 2, 3, 4)
// @Success 200 {file} file "CSV file"
// @Failure 400 {object} ErrorResponse "Invalid filter"
// @Failure 500 {object} ErrorResponse "Export failed"
// @Router /export/prices.csv [get]
func (h *PricingHandler) ExportPrices(c *gin.Context) {
	var req ExportPricesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var buf bytes.Buffer
	rows, err := usecase.NewExportPrices(h.export, h.noSeasonLabel, h.logger).
		Perform(c.Request.Context(), &buf, req.Filter())
	if err != nil {
		h.logger.Error().Err(err).Msg("Price export failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Export failed"})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Header("X-Export-Rows", strconv.Itoa(rows))
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
