package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
)

// ListRunsRequest represents query parameters for listing import runs
type ListRunsRequest struct {
	Limit int `form:"limit" json:"limit" binding:"omitempty,min=1,max=100" jsonschema:"minimum=1,maximum=100"`
}

// ListRunsResponse represents the response for listing import runs
type ListRunsResponse struct {
	Runs  []database.ImportRun `json:"runs" jsonschema:"required"`
	Total int                  `json:"total" jsonschema:"required"`
}

// ListRuns returns the most recent import runs
// @Summary List import runs
// @Description Returns the most recent import runs, newest first
// @Tags import
// @Produce json
// @Param limit query int false "Number of runs to return" default(20) minimum(1) maximum(100)
// @Success 200 {object} ListRunsResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /import/runs [get]
func (h *PricingHandler) ListRuns(c *gin.Context) {
	var req ListRunsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if req.Limit == 0 {
		req.Limit = 20
	}

	runs, err := h.runs.ListImportRuns(c.Request.Context(), req.Limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list import runs")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list import runs"})
		return
	}

	c.JSON(http.StatusOK, ListRunsResponse{Runs: runs, Total: len(runs)})
}
