package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sentinel-energy/uncertainty-cascade/internal/analysis"
	"github.com/sentinel-energy/uncertainty-cascade/internal/api/models"
	"github.com/sentinel-energy/uncertainty-cascade/internal/archive"
	"github.com/sentinel-energy/uncertainty-cascade/internal/model"
)

// CoverageHandler handles archive-coverage queries.
type CoverageHandler struct{}

func NewCoverageHandler() *CoverageHandler {
	return &CoverageHandler{}
}

// RankCoverage handles GET /api/v1/coverage
func (h *CoverageHandler) RankCoverage(c *gin.Context) {
	var req models.CoverageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}

	arch, err := archive.LoadJSON(req.ArchiveFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_ARCHIVE",
				Message: err.Error(),
			},
		})
		return
	}

	ranked := analysis.RankByCompleteness(arch, model.ModelYear(req.Year))
	if len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}

	resp := models.CoverageResponse{Year: req.Year}
	for _, cov := range ranked {
		resp.Coverage = append(resp.Coverage, models.CoverageRow{
			Technology:   cov.Technology,
			Rows:         cov.Rows,
			First:        cov.First,
			Last:         cov.Last,
			Completeness: cov.Completeness,
			MeanValue:    cov.MeanValue,
		})
	}
	c.JSON(http.StatusOK, resp)
}
