package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sentinel-energy/uncertainty-cascade/internal/api/models"
	"github.com/sentinel-energy/uncertainty-cascade/internal/archive"
)

// ListTechnologies handles GET /api/v1/technologies
func ListTechnologies(c *gin.Context) {
	archiveFile := c.Query("archive_file")
	if archiveFile == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "archive_file is required",
			},
		})
		return
	}

	arch, err := archive.LoadJSON(archiveFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_ARCHIVE",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"technologies": arch.Technologies(),
		"years":        arch.Years(),
	})
}
