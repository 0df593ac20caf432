package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/knowbaseai/knowbase/internal/models"
)

// StatsHandler serves the knowledge base statistics endpoint.
type StatsHandler struct {
	stats StatsProvider
	log   *logrus.Logger
}

// NewStatsHandler creates a StatsHandler with the given service and logger.
func NewStatsHandler(stats StatsProvider, log *logrus.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, log: log}
}

// GetStats handles GET /api/v1/stats.
//
// Query parameters:
//   - include_details: attach the detailed breakdown section
//   - start, end: restrict the scan to documents created in the given range
func (h *StatsHandler) GetStats(c *gin.Context) {
	includeDetails, err := strconv.ParseBool(c.DefaultQuery("include_details", "false"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "include_details must be a boolean")

		return
	}

	start, err := parseDate(c.Query("start"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	end, err := parseDate(c.Query("end"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if start != nil && end != nil && end.Before(*start) {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "end precedes start")

		return
	}

	req := models.StatsRequest{
		IncludeDetails: includeDetails,
		DateRange:      models.DateFilter{Start: start, End: end},
	}

	report, err := h.stats.GetStats(c.Request.Context(), req)
	if err != nil {
		h.log.WithError(err).Error("building stats report")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "stats retrieval failed")

		return
	}

	h.log.WithFields(logrus.Fields{
		"action": "stats.get", "total_items": report.TotalItems, "include_details": includeDetails,
	}).Info("audit")

	c.JSON(http.StatusOK, report)
}
