package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/knowbaseai/knowbase/internal/models"
)

// IngestionHandler serves the ingestion history endpoint.
type IngestionHandler struct {
	ingestion IngestionHistoryProvider
	log       *logrus.Logger
}

// NewIngestionHandler creates an IngestionHandler with the given store and logger.
func NewIngestionHandler(ingestion IngestionHistoryProvider, log *logrus.Logger) *IngestionHandler {
	return &IngestionHandler{ingestion: ingestion, log: log}
}

// GetHistory handles GET /api/v1/ingestion/history.
func (h *IngestionHandler) GetHistory(c *gin.Context) {
	history, err := h.ingestion.GetIngestionHistory(c.Request.Context())
	if err != nil {
		if errors.Is(err, models.ErrIngestionHistoryNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "no ingestion history recorded")

			return
		}

		h.log.WithError(err).Error("reading ingestion history")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "ingestion.history"}).Info("audit")

	c.JSON(http.StatusOK, history)
}
