package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/knowbaseai/knowbase/internal/models"
)

// maxBulkDocuments caps the number of documents accepted in one bulk request.
const maxBulkDocuments = 1000

// DocumentHandler serves knowledge document CRUD endpoints.
type DocumentHandler struct {
	docs DocumentProvider
	log  *logrus.Logger
}

// NewDocumentHandler creates a DocumentHandler with the given service and logger.
func NewDocumentHandler(docs DocumentProvider, log *logrus.Logger) *DocumentHandler {
	return &DocumentHandler{docs: docs, log: log}
}

// List handles GET /api/v1/documents.
func (h *DocumentHandler) List(c *gin.Context) {
	source := c.Query("source")
	contentType := c.Query("content_type")
	limit := parseInt(c.DefaultQuery("limit", "50"), 50)
	offset := parseOffset(c.DefaultQuery("offset", "0"))

	docs, hasMore, err := h.docs.ListDocuments(c.Request.Context(), source, contentType, limit, offset)
	if err != nil {
		h.log.WithError(err).Error("listing documents")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "document.list", "source": source, "count": len(docs)}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"documents": docs, "has_more": hasMore})
}

// Get handles GET /api/v1/documents/:id.
func (h *DocumentHandler) Get(c *gin.Context) {
	docID := c.Param("id")
	if err := validatePathID(docID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	doc, err := h.docs.GetDocument(c.Request.Context(), docID)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "document not found")

			return
		}

		h.log.WithError(err).Error("getting document")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "document.get", "document_id": docID}).Info("audit")

	c.JSON(http.StatusOK, doc)
}

// Create handles POST /api/v1/documents.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req models.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

		return
	}

	doc, err := h.docs.CreateDocument(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			respondError(c, http.StatusConflict, ErrCodeConflict, "document with this ID already exists")

			return
		}

		h.log.WithError(err).Error("creating document")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "document.create", "document_id": doc.ID}).Info("audit")

	c.JSON(http.StatusCreated, doc)
}

// Delete handles DELETE /api/v1/documents/:id.
func (h *DocumentHandler) Delete(c *gin.Context) {
	docID := c.Param("id")
	if err := validatePathID(docID); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return
	}

	if err := h.docs.DeleteDocument(c.Request.Context(), docID); err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			respondError(c, http.StatusNotFound, ErrCodeNotFound, "document not found")

			return
		}

		h.log.WithError(err).Error("deleting document")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "document.delete", "document_id": docID}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// BulkIngest handles POST /api/v1/documents/bulk.
func (h *DocumentHandler) BulkIngest(c *gin.Context) {
	var req struct {
		Documents []models.CreateDocumentRequest `json:"documents"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	if len(req.Documents) == 0 {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, "documents must not be empty")

		return
	}

	if len(req.Documents) > maxBulkDocuments {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, "too many documents in one request")

		return
	}

	for i := range req.Documents {
		if err := req.Documents[i].Validate(); err != nil {
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())

			return
		}
	}

	written, err := h.docs.BulkIngest(c.Request.Context(), req.Documents)
	if err != nil {
		h.log.WithError(err).Error("bulk ingesting documents")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	h.log.WithFields(logrus.Fields{"action": "document.bulk_ingest", "written": written}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"written": written})
}
