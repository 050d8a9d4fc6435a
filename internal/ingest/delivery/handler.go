package delivery

import (
	"errors"
	"net/http"
	"strconv"

	authdomain "jobtrail-backend/internal/auth/domain"
	"jobtrail-backend/internal/ingest/usecase"

	"github.com/gin-gonic/gin"
)

type IngestHandler struct {
	ingestUsecase usecase.IngestUsecase
}

func NewIngestHandler(ingestUsecase usecase.IngestUsecase) *IngestHandler {
	return &IngestHandler{
		ingestUsecase: ingestUsecase,
	}
}

func currentUserID(c *gin.Context) (string, bool) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return "", false
	}
	userData, ok := user.(*authdomain.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user data"})
		return "", false
	}
	return userData.ID, true
}

// POST /api/gmail/ingest?days=&limit=
func (h *IngestHandler) Ingest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	days := 0
	limit := 0
	if v := c.Query("days"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			days = parsed
		}
	}
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	result, err := h.ingestUsecase.IngestForUser(c.Request.Context(), userID, days, limit)
	if err != nil {
		if errors.Is(err, usecase.ErrNoMailboxLinked) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "no_gmail_link"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"imported":  result.Imported,
		"scanned":   result.Scanned,
		"skippedBy": result.SkippedBy,
		"usedQuery": result.UsedQuery,
	})
}

// POST /api/gmail/diagnose
func (h *IngestHandler) Diagnose(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rows, err := h.ingestUsecase.Diagnose(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNoMailboxLinked) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "no_gmail_link"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "rows": rows})
}
