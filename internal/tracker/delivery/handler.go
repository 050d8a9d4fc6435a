package delivery

import (
	"net/http"

	authdomain "jobtrail-backend/internal/auth/domain"
	trackerdto "jobtrail-backend/internal/tracker/dto"
	"jobtrail-backend/internal/tracker/usecase"

	"github.com/gin-gonic/gin"
)

type TrackerHandler struct {
	trackerUsecase usecase.TrackerUsecase
}

func NewTrackerHandler(trackerUsecase usecase.TrackerUsecase) *TrackerHandler {
	return &TrackerHandler{
		trackerUsecase: trackerUsecase,
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

// GET /api/applications?q=
func (h *TrackerHandler) ListApplications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	apps, err := h.trackerUsecase.List(userID, c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, trackerdto.ApplicationsResponse{
		Applications: apps,
		Total:        len(apps),
	})
}

// GET /api/applications/:id
func (h *TrackerHandler) GetApplication(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	app, err := h.trackerUsecase.Get(userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if app == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}

	c.JSON(http.StatusOK, app)
}

// POST /api/applications
func (h *TrackerHandler) CreateApplication(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req trackerdto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app, err := h.trackerUsecase.Create(userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, app)
}

// PATCH /api/applications/:id
func (h *TrackerHandler) UpdateApplication(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req trackerdto.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app, err := h.trackerUsecase.Update(userID, c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if app == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}

	c.JSON(http.StatusOK, app)
}

// GET /api/applications/:id/emails
func (h *TrackerHandler) ListApplicationEmails(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	emails, err := h.trackerUsecase.ListEmails(userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if emails == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"emails": emails, "total": len(emails)})
}

// DELETE /api/applications/:id
func (h *TrackerHandler) DeleteApplication(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.trackerUsecase.Delete(userID, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
