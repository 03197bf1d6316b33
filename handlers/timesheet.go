package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yusufkaramustafa/Timesheet-App/models"
	"github.com/yusufkaramustafa/Timesheet-App/repository"
	"github.com/yusufkaramustafa/Timesheet-App/validation"
)

type TimesheetHandler struct {
	timesheets repository.TimesheetRepository
}

func NewTimesheetHandler(timesheets repository.TimesheetRepository) *TimesheetHandler {
	return &TimesheetHandler{timesheets: timesheets}
}

// TimesheetResponse is the wire form of a timesheet entry: date without a
// time component, created_at as a UTC timestamp.
type TimesheetResponse struct {
	ID          uint    `json:"id"`
	UserID      uint    `json:"user_id"`
	Date        string  `json:"date"`
	Project     string  `json:"project"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at"`
}

func toResponse(ts models.Timesheet) TimesheetResponse {
	return TimesheetResponse{
		ID:          ts.ID,
		UserID:      ts.UserID,
		Date:        ts.Date.Format(models.DateLayout),
		Project:     ts.Project,
		Hours:       ts.Hours,
		Description: ts.Description,
		CreatedAt:   ts.CreatedAt.UTC().Format(models.TimestampLayout),
	}
}

func toResponses(timesheets []models.Timesheet) []TimesheetResponse {
	out := make([]TimesheetResponse, len(timesheets))
	for i, ts := range timesheets {
		out[i] = toResponse(ts)
	}
	return out
}

// validationStatus maps a validation failure to a 400 with its message.
// Anything else is an internal error with a generic body.
func validationStatus(c *gin.Context, err error) {
	switch {
	case errors.Is(err, validation.ErrInvalidProject),
		errors.Is(err, validation.ErrInvalidHours),
		errors.Is(err, validation.ErrInvalidDate),
		errors.Is(err, validation.ErrInvalidDateRange),
		errors.Is(err, validation.ErrMissingField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("timesheet: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

type CreateTimesheetRequest struct {
	Date        *string  `json:"date"`
	Project     *string  `json:"project"`
	Hours       *float64 `json:"hours"`
	Description *string  `json:"description"`
}

type UpdateTimesheetRequest struct {
	Date        *string  `json:"date"`
	Project     *string  `json:"project"`
	Hours       *float64 `json:"hours"`
	Description *string  `json:"description"`
}

// GetProjects handles GET /timesheet/projects
func (h *TimesheetHandler) GetProjects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"projects": models.ProjectOptions})
}

// Create handles POST /timesheet/
func (h *TimesheetHandler) Create(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req CreateTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Date == nil || req.Project == nil || req.Hours == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date, project and hours are required"})
		return
	}

	validated, err := validation.ValidateTimesheet(validation.TimesheetInput{
		Date:        *req.Date,
		Project:     *req.Project,
		Hours:       *req.Hours,
		Description: req.Description,
	})
	if err != nil {
		validationStatus(c, err)
		return
	}

	ts, err := h.timesheets.Create(c.Request.Context(), user.ID, validated)
	if err != nil {
		log.Printf("timesheet: create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Timesheet created successfully",
		"timesheet": toResponse(*ts),
	})
}

// List handles GET /timesheet/
func (h *TimesheetHandler) List(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	timesheets, err := h.timesheets.ListByOwner(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("timesheet: list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"timesheets": toResponses(timesheets)})
}

// Update handles PUT /timesheet/:id
func (h *TimesheetHandler) Update(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Timesheet not found"})
		return
	}

	var req UpdateTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	validated, err := validation.ValidateTimesheetUpdate(validation.TimesheetUpdate{
		Date:        req.Date,
		Project:     req.Project,
		Hours:       req.Hours,
		Description: req.Description,
	})
	if err != nil {
		validationStatus(c, err)
		return
	}

	ts, err := h.timesheets.Update(c.Request.Context(), uint(id), user.ID, validated.Fields)
	if err != nil {
		log.Printf("timesheet: update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if ts == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Timesheet not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Timesheet updated successfully",
		"timesheet": toResponse(*ts),
	})
}

// Delete handles DELETE /timesheet/:id
func (h *TimesheetHandler) Delete(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Timesheet not found"})
		return
	}

	deleted, err := h.timesheets.Delete(c.Request.Context(), uint(id), user.ID)
	if err != nil {
		log.Printf("timesheet: delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Timesheet not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Timesheet deleted successfully"})
}
