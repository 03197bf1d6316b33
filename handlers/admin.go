package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yusufkaramustafa/Timesheet-App/repository"
	"github.com/yusufkaramustafa/Timesheet-App/services"
	"github.com/yusufkaramustafa/Timesheet-App/validation"
)

// exportTimeout bounds a whole export request, including the all-users
// archive assembly.
const exportTimeout = 60 * time.Second

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	zipContentType  = "application/zip"
)

type AdminHandler struct {
	users      repository.UserRepository
	timesheets repository.TimesheetRepository
	stats      *services.StatsService
	export     *services.ExportService
}

func NewAdminHandler(users repository.UserRepository, timesheets repository.TimesheetRepository, stats *services.StatsService, export *services.ExportService) *AdminHandler {
	return &AdminHandler{users: users, timesheets: timesheets, stats: stats, export: export}
}

// GetUsers handles GET /admin/users
func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		log.Printf("admin: list users failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	type userEntry struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	out := make([]userEntry, len(users))
	for i, u := range users {
		out[i] = userEntry{ID: u.ID, Username: u.Username, Role: u.Role}
	}
	c.JSON(http.StatusOK, out)
}

// GetAllTimesheets handles GET /admin/timesheets
func (h *AdminHandler) GetAllTimesheets(c *gin.Context) {
	timesheets, err := h.timesheets.ListAll(c.Request.Context())
	if err != nil {
		log.Printf("admin: list timesheets failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		log.Printf("admin: list users failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	usernames := make(map[uint]string, len(users))
	for _, u := range users {
		usernames[u.ID] = u.Username
	}

	type adminEntry struct {
		TimesheetResponse
		Username string `json:"username"`
	}
	out := make([]adminEntry, len(timesheets))
	for i, ts := range timesheets {
		out[i] = adminEntry{
			TimesheetResponse: toResponse(ts),
			Username:          usernames[ts.UserID],
		}
	}
	c.JSON(http.StatusOK, out)
}

// GetStatistics handles GET /admin/statistics?range=week|month|year
func (h *AdminHandler) GetStatistics(c *gin.Context) {
	rng := c.DefaultQuery("range", "week")

	stats, err := h.stats.Statistics(c.Request.Context(), rng)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Range must be week, month or year"})
			return
		}
		log.Printf("admin: statistics failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportTimesheets handles GET /admin/export/timesheet
// Query: user_id, date_from, date_to, export_all=true
func (h *AdminHandler) ExportTimesheets(c *gin.Context) {
	from, to, err := validation.ParseDateRange(c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), exportTimeout)
	defer cancel()

	if c.Query("export_all") == "true" {
		filename, data, err := h.export.ExportAll(ctx, from, to)
		if err != nil {
			if errors.Is(err, services.ErrNoData) {
				c.JSON(http.StatusNotFound, gin.H{"error": "No data found"})
				return
			}
			log.Printf("admin: export all failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		sendAttachment(c, filename, zipContentType, data)
		return
	}

	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	filename, data, err := h.export.ExportUser(ctx, uint(userID), from, to)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("admin: export user %d failed: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	sendAttachment(c, filename, xlsxContentType, data)
}

func sendAttachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
