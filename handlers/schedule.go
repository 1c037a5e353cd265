package handlers

import (
	"net/http"
	"strconv"
	"time"

	"clinicore/middleware"
	"clinicore/models"
	"clinicore/services/schedule"
	"clinicore/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler lets doctors manage their weekly working windows.
type ScheduleHandler struct {
	Service schedule.ScheduleService
	Logger  *zap.Logger
}

func NewScheduleHandler(svc schedule.ScheduleService, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{Service: svc, Logger: logger}
}

// Upsert creates or replaces the caller's window for a weekday.
func (h *ScheduleHandler) Upsert(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid schedule payload", err.Error())
		return
	}

	sched, err := h.Service.Upsert(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sched)
}

// List returns every weekday window of the caller.
func (h *ScheduleHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	schedules, err := h.Service.List(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

// SetAvailability toggles a weekday window on or off without deleting it.
func (h *ScheduleHandler) SetAvailability(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	weekday, err := strconv.Atoi(c.Param("weekday"))
	if err != nil || weekday < 0 || weekday > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weekday must be 0 (Sunday) through 6 (Saturday)"})
		return
	}

	var body struct {
		Available bool `json:"available"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid availability payload", err.Error())
		return
	}

	if err := h.Service.SetAvailable(c.Request.Context(), userID, time.Weekday(weekday), body.Available); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
