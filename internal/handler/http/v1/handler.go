package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/dispatch_alerts/internal/config"
	"github.com/shenikar/dispatch_alerts/internal/models"
	"github.com/shenikar/dispatch_alerts/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	statusService service.StatusService
	logger        *logrus.Logger
	validate      *validator.Validate
	cfg           *config.Config
}

func NewHandler(statusService service.StatusService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		statusService: statusService,
		logger:        logger,
		validate:      validator.New(),
		cfg:           cfg,
	}
}

// @Summary Get leaderboard
// @Description Aggregated call counts and durations of tracked units over a window. Requires API key when keys are configured.
// @Tags Leaderboard
// @Produce json
// @Security ApiKeyAuth
// @Param window query string false "Aggregation window" Enums(day, week, month, year, alltime) default(day)
// @Success 200 {object} LeaderboardResponse
// @Failure 400 {object} map[string]string "Invalid window"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /leaderboard [get]
func (h *Handler) getLeaderboard(c *gin.Context) {
	log := h.logger.WithField("method", "getLeaderboard")

	var query LeaderboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}
	query.Window = strings.ToLower(query.Window)
	if err := h.validate.Struct(query); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w := models.WindowDay
	if query.Window != "" {
		w = models.Window(query.Window)
	}

	lb, err := h.statusService.Leaderboard(c.Request.Context(), w)
	if err != nil {
		log.WithError(err).Error("Failed to build leaderboard in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelToLeaderboardResponse(lb))
}

// @Summary Get current shift statistics
// @Description In-memory statistics of the shift in progress. Requires API key when keys are configured.
// @Tags Shift
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} ShiftResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /shift [get]
func (h *Handler) getShift(c *gin.Context) {
	log := h.logger.WithField("method", "getShift")

	stats, err := h.statusService.CurrentShift(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get shift stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelToShiftResponse(stats))
}

// @Summary List live assignments
// @Description Units currently assigned to calls with their status logs. Requires API key when keys are configured.
// @Tags Assignments
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} AssignmentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /assignments [get]
func (h *Handler) listAssignments(c *gin.Context) {
	log := h.logger.WithField("method", "listAssignments")

	items, err := h.statusService.Assignments(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list assignments from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToAssignmentResponses(items))
}

// @Summary Get last completed run of a unit
// @Description The most recent finished run of a unit since process start. Requires API key when keys are configured.
// @Tags Assignments
// @Produce json
// @Security ApiKeyAuth
// @Param unit path string true "Unit ID"
// @Success 200 {object} RunResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No completed run"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /units/{unit}/last-run [get]
func (h *Handler) getLastRun(c *gin.Context) {
	unit := strings.ToUpper(strings.TrimSpace(c.Param("unit")))
	log := h.logger.WithField("method", "getLastRun").WithField("unit", unit)

	run, err := h.statusService.LastRun(c.Request.Context(), unit)
	if errors.Is(err, service.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no completed run"})
		return
	}
	if err != nil {
		log.WithError(err).Error("Failed to get last run from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelToRunResponse(run))
}

// @Summary Get live leaderboard state
// @Description Armed flag, window, target channels and tracked message ids. Requires API key when keys are configured.
// @Tags Leaderboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} LiveStateResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /live [get]
func (h *Handler) getLiveState(c *gin.Context) {
	log := h.logger.WithField("method", "getLiveState")

	state, err := h.statusService.LiveState(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get live state from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelToLiveStateResponse(state))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
