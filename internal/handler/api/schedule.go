package api

import (
	"net/http"
	"strconv"

	reqdto "lessonbook/internal/handler/dto/request"
	resdto "lessonbook/internal/handler/dto/response"
	"lessonbook/internal/handler/httperr"
	"lessonbook/internal/handler/middleware"
	"lessonbook/internal/usecase/commands"
	"lessonbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	cmds commands.ScheduleCommands
	q    queries.ScheduleQueries
}

func NewScheduleHandler(cmds commands.ScheduleCommands, q queries.ScheduleQueries) *ScheduleHandler {
	return &ScheduleHandler{cmds: cmds, q: q}
}

// @Summary Replace weekly schedule
// @Description Replace the teacher's entire weekly availability in one atomic operation
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReplaceScheduleRequest true "Replace schedule request"
// @Success 200 {object} resdto.ScheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /teachers/schedule [put]
func (h *ScheduleHandler) Replace(c *gin.Context) {
	teacherID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}

	var req reqdto.ReplaceScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	if err := h.cmds.ReplaceSlots(c.Request.Context(), teacherID, req.ToInputs()); err != nil {
		respondUsecaseError(c, err)
		return
	}

	views, err := h.q.GetSlots(c.Request.Context(), teacherID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load schedule", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromScheduleSlotViews(views))
}

// @Summary Get weekly schedule
// @Description Get the teacher's own weekly availability slots
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ScheduleResponse
// @Failure 401 {object} map[string]string
// @Router /teachers/schedule [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	teacherID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}

	views, err := h.q.GetSlots(c.Request.Context(), teacherID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load schedule", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromScheduleSlotViews(views))
}

// @Summary Check schedule conflicts
// @Description Preview what an intended window would collide with
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param weekday query int true "Weekday (0=Sunday)"
// @Param start_time query string true "Window start (HH:MM)"
// @Param end_time query string true "Window end (HH:MM)"
// @Success 200 {object} resdto.ConflictCheckResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /teachers/schedule/conflicts [get]
func (h *ScheduleHandler) CheckConflicts(c *gin.Context) {
	teacherID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}

	weekday, err := strconv.Atoi(c.Query("weekday"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid weekday", nil)
		return
	}

	view, err := h.q.CheckConflicts(c.Request.Context(), teacherID, weekday, c.Query("start_time"), c.Query("end_time"))
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromConflictCheckView(view))
}
