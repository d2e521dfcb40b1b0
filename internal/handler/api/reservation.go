package api

import (
	"net/http"
	"time"

	reqdto "lessonbook/internal/handler/dto/request"
	resdto "lessonbook/internal/handler/dto/response"
	"lessonbook/internal/handler/httperr"
	"lessonbook/internal/handler/middleware"
	"lessonbook/internal/pkg/config"
	"lessonbook/internal/pkg/errs"
	"lessonbook/internal/usecase/commands"
	"lessonbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds     commands.ReservationCommands
	q        queries.ReservationQueries
	calendar queries.CalendarQueries
	booking  config.BookingConfig
}

func NewReservationHandler(
	cmds commands.ReservationCommands,
	q queries.ReservationQueries,
	calendar queries.CalendarQueries,
	booking config.BookingConfig,
) *ReservationHandler {
	return &ReservationHandler{
		cmds:     cmds,
		q:        q,
		calendar: calendar,
		booking:  booking,
	}
}

// @Summary Create reservation
// @Description Book a lesson in one of the teacher's available windows
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.CreateReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	studentID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	startsAt, err := req.StartsAt(h.booking.Location())
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reserve date or time", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), commands.CreateReservationInput{
		CourseID:  req.CourseID,
		TeacherID: req.TeacherID,
		StartsAt:  startsAt,
	}, studentID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCreateReservationResult(result))
}

// @Summary List own reservations
// @Description List reservations where the caller is the teacher or student
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationListResponse
// @Failure 401 {object} map[string]string
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	items, err := h.q.ListByActor(c.Request.Context(), actorID, role)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list reservations", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationList(items))
}

// @Summary Get reservation
// @Description Get a reservation by ID (parties only)
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	view, err := h.q.GetByID(c.Request.Context(), actorID, role, id)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Update reservation status
// @Description Mark one side of the reservation completed
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationStatusRequest true "Status update request"
// @Success 200 {object} resdto.UpdateReservationStatusResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/status [patch]
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req reqdto.UpdateReservationStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	// A teacher can only complete the teacher side, a student the student side.
	if req.CompletingRole() != role {
		respondUsecaseError(c, errs.ErrForbidden)
		return
	}

	result, err := h.cmds.MarkComplete(c.Request.Context(), id, actorID, role, req.TrimmedNotes())
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, &resdto.UpdateReservationStatusResponse{
		ID:               id,
		State:            string(result.State),
		IsFullyCompleted: result.IsFullyCompleted,
	})
}

// @Summary Cancel reservation
// @Description Cancel the reservation for both parties and refund one lesson
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest false "Cancel request"
// @Success 200 {object} resdto.CancelReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	var req reqdto.CancelReservationRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
			return
		}
	}

	result, err := h.cmds.Cancel(c.Request.Context(), id, actorID, role, req.TrimmedReason())
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, &resdto.CancelReservationResponse{
		ID:              id,
		RefundedLessons: result.RefundedLessons,
	})
}

// @Summary Get remaining lesson balance
// @Description Remaining lesson units the student holds for a course
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param course_id query string true "Course ID"
// @Success 200 {object} resdto.RemainingLessonsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /reservations/balance [get]
func (h *ReservationHandler) Balance(c *gin.Context) {
	studentID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}

	courseID, err := uuid.Parse(c.Query("course_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid course ID format", nil)
		return
	}

	balance, err := h.q.Balance(c.Request.Context(), studentID, courseID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLedgerBalanceView(balance))
}

// @Summary Get reservation calendar
// @Description Week or month view of the caller's schedule
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param view query string true "Calendar view (week or month)"
// @Param date query string false "Anchor date (YYYY-MM-DD, default today)"
// @Success 200 {object} resdto.CalendarResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /reservations/calendar [get]
func (h *ReservationHandler) Calendar(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	anchor := time.Now().In(h.booking.Location())
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, h.booking.Location())
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
			return
		}
		anchor = parsed
	}

	view := c.DefaultQuery("view", queries.CalendarViewWeek)
	result, err := h.calendar.GetCalendar(c.Request.Context(), actorID, role, view, anchor)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCalendarView(result))
}
