//go:build e2e

package reservation_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"lessonbook/internal/domain/user"
	"lessonbook/internal/handler/dto/request"
	resdto "lessonbook/internal/handler/dto/response"
	"lessonbook/tests/common/authtest"
	"lessonbook/tests/common/dbtest"
	"lessonbook/tests/common/httptest"
	"lessonbook/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	scheduleURL     = "/api/teachers/schedule"
)

type ReservationE2ETestSuite struct {
	e2e.SharedSuite
}

func TestReservationE2E(t *testing.T) {
	suite.Run(t, new(ReservationE2ETestSuite))
}

// bookingFixture is a fully bookable world: a teacher with an open slot on
// the booking weekday, an active course, a student, and a ledger entry.
type bookingFixture struct {
	teacherID    uuid.UUID
	studentID    uuid.UUID
	courseID     uuid.UUID
	entryID      uuid.UUID
	teacherToken string
	studentToken string
	date         string
}

// seedBooking prepares a booking one week out so the lead time never gets in
// the way. The teacher's slot spans 08:00-22:00 on that weekday.
func (s *ReservationE2ETestSuite) seedBooking(total, used int) bookingFixture {
	t := s.T()
	helper := authtest.NewJWTHelper(s.Config.JWT)

	teacherID := dbtest.CreateTestUser(t, s.DB, "teacher@example.com", "teacher")
	studentID := dbtest.CreateTestUser(t, s.DB, "student@example.com", "student")
	courseID := dbtest.CreateTestCourse(t, s.DB, teacherID, "Conversation 60min", 60)
	entryID := dbtest.CreateLedgerEntry(t, s.DB, studentID, courseID, "order-0001", total, used)

	fx := bookingFixture{
		teacherID:    teacherID,
		studentID:    studentID,
		courseID:     courseID,
		entryID:      entryID,
		teacherToken: helper.GenerateToken(t, teacherID, user.RoleTeacher),
		studentToken: helper.GenerateToken(t, studentID, user.RoleStudent),
	}

	bookingDay := time.Now().In(s.Config.Booking.Location()).AddDate(0, 0, 7)
	fx.date = bookingDay.Format("2006-01-02")

	slots := map[string]any{"slots": []any{map[string]any{
		"weekday":    int(bookingDay.Weekday()),
		"start_time": "08:00",
		"end_time":   "22:00",
	}}}
	rec := httptest.PerformRequest(t, s.Router, http.MethodPut, scheduleURL, slots, fx.teacherToken)
	s.Require().Equal(http.StatusOK, rec.Code, "seeding the teacher schedule failed")

	return fx
}

func (fx bookingFixture) createBody(reserveTime string) map[string]any {
	return map[string]any{
		"course_id":    fx.courseID,
		"teacher_id":   fx.teacherID,
		"reserve_date": fx.date,
		"reserve_time": reserveTime,
	}
}

func (s *ReservationE2ETestSuite) book(fx bookingFixture, reserveTime string) resdto.CreateReservationResponse {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, fx.createBody(reserveTime), fx.studentToken)

	var created resdto.CreateReservationResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
	return created
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationE2ETestSuite) TestCreate() {
	s.Run("books a lesson and consumes one ledger unit", func() {
		fx := s.seedBooking(10, 0)

		created := s.book(fx, "10:00")
		s.NotEqual(uuid.Nil, created.ID)
		s.Equal(60*time.Minute, created.EndsAt.Sub(created.StartsAt))
		s.Equal(10, created.RemainingLessons.Total)
		s.Equal(1, created.RemainingLessons.Used)
		s.Equal(9, created.RemainingLessons.Remaining)

		s.Equal(1, dbtest.LedgerQuantityUsed(s.T(), s.DB, fx.entryID))
		s.Equal(1, dbtest.CountNotificationJobs(s.T(), s.DB, "reservation.booked"))
	})

	s.Run("consumes the oldest ledger entry first", func() {
		fx := s.seedBooking(1, 1) // first purchase, already spent
		freshEntry := dbtest.CreateLedgerEntry(s.T(), s.DB, fx.studentID, fx.courseID, "order-0002", 5, 0)

		created := s.book(fx, "10:00")
		s.Equal(4, created.RemainingLessons.Remaining)

		s.Equal(1, dbtest.LedgerQuantityUsed(s.T(), s.DB, fx.entryID))
		s.Equal(1, dbtest.LedgerQuantityUsed(s.T(), s.DB, freshEntry))
	})

	s.Run("rejects an overlapping booking", func() {
		fx := s.seedBooking(10, 0)
		s.book(fx, "10:00")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, fx.createBody("10:30"), fx.studentToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")

		// The rejected attempt must not burn a lesson.
		s.Equal(1, dbtest.LedgerQuantityUsed(s.T(), s.DB, fx.entryID))
	})

	s.Run("rejects booking with no remaining balance", func() {
		fx := s.seedBooking(1, 0)
		s.book(fx, "10:00")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, fx.createBody("13:00"), fx.studentToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("rejects booking outside available hours", func() {
		fx := s.seedBooking(10, 0)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, fx.createBody("23:00"), fx.studentToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		s.Equal(0, dbtest.LedgerQuantityUsed(s.T(), s.DB, fx.entryID))
	})

	s.Run("rejects booking below the minimum lead time", func() {
		fx := s.seedBooking(10, 0)

		tooSoon := time.Now().In(s.Config.Booking.Location()).Add(23 * time.Hour)
		body := map[string]any{
			"course_id":    fx.courseID,
			"teacher_id":   fx.teacherID,
			"reserve_date": tooSoon.Format("2006-01-02"),
			"reserve_time": tooSoon.Format("15:04"),
		}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, body, fx.studentToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("rejects booking on an inactive course", func() {
		fx := s.seedBooking(10, 0)
		dbtest.DeactivateCourse(s.T(), s.DB, fx.courseID)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, fx.createBody("10:00"), fx.studentToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("teachers cannot book lessons", func() {
		fx := s.seedBooking(10, 0)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, fx.createBody("10:00"), fx.teacherToken)
		s.Equal(http.StatusForbidden, rec.Code)
		s.Contains(rec.Body.String(), "Insufficient permissions")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *ReservationE2ETestSuite) TestCancel() {
	s.Run("refunds the consumed unit", func() {
		fx := s.seedBooking(10, 0)
		created := s.book(fx, "10:00")
		s.Equal(1, dbtest.LedgerQuantityUsed(s.T(), s.DB, fx.entryID))

		url := fmt.Sprintf("%s/%s/cancel", reservationsURL, created.ID)
		body := map[string]any{"reason": "sick"}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, url, body, fx.studentToken)

		var cancelled resdto.CancelReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &cancelled)
		s.Equal(1, cancelled.RefundedLessons)

		s.Equal(0, dbtest.LedgerQuantityUsed(s.T(), s.DB, fx.entryID))
		s.Equal(1, dbtest.CountNotificationJobs(s.T(), s.DB, "reservation.cancelled"))

		getURL := fmt.Sprintf("%s/%s", reservationsURL, created.ID)
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, getURL, nil, fx.studentToken)
		var view resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
		s.Equal("cancelled", view.State)
		s.Require().NotNil(view.CancelReason)
		s.Equal("sick", *view.CancelReason)
	})

	s.Run("either party may cancel", func() {
		fx := s.seedBooking(10, 0)
		created := s.book(fx, "10:00")

		url := fmt.Sprintf("%s/%s/cancel", reservationsURL, created.ID)
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, url, nil, fx.teacherToken)

		var cancelled resdto.CancelReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &cancelled)
		s.Equal(0, dbtest.LedgerQuantityUsed(s.T(), s.DB, fx.entryID))
	})

	s.Run("double cancel refunds only once", func() {
		fx := s.seedBooking(10, 0)
		created := s.book(fx, "10:00")

		url := fmt.Sprintf("%s/%s/cancel", reservationsURL, created.ID)
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, url, nil, fx.studentToken)
		s.Equal(http.StatusOK, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, url, nil, fx.studentToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")

		s.Equal(0, dbtest.LedgerQuantityUsed(s.T(), s.DB, fx.entryID))
	})

	s.Run("completion after cancel is rejected", func() {
		fx := s.seedBooking(10, 0)
		created := s.book(fx, "10:00")

		cancelURL := fmt.Sprintf("%s/%s/cancel", reservationsURL, created.ID)
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, cancelURL, nil, fx.studentToken)
		s.Equal(http.StatusOK, rec.Code)

		statusURL := fmt.Sprintf("%s/%s/status", reservationsURL, created.ID)
		body := map[string]any{"status_type": request.StatusTypeStudentComplete}
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, statusURL, body, fx.studentToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("outsiders cannot cancel", func() {
		fx := s.seedBooking(10, 0)
		created := s.book(fx, "10:00")

		otherID := dbtest.CreateTestUser(s.T(), s.DB, "other@example.com", "student")
		otherToken := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(s.T(), otherID, user.RoleStudent)

		url := fmt.Sprintf("%s/%s/cancel", reservationsURL, created.ID)
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, url, nil, otherToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
		s.Equal(1, dbtest.LedgerQuantityUsed(s.T(), s.DB, fx.entryID))
	})
}

// ================================================================================
// TestCompletion
// ================================================================================

func (s *ReservationE2ETestSuite) TestCompletion() {
	s.Run("both sides completing finishes the lesson", func() {
		fx := s.seedBooking(10, 0)
		created := s.book(fx, "10:00")

		statusURL := fmt.Sprintf("%s/%s/status", reservationsURL, created.ID)

		teacherBody := map[string]any{"status_type": request.StatusTypeTeacherComplete}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, statusURL, teacherBody, fx.teacherToken)

		var afterTeacher resdto.UpdateReservationStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &afterTeacher)
		s.False(afterTeacher.IsFullyCompleted)

		studentBody := map[string]any{"status_type": request.StatusTypeStudentComplete, "notes": "great lesson"}
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, statusURL, studentBody, fx.studentToken)

		var afterStudent resdto.UpdateReservationStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &afterStudent)
		s.True(afterStudent.IsFullyCompleted)
		s.Equal("fully_completed", afterStudent.State)

		s.Equal(1, dbtest.CountNotificationJobs(s.T(), s.DB, "reservation.completed"))

		getURL := fmt.Sprintf("%s/%s", reservationsURL, created.ID)
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, getURL, nil, fx.studentToken)
		var view resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
		s.Equal("completed", view.TeacherStatus)
		s.Equal("completed", view.StudentStatus)
		s.Require().NotNil(view.Note)
		s.Equal("great lesson", *view.Note)
	})

	s.Run("a party cannot complete the other side", func() {
		fx := s.seedBooking(10, 0)
		created := s.book(fx, "10:00")

		statusURL := fmt.Sprintf("%s/%s/status", reservationsURL, created.ID)
		body := map[string]any{"status_type": request.StatusTypeTeacherComplete}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, statusURL, body, fx.studentToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})

	s.Run("completing the same side twice is rejected", func() {
		fx := s.seedBooking(10, 0)
		created := s.book(fx, "10:00")

		statusURL := fmt.Sprintf("%s/%s/status", reservationsURL, created.ID)
		body := map[string]any{"status_type": request.StatusTypeTeacherComplete}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, statusURL, body, fx.teacherToken)
		s.Equal(http.StatusOK, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, statusURL, body, fx.teacherToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

// ================================================================================
// TestGetAndList
// ================================================================================

func (s *ReservationE2ETestSuite) TestGetAndList() {
	s.Run("both parties can read the reservation", func() {
		fx := s.seedBooking(10, 0)
		created := s.book(fx, "10:00")

		url := fmt.Sprintf("%s/%s", reservationsURL, created.ID)
		for _, token := range []string{fx.studentToken, fx.teacherToken} {
			rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, token)

			var view resdto.ReservationResponse
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
			s.Equal(created.ID, view.ID)
			s.Equal("pending", view.State)
			s.Equal("student@example.com", view.StudentEmail)
		}
	})

	s.Run("outsiders get 403, unknown ids get 404", func() {
		fx := s.seedBooking(10, 0)
		created := s.book(fx, "10:00")

		otherID := dbtest.CreateTestUser(s.T(), s.DB, "other@example.com", "student")
		otherToken := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(s.T(), otherID, user.RoleStudent)

		url := fmt.Sprintf("%s/%s", reservationsURL, created.ID)
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, otherToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")

		missing := fmt.Sprintf("%s/%s", reservationsURL, uuid.New())
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, missing, nil, fx.studentToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})

	s.Run("list shows only the caller's reservations", func() {
		fx := s.seedBooking(10, 0)
		s.book(fx, "10:00")
		s.book(fx, "13:00")

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, reservationsURL, nil, fx.studentToken)

		var list []*resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &list)
		s.Len(list, 2)

		otherID := dbtest.CreateTestUser(s.T(), s.DB, "other@example.com", "student")
		otherToken := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(s.T(), otherID, user.RoleStudent)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, reservationsURL, nil, otherToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &list)
		s.Empty(list)
	})
}

// ================================================================================
// TestBalance
// ================================================================================

func (s *ReservationE2ETestSuite) TestBalance() {
	s.Run("tracks consumption across bookings and refunds", func() {
		fx := s.seedBooking(3, 0)
		url := fmt.Sprintf("%s/balance?course_id=%s", reservationsURL, fx.courseID)

		var balance resdto.RemainingLessonsResponse
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, fx.studentToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &balance)
		s.Equal(3, balance.Remaining)

		created := s.book(fx, "10:00")
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, fx.studentToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &balance)
		s.Equal(2, balance.Remaining)

		cancelURL := fmt.Sprintf("%s/%s/cancel", reservationsURL, created.ID)
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, cancelURL, nil, fx.studentToken)
		s.Equal(http.StatusOK, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, fx.studentToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &balance)
		s.Equal(3, balance.Remaining)
	})
}

// ================================================================================
// TestCalendar
// ================================================================================

func (s *ReservationE2ETestSuite) TestCalendar() {
	s.Run("week view shows the booking for both parties", func() {
		fx := s.seedBooking(10, 0)
		created := s.book(fx, "10:00")

		url := fmt.Sprintf("%s/calendar?view=week&date=%s", reservationsURL, fx.date)

		var calendar resdto.CalendarResponse
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, fx.studentToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &calendar)
		s.Equal("week", calendar.View)
		s.Len(calendar.Days, 7)

		var found bool
		for _, day := range calendar.Days {
			for _, r := range day.Reservations {
				if r.ID == created.ID {
					found = true
				}
			}
		}
		s.True(found, "booked reservation missing from the week view")

		// Teacher's view carries the availability slots too.
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, fx.teacherToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &calendar)

		var slotDays int
		for _, day := range calendar.Days {
			if len(day.Slots) > 0 {
				slotDays++
			}
		}
		s.Equal(1, slotDays)
	})

	s.Run("rejects a malformed anchor date", func() {
		fx := s.seedBooking(10, 0)

		url := reservationsURL + "/calendar?view=week&date=not-a-date"
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, fx.studentToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date")
	})

	s.Run("rejects an unknown view", func() {
		fx := s.seedBooking(10, 0)

		url := reservationsURL + "/calendar?view=decade"
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, fx.studentToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}
