//go:build e2e

package schedule_test

import (
	"fmt"
	"net/http"
	"testing"

	"lessonbook/internal/domain/user"
	resdto "lessonbook/internal/handler/dto/response"
	"lessonbook/tests/common/authtest"
	"lessonbook/tests/common/dbtest"
	"lessonbook/tests/common/httptest"
	"lessonbook/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const scheduleURL = "/api/teachers/schedule"

type ScheduleE2ETestSuite struct {
	e2e.SharedSuite
}

func TestScheduleE2E(t *testing.T) {
	suite.Run(t, new(ScheduleE2ETestSuite))
}

func (s *ScheduleE2ETestSuite) seedTeacher() (uuid.UUID, string) {
	teacherID := dbtest.CreateTestUser(s.T(), s.DB, "teacher@example.com", "teacher")
	token := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(s.T(), teacherID, user.RoleTeacher)
	return teacherID, token
}

func slotPayload(weekday int, start, end string) map[string]any {
	return map[string]any{"weekday": weekday, "start_time": start, "end_time": end}
}

// ================================================================================
// TestReplaceAndGet
// ================================================================================

func (s *ScheduleE2ETestSuite) TestReplaceAndGet() {
	s.Run("stores a batch and reads it back", func() {
		_, token := s.seedTeacher()

		body := map[string]any{"slots": []any{
			slotPayload(1, "09:00", "12:00"),
			slotPayload(3, "14:00", "18:00"),
		}}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, scheduleURL, body, token)

		var replaced resdto.ScheduleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &replaced)
		s.Len(replaced.Slots, 2)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, scheduleURL, nil, token)

		var fetched resdto.ScheduleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &fetched)
		s.Len(fetched.Slots, 2)
		s.Equal("09:00", fetched.Slots[0].StartTime)
		s.Equal(1, fetched.Slots[0].Weekday)
		s.True(fetched.Slots[0].IsActive)
	})

	s.Run("second replace swaps the whole schedule", func() {
		teacherID, token := s.seedTeacher()

		first := map[string]any{"slots": []any{
			slotPayload(1, "09:00", "12:00"),
			slotPayload(2, "09:00", "12:00"),
		}}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, scheduleURL, first, token)
		s.Equal(http.StatusOK, rec.Code)
		s.Equal(2, dbtest.CountSlots(s.T(), s.DB, teacherID))

		second := map[string]any{"slots": []any{slotPayload(5, "10:00", "11:00")}}
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPut, scheduleURL, second, token)

		var replaced resdto.ScheduleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &replaced)
		s.Len(replaced.Slots, 1)
		s.Equal(5, replaced.Slots[0].Weekday)
		s.Equal(1, dbtest.CountSlots(s.T(), s.DB, teacherID))
	})

	s.Run("inactive slots are stored but flagged", func() {
		_, token := s.seedTeacher()

		body := map[string]any{"slots": []any{
			map[string]any{"weekday": 1, "start_time": "09:00", "end_time": "12:00", "is_active": false},
		}}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, scheduleURL, body, token)

		var replaced resdto.ScheduleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &replaced)
		s.Len(replaced.Slots, 1)
		s.False(replaced.Slots[0].IsActive)
	})
}

// ================================================================================
// TestOverlappingBatchRejected
// ================================================================================

func (s *ScheduleE2ETestSuite) TestOverlappingBatchRejected() {
	s.Run("overlapping active slots reject the whole batch", func() {
		teacherID, token := s.seedTeacher()

		existing := map[string]any{"slots": []any{slotPayload(1, "09:00", "12:00")}}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, scheduleURL, existing, token)
		s.Equal(http.StatusOK, rec.Code)

		overlapping := map[string]any{"slots": []any{
			slotPayload(2, "09:00", "12:00"),
			slotPayload(2, "11:00", "14:00"),
		}}
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPut, scheduleURL, overlapping, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")

		// Nothing from the rejected batch may land; the old schedule survives.
		s.Equal(1, dbtest.CountSlots(s.T(), s.DB, teacherID))

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, scheduleURL, nil, token)
		var fetched resdto.ScheduleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &fetched)
		s.Len(fetched.Slots, 1)
		s.Equal(1, fetched.Slots[0].Weekday)
	})

	s.Run("inactive slots may overlap active ones", func() {
		_, token := s.seedTeacher()

		body := map[string]any{"slots": []any{
			slotPayload(1, "09:00", "12:00"),
			map[string]any{"weekday": 1, "start_time": "10:00", "end_time": "13:00", "is_active": false},
		}}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, scheduleURL, body, token)

		var replaced resdto.ScheduleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &replaced)
		s.Len(replaced.Slots, 2)
	})
}

// ================================================================================
// TestValidation
// ================================================================================

func (s *ScheduleE2ETestSuite) TestValidation() {
	cases := []struct {
		name  string
		slots []any
	}{
		{name: "empty slots", slots: []any{}},
		{name: "weekday out of range", slots: []any{slotPayload(7, "09:00", "12:00")}},
		{name: "inverted window", slots: []any{slotPayload(1, "12:00", "09:00")}},
		{name: "malformed time", slots: []any{slotPayload(1, "9am", "12:00")}},
		{name: "cross-midnight window", slots: []any{slotPayload(1, "22:00", "02:00")}},
	}

	for i, tc := range cases {
		s.Run(fmt.Sprintf("rejects %s", tc.name), func() {
			teacherID := dbtest.CreateTestUser(s.T(), s.DB, fmt.Sprintf("teacher%d@example.com", i), "teacher")
			token := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(s.T(), teacherID, user.RoleTeacher)

			rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, scheduleURL,
				map[string]any{"slots": tc.slots}, token)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			s.Equal(0, dbtest.CountSlots(s.T(), s.DB, teacherID))
		})
	}
}

// ================================================================================
// TestRoleEnforcement
// ================================================================================

func (s *ScheduleE2ETestSuite) TestRoleEnforcement() {
	s.Run("students cannot touch teacher schedules", func() {
		studentID := dbtest.CreateTestUser(s.T(), s.DB, "student@example.com", "student")
		token := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(s.T(), studentID, user.RoleStudent)

		body := map[string]any{"slots": []any{slotPayload(1, "09:00", "12:00")}}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, scheduleURL, body, token)
		s.Equal(http.StatusForbidden, rec.Code)
		s.Contains(rec.Body.String(), "Insufficient permissions")

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, scheduleURL, nil, token)
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("unauthenticated requests are rejected", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, scheduleURL, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestConflictCheck
// ================================================================================

func (s *ScheduleE2ETestSuite) TestConflictCheck() {
	s.Run("reports overlap with an existing slot", func() {
		_, token := s.seedTeacher()

		body := map[string]any{"slots": []any{slotPayload(1, "09:00", "12:00")}}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, scheduleURL, body, token)
		s.Equal(http.StatusOK, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			scheduleURL+"/conflicts?weekday=1&start_time=11:00&end_time=13:00", nil, token)

		var conflicts resdto.ConflictCheckResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &conflicts)
		s.True(conflicts.HasConflict)
		s.Len(conflicts.Slots, 1)
	})

	s.Run("reports no overlap for a free window", func() {
		_, token := s.seedTeacher()

		body := map[string]any{"slots": []any{slotPayload(1, "09:00", "12:00")}}
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, scheduleURL, body, token)
		s.Equal(http.StatusOK, rec.Code)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			scheduleURL+"/conflicts?weekday=2&start_time=11:00&end_time=13:00", nil, token)

		var conflicts resdto.ConflictCheckResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &conflicts)
		s.False(conflicts.HasConflict)
		s.Empty(conflicts.Slots)
	})
}
