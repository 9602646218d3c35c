package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hrpoint/attendance-backend-go/internal/domain/attendance"
	"github.com/hrpoint/attendance-backend-go/internal/domain/employee"
	"github.com/hrpoint/attendance-backend-go/internal/handler/http/response"
	"github.com/hrpoint/attendance-backend-go/internal/pkg/idempotency"
	"github.com/hrpoint/attendance-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const routerTestSecret = "test-secret-key-for-jwt"

// stubAttendanceService returns canned ledger responses so the tests exercise
// routing, auth and the in-flight guard without a database.
type stubAttendanceService struct {
	today     *attendance.AttendanceResponse
	clockIns  int
	clockOuts int
}

func (s *stubAttendanceService) ClockIn(_ context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	s.clockIns++
	return attendance.AttendanceResponse{
		ID:               "rec-1",
		EmployeeID:       employeeID,
		Date:             "2026-08-28",
		FirstClockIn:     "09:00:00",
		NumClockIns:      s.clockIns,
		TotalHoursWorked: "00:00:00",
		ClockedIn:        true,
	}, nil
}

func (s *stubAttendanceService) ResumeClockIn(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	return s.ClockIn(ctx, employeeID)
}

func (s *stubAttendanceService) ClockOut(_ context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	s.clockOuts++
	out := "17:00:00"
	return attendance.AttendanceResponse{
		ID:               "rec-1",
		EmployeeID:       employeeID,
		Date:             "2026-08-28",
		FirstClockIn:     "09:00:00",
		LastClockOut:     &out,
		NumClockIns:      1,
		TotalHoursWorked: "08:00:00",
	}, nil
}

func (s *stubAttendanceService) GetTodayAttendance(_ context.Context, _ string) (*attendance.AttendanceResponse, error) {
	return s.today, nil
}

func (s *stubAttendanceService) FinalizeDay(_ context.Context, _ string) (*attendance.AttendanceResponse, error) {
	return s.today, nil
}

func (s *stubAttendanceService) ResetForNewDay(_ context.Context) error {
	return nil
}

func (s *stubAttendanceService) GetMyAttendance(_ context.Context, _ string, filter attendance.HistoryFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	return attendance.ListAttendanceResponse{Page: filter.Page, Limit: filter.Limit}, nil
}

type stubEmployeeService struct{}

func (s *stubEmployeeService) Create(_ context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{ID: "emp-1", FullName: req.FullName, EmployeeCode: req.EmployeeCode}, nil
}

func (s *stubEmployeeService) GetByID(_ context.Context, id string) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{ID: id}, nil
}

func (s *stubEmployeeService) List(_ context.Context) ([]employee.EmployeeResponse, error) {
	return nil, nil
}

func newTestRouter(t *testing.T, svc *stubAttendanceService) (http.Handler, jwt.Service) {
	t.Helper()
	jwtService := jwt.NewJWTService(routerTestSecret)
	router := NewRouter(
		jwtService,
		NewAttendanceHandler(svc),
		NewEmployeeHandler(&stubEmployeeService{}),
		idempotency.NewMemoryGuard(),
		30*time.Second,
		"test",
	)
	return router, jwtService
}

func accessToken(t *testing.T, jwtService jwt.Service, employeeID string) string {
	t.Helper()
	_, tokenString, err := jwtService.JWTAuth().Encode(map[string]interface{}{
		"employee_id": employeeID,
		"type":        "access",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	return tokenString
}

func doRequest(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func TestClockInEndpoint(t *testing.T) {
	svc := &stubAttendanceService{}
	router, jwtService := newTestRouter(t, svc)
	token := accessToken(t, jwtService, "emp-1")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/clock-in", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := doRequest(router, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	resp := decodeResponse(t, rr)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "emp-1", data["employee_id"])
	assert.Equal(t, true, data["clocked_in"])
	assert.Equal(t, 1, svc.clockIns)
}

func TestClockInEndpoint_NoToken(t *testing.T) {
	svc := &stubAttendanceService{}
	router, _ := newTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/clock-in", nil)
	rr := doRequest(router, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, 0, svc.clockIns)
}

func TestClockInEndpoint_WrongTokenType(t *testing.T) {
	svc := &stubAttendanceService{}
	router, jwtService := newTestRouter(t, svc)

	_, tokenString, err := jwtService.JWTAuth().Encode(map[string]interface{}{
		"employee_id": "emp-1",
		"type":        "refresh",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/clock-in", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rr := doRequest(router, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, 0, svc.clockIns)
}

func TestClockInEndpoint_DuplicateRequestID(t *testing.T) {
	svc := &stubAttendanceService{}
	router, jwtService := newTestRouter(t, svc)
	token := accessToken(t, jwtService, "emp-1")

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/clock-in", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("X-Request-ID", "press-42")
		return doRequest(router, req)
	}

	first := send()
	assert.Equal(t, http.StatusCreated, first.Code)

	retry := send()
	assert.Equal(t, http.StatusConflict, retry.Code)
	assert.Equal(t, 1, svc.clockIns, "the retried press must not reach the ledger")
}

func TestClockOutEndpoint(t *testing.T) {
	svc := &stubAttendanceService{}
	router, jwtService := newTestRouter(t, svc)
	token := accessToken(t, jwtService, "emp-1")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/clock-out", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := doRequest(router, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeResponse(t, rr)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "17:00:00", data["last_clock_out"])
	assert.Equal(t, "08:00:00", data["total_hours_worked"])
}

func TestTodayEndpoint_NoRecordYet(t *testing.T) {
	svc := &stubAttendanceService{today: nil}
	router, jwtService := newTestRouter(t, svc)
	token := accessToken(t, jwtService, "emp-1")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/today", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := doRequest(router, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decodeResponse(t, rr)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Data)
}

func TestMyAttendanceEndpoint_BadDateFilter(t *testing.T) {
	svc := &stubAttendanceService{}
	router, jwtService := newTestRouter(t, svc)
	token := accessToken(t, jwtService, "emp-1")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/my?from=28-08-2026", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := doRequest(router, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	resp := decodeResponse(t, rr)
	assert.False(t, resp.Success)
}
