package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/pagination"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	ManualEntry(w http.ResponseWriter, r *http.Request)
	GetLatest(w http.ResponseWriter, r *http.Request)
	GetStatus(w http.ResponseWriter, r *http.Request)
	Log(w http.ResponseWriter, r *http.Request)
	ExportLog(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Clock in decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Clock out decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

// ManualEntry implements AttendanceHandler.
func (h *attendanceHandlerImpl) ManualEntry(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Manual entry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.ManualEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded", result)
}

// GetLatest implements AttendanceHandler. data is omitted when the
// employee has never clocked in.
func (h *attendanceHandlerImpl) GetLatest(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	result, err := h.attendanceService.GetLatest(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if result == nil {
		response.Success(w, nil)
		return
	}

	response.Success(w, result)
}

// GetStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	result, err := h.attendanceService.GetStatus(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Log implements AttendanceHandler.
func (h *attendanceHandlerImpl) Log(w http.ResponseWriter, r *http.Request) {
	query := logQueryFrom(r)

	result, err := h.attendanceService.QueryLog(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Paginated(w, pagination.New(result, r.URL))
}

// ExportLog implements AttendanceHandler.
func (h *attendanceHandlerImpl) ExportLog(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ExportLog(r.Context(), logQueryFrom(r), format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := response.File(w, result.Filename, format, result.Table); err != nil {
		// Headers are already sent; the client sees a truncated file.
		slog.Error("Failed to write attendance export", "error", err, "filename", result.Filename)
	}
}

func logQueryFrom(r *http.Request) attendance.LogQuery {
	q := r.URL.Query()

	query := attendance.LogQuery{Page: queryInt(r, "page")}
	if date := q.Get("date"); date != "" {
		query.Date = &date
	}
	if departmentID := q.Get("department_id"); departmentID != "" {
		query.DepartmentID = &departmentID
	}
	return query
}
