package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/officetrack/attendance-backend-go/internal/domain/leave"
	"github.com/officetrack/attendance-backend-go/internal/domain/notification"
	"github.com/officetrack/attendance-backend-go/internal/handler/http/middleware"
	"github.com/officetrack/attendance-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	MyTracker(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
	notifService notification.Service
}

func NewLeaveHandler(leaveService leave.LeaveService, notifService notification.Service) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
		notifService: notifService,
	}
}

// Create implements LeaveHandler.
func (h *LeaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	result, err := h.leaveService.Request(r.Context(), userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave requested", result)
}

// ListMy implements LeaveHandler.
func (h *LeaveHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	result, err := h.leaveService.ListMyLeaves(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPending implements LeaveHandler.
func (h *LeaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *LeaveHandlerImpl) decide(w http.ResponseWriter, r *http.Request, outcome leave.Status) {
	leaveID := chi.URLParam(r, "id")
	if leaveID == "" {
		response.BadRequest(w, "Leave ID is required", nil)
		return
	}

	deciderID := middleware.UserIDFromContext(r.Context())
	result, notice, err := h.leaveService.Decide(r.Context(), leaveID,
		leave.DecideLeaveRequest{Outcome: string(outcome)}, deciderID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Fire and forget; a delivery failure never affects the decision.
	if notice != nil {
		if err := h.notifService.QueueLeaveDecided(r.Context(), *notice); err != nil {
			slog.Error("Failed to queue leave notification", "leave_id", leaveID, "error", err)
		}
	}

	response.SuccessWithMessage(w, "Leave "+string(outcome), result)
}

// Accept implements LeaveHandler.
func (h *LeaveHandlerImpl) Accept(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.StatusAccepted)
}

// Reject implements LeaveHandler.
func (h *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.StatusRejected)
}

// MyTracker implements LeaveHandler.
func (h *LeaveHandlerImpl) MyTracker(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	result, err := h.leaveService.GetTracker(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
