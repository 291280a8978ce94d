package employeehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"hrpayroll/internal/domain/employee"
	"hrpayroll/internal/domain/payroll"
	"hrpayroll/internal/platform/metrics"
	"hrpayroll/internal/transport/http/api"
	"hrpayroll/internal/transport/http/middleware"
	"hrpayroll/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
	Metrics *metrics.Collector
	Logger  *slog.Logger
}

func NewHandler(svc *employee.Service, collector *metrics.Collector, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Service: svc, Metrics: collector, Logger: logger}
}

var acceptedKinds = []string{"agent", "trainer", "formateur"}

type employeePayload struct {
	Kind                string   `json:"kind"`
	Name                string   `json:"name"`
	BirthDate           string   `json:"birthDate"`
	HireDate            string   `json:"hireDate"`
	BaseSalary          *float64 `json:"baseSalary"`
	ResponsibilityBonus *float64 `json:"responsibilityBonus"`
	OvertimeHours       *float64 `json:"overtimeHours"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{employeeID}", h.handleGet)
		r.Delete("/{employeeID}", h.handleDelete)
		r.Get("/{employeeID}/payslip", h.handlePayslip)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 100, 500)
	summaries := h.Service.Summaries()
	w.Header().Set("X-Total-Count", strconv.Itoa(len(summaries)))
	api.Success(w, shared.Page(summaries, page), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	validator := shared.NewValidator()
	validator.Required("kind", payload.Kind, "is required")
	validator.Enum("kind", payload.Kind, acceptedKinds, "must be agent or trainer")
	validator.Required("name", payload.Name, "is required")
	birthDate, _ := validator.Date("birthDate", payload.BirthDate)
	var hireDate time.Time
	if payload.HireDate != "" {
		hireDate, _ = validator.Date("hireDate", payload.HireDate)
	}
	if payload.BaseSalary == nil {
		validator.Add("baseSalary", "is required")
	}
	validator.NonNegative("baseSalary", payload.BaseSalary)
	validator.NonNegative("responsibilityBonus", payload.ResponsibilityBonus)
	validator.NonNegative("overtimeHours", payload.OvertimeHours)
	if validator.Reject(w, requestID) {
		return
	}
	kind, err := employee.ParseKind(payload.Kind)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	fields := employee.Fields{
		Name:       payload.Name,
		BirthDate:  birthDate,
		HireDate:   hireDate,
		BaseSalary: *payload.BaseSalary,
	}
	var hired employee.Employee
	switch kind {
	case employee.KindTrainer:
		hired, err = h.Service.HireTrainer(r.Context(), fields, valueOrZero(payload.OvertimeHours))
	default:
		hired, err = h.Service.HireAgent(r.Context(), fields, valueOrZero(payload.ResponsibilityBonus))
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.Hired()
	}
	h.persist(r)

	// Described from the hired value: a concurrent delete may already have
	// removed it from the roster.
	api.Created(w, h.Service.Describe(hired), requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	summary, err := h.Service.Summary(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	if err := h.Service.Remove(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.Removed()
	}
	h.persist(r)
	api.Success(w, map[string]any{"id": id, "removed": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	doc, err := h.Service.Payslip(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := payroll.RenderPayslipPDF(&buf, doc); err != nil {
		h.Logger.ErrorContext(r.Context(), "payslip render failed", "id", id, "err", err)
		api.Fail(w, http.StatusInternalServerError, "payslip_failed", "unable to render payslip", middleware.GetRequestID(r.Context()))
		return
	}
	if h.Metrics != nil {
		h.Metrics.PayslipIssued()
	}
	if err := api.Attachment(w, "application/pdf", fmt.Sprintf("payslip-%d.pdf", id), buf.Bytes()); err != nil {
		h.Logger.WarnContext(r.Context(), "payslip write failed", "id", id, "err", err)
	}
}

func (h *Handler) employeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "employeeID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "employee id must be a positive integer", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return id, true
}

// persist writes the roster after a mutation. A failed write is logged and
// retried by the save on shutdown. A client hanging up does not cancel it.
func (h *Handler) persist(r *http.Request) {
	if err := h.Service.Save(context.WithoutCancel(r.Context())); err != nil {
		h.Logger.WarnContext(r.Context(), "roster save failed", "err", err, "requestId", middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, employee.ErrValidation):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
	default:
		h.Logger.ErrorContext(r.Context(), "employee request failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}

func valueOrZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
