package settlement

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"divvy/internal/group"
	"divvy/pkg/response"
)

// Handler handles HTTP requests for balances and settlements
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for settlement endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/group/{groupId}", h.ListPayments)
	r.Get("/group/{groupId}/balances", h.Balances)
	r.Get("/group/{groupId}/suggestions", h.Suggestions)
	r.Post("/group/{groupId}/confirm", h.Confirm)

	return r
}

// Balances handles GET /settlements/group/{groupId}/balances
// @Summary      Get every current member's net balance
// @Description  Positive means the group owes the member, negative means the member owes the group
// @Tags         settlements
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]BalanceResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/group/{groupId}/balances [get]
func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.service.Balances(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		writeSettlementError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, balances)
}

// Suggestions handles GET /settlements/group/{groupId}/suggestions
// @Summary      Get the payments that would settle the group
// @Tags         settlements
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=SuggestionsResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/group/{groupId}/suggestions [get]
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.service.Suggestions(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		writeSettlementError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, suggestions)
}

// Confirm handles POST /settlements/group/{groupId}/confirm
// @Summary      Record a suggested settlement as actually paid
// @Tags         settlements
// @Accept       json
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Param        request body ConfirmRequest true "Confirmed transfer"
// @Success      201 {object} response.APIResponse{data=PaymentResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/group/{groupId}/confirm [post]
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	payment, err := h.service.Confirm(r.Context(), chi.URLParam(r, "groupId"), &req)
	if err != nil {
		writeSettlementError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, payment.ToResponse())
}

// ListPayments handles GET /settlements/group/{groupId}
// @Summary      List a group's confirmed settlement payments
// @Tags         settlements
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]PaymentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /settlements/group/{groupId} [get]
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListPayments(r.Context(), chi.URLParam(r, "groupId"))
	if err != nil {
		writeSettlementError(w, err)
		return
	}

	resp := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = p.ToResponse()
	}
	response.JSON(w, http.StatusOK, resp)
}

func writeSettlementError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, group.ErrGroupNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrSelfSettlement),
		errors.Is(err, ErrNonPositiveAmount),
		errors.Is(err, ErrNotGroupMember):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "Failed to process settlement")
	}
}
