package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/internal/service"
	"github.com/MKhiriev/go-invest-hub/internal/store"
	"github.com/MKhiriev/go-invest-hub/internal/utils"
	"github.com/MKhiriev/go-invest-hub/models"
	"github.com/shopspring/decimal"
)

type investRequest struct {
	ProductID int64           `json:"product_id"`
	Amount    decimal.Decimal `json:"amount"`
}

type depositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

const dateLayout = "2006-01-02"

func (h *Handler) invest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		h.respondMessage(w, r, msgMissingToken, http.StatusUnauthorized)
		return
	}

	var req investRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.respondMessage(w, r, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	investment, err := h.services.InvestmentService.Invest(ctx, userID, req.ProductID, req.Amount)
	if err != nil {
		var boundsErr *service.AmountBoundsError
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			h.respondMessage(w, r, "product_id and amount required", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrProductNotFound):
			h.respondMessage(w, r, "Product not found", http.StatusNotFound)
			return
		case errors.As(err, &boundsErr):
			h.respondMessage(w, r, boundsErr.Message, http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrInsufficientBalance):
			h.respondMessage(w, r, "Insufficient balance", http.StatusBadRequest)
			return
		default:
			h.respondInternalError(w, r, err)
			return
		}
	}

	h.respondJSON(w, r, models.InvestResponse{
		Message:        "Invested",
		ExpectedReturn: investment.ExpectedReturn,
		MaturityDate:   investment.MaturityDate.Format(dateLayout),
	}, http.StatusCreated)
}

func (h *Handler) listInvestments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		h.respondMessage(w, r, msgMissingToken, http.StatusUnauthorized)
		return
	}

	investments, err := h.services.InvestmentService.ListInvestments(ctx, userID)
	if err != nil {
		h.respondInternalError(w, r, err)
		return
	}

	h.respondJSON(w, r, investments, http.StatusOK)
}

func (h *Handler) wallet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		h.respondMessage(w, r, msgMissingToken, http.StatusUnauthorized)
		return
	}

	balance, err := h.services.InvestmentService.Wallet(ctx, userID)
	if err != nil {
		h.respondInternalError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.BalanceResponse{Balance: balance}, http.StatusOK)
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		h.respondMessage(w, r, msgMissingToken, http.StatusUnauthorized)
		return
	}

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.respondMessage(w, r, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	balance, err := h.services.InvestmentService.Deposit(ctx, userID, req.Amount)
	if err != nil {
		var boundsErr *service.AmountBoundsError
		switch {
		case errors.As(err, &boundsErr):
			h.respondMessage(w, r, boundsErr.Message, http.StatusBadRequest)
			return
		default:
			h.respondInternalError(w, r, err)
			return
		}
	}

	h.respondJSON(w, r, models.BalanceResponse{
		Message: "Deposit successful",
		Balance: balance,
	}, http.StatusOK)
}

func (h *Handler) portfolio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		h.respondMessage(w, r, msgMissingToken, http.StatusUnauthorized)
		return
	}

	portfolio, err := h.services.InvestmentService.Portfolio(ctx, userID)
	if err != nil {
		h.respondInternalError(w, r, err)
		return
	}

	h.respondJSON(w, r, portfolio, http.StatusOK)
}

func (h *Handler) insights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		h.respondMessage(w, r, msgMissingToken, http.StatusUnauthorized)
		return
	}

	insights, err := h.services.InvestmentService.Insights(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoUserWasFound):
			h.respondMessage(w, r, "User not found", http.StatusNotFound)
			return
		default:
			h.respondInternalError(w, r, err)
			return
		}
	}

	h.respondJSON(w, r, insights, http.StatusOK)
}
