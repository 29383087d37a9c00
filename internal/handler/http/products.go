package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-invest-hub/internal/logger"
	"github.com/MKhiriev/go-invest-hub/internal/service"
	"github.com/MKhiriev/go-invest-hub/internal/store"
	"github.com/MKhiriev/go-invest-hub/models"
	"github.com/go-chi/chi/v5"
)

// productIDFromURL parses the {id} route parameter. A non-numeric id is
// indistinguishable from a missing product for the client.
func productIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := models.ProductFilter{
		Type:      r.URL.Query().Get("investment_type"),
		RiskLevel: r.URL.Query().Get("risk_level"),
	}

	products, err := h.services.ProductService.List(ctx, filter)
	if err != nil {
		h.respondInternalError(w, r, err)
		return
	}

	h.respondJSON(w, r, products, http.StatusOK)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := productIDFromURL(r)
	if err != nil {
		h.respondMessage(w, r, "Product not found", http.StatusNotFound)
		return
	}

	product, err := h.services.ProductService.Get(ctx, productID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrProductNotFound):
			h.respondMessage(w, r, "Product not found", http.StatusNotFound)
			return
		default:
			h.respondInternalError(w, r, err)
			return
		}
	}

	h.respondJSON(w, r, product, http.StatusOK)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.respondMessage(w, r, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	if _, err := h.services.ProductService.Create(ctx, product); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid product data provided")
			h.respondMessage(w, r, "Invalid product data", http.StatusBadRequest)
			return
		default:
			h.respondInternalError(w, r, err)
			return
		}
	}

	h.respondMessage(w, r, "Product created successfully with AI-generated description", http.StatusCreated)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	productID, err := productIDFromURL(r)
	if err != nil {
		h.respondMessage(w, r, "Product not found", http.StatusNotFound)
		return
	}

	var update models.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.respondMessage(w, r, msgInvalidJSON, http.StatusBadRequest)
		return
	}

	if update.IsEmpty() {
		h.respondMessage(w, r, "No fields to update", http.StatusBadRequest)
		return
	}

	if err := h.services.ProductService.Update(ctx, productID, update); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			h.respondMessage(w, r, "Invalid product data", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrProductNotFound):
			h.respondMessage(w, r, "Product not found", http.StatusNotFound)
			return
		default:
			h.respondInternalError(w, r, err)
			return
		}
	}

	h.respondMessage(w, r, "Product updated", http.StatusOK)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := productIDFromURL(r)
	if err != nil {
		h.respondMessage(w, r, "Product not found", http.StatusNotFound)
		return
	}

	if err := h.services.ProductService.Delete(ctx, productID); err != nil {
		switch {
		case errors.Is(err, store.ErrProductNotFound):
			h.respondMessage(w, r, "Product not found", http.StatusNotFound)
			return
		default:
			h.respondInternalError(w, r, err)
			return
		}
	}

	h.respondMessage(w, r, "Product deleted", http.StatusOK)
}
