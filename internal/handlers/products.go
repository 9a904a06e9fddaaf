package handlers

import (
	"net/http"

	"github.com/benx421/points-exchange/internal/models"
	"github.com/benx421/points-exchange/internal/service"
)

// CreateProductRequest is the body of POST /api/v1/products
type CreateProductRequest struct {
	Name           string `json:"name"`
	Memo           string `json:"memo"`
	RequiredPoints int64  `json:"required_points"`
	Stock          int64  `json:"stock"`
}

// UpdateProductRequest is the body of PATCH /api/v1/products/{productID}.
// Omitted fields are left unchanged.
type UpdateProductRequest struct {
	Name           *string `json:"name"`
	Memo           *string `json:"memo"`
	RequiredPoints *int64  `json:"required_points"`
	Stock          *int64  `json:"stock"`
	IsActive       *bool   `json:"is_active"`
}

func (req UpdateProductRequest) empty() bool {
	return req.Name == nil && req.Memo == nil && req.RequiredPoints == nil && req.Stock == nil && req.IsActive == nil
}

// ListProducts handles GET /api/v1/products. Only active products are listed.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter models.ProductFilter
	if err := bindQuery(query, "store_id", &filter.StoreID); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	page, err := bindPage(query)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	products, total, err := h.catalog.ListProducts(r.Context(), filter, page)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeList(w, page, products, total)
}

// GetProduct handles GET /api/v1/products/{productID}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathUUID(r, "productID")
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /api/v1/products
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), actor, service.NewProduct{
		Name:           req.Name,
		Memo:           req.Memo,
		RequiredPoints: req.RequiredPoints,
		Stock:          req.Stock,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PATCH /api/v1/products/{productID}
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}
	productID, err := pathUUID(r, "productID")
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	var req UpdateProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	if req.empty() {
		writeValidationError(w, "at least one field must be provided")
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), actor, productID, models.ProductUpdate{
		Name:           req.Name,
		Memo:           req.Memo,
		RequiredPoints: req.RequiredPoints,
		Stock:          req.Stock,
		IsActive:       req.IsActive,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// DeactivateProduct handles DELETE /api/v1/products/{productID}
func (h *Handler) DeactivateProduct(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(w, r)
	if !ok {
		return
	}
	productID, err := pathUUID(r, "productID")
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	if err := h.catalog.DeactivateProduct(r.Context(), actor, productID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.logger.Info("product deactivated", "product_id", productID, "actor_id", actor.ID)
	w.WriteHeader(http.StatusNoContent)
}
