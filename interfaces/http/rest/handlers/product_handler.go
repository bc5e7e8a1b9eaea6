package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/RodCacioli/Authos-v2/application/services"
	"github.com/RodCacioli/Authos-v2/domain"
	"github.com/RodCacioli/Authos-v2/pkg/auth"
	"github.com/RodCacioli/Authos-v2/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductHandler handles product HTTP requests
type ProductHandler struct {
	products *services.ProductService
	logger   *zap.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(products *services.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// ProductRequest is the request body for creating or updating a product
type ProductRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	Persona         string `json:"persona"`
	PainPoints      string `json:"painPoints"`
	Solution        string `json:"solution"`
	Differentiators string `json:"differentiators"`
	Testimonials    string `json:"testimonials"`
	Link            string `json:"link" validate:"omitempty,url"`
	Purpose         string `json:"purpose"`
	Results         string `json:"results"`
	Notes           string `json:"notes"`
}

func (r ProductRequest) toDomain(id string) domain.Product {
	return domain.Product{
		ID:              id,
		Name:            r.Name,
		Persona:         r.Persona,
		PainPoints:      r.PainPoints,
		Solution:        r.Solution,
		Differentiators: r.Differentiators,
		Testimonials:    r.Testimonials,
		Link:            r.Link,
		Purpose:         r.Purpose,
		Results:         r.Results,
		Notes:           r.Notes,
	}
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())

	products, err := h.products.List(r.Context(), sess)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, products)
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	sess := auth.SessionFromContext(r.Context())
	products, err := h.products.Add(r.Context(), sess, req.toDomain(uuid.New().String()))
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, products)
}

// UpdateProduct handles PUT /products/{productID}, replacing the record.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	sess := auth.SessionFromContext(r.Context())
	products, err := h.products.Update(r.Context(), sess, req.toDomain(productID))
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, products)
}

// DeleteProduct handles DELETE /products/{productID}. Unknown ids succeed.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	sess := auth.SessionFromContext(r.Context())
	products, err := h.products.Delete(r.Context(), sess, productID)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, products)
}
