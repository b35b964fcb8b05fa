// Product CRUD handlers
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/pdv-labs/api-sales/internal/server/service"
	serr "github.com/pdv-labs/api-sales/internal/shared/errors"
)

// CreateProductRequest is the product creation body.
type CreateProductRequest struct {
	Code  string   `json:"code"`
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code,
			validation.Required.Error("É necessário informar o código."),
		),
		validation.Field(&r.Name,
			validation.Required.Error("É necessário informar o nome"),
		),
		validation.Field(&r.Price,
			validation.NotNil.Error("É necessário informar o preço"),
		),
	)
}

// UpdateProductRequest is a partial update; absent fields stay untouched.
type UpdateProductRequest struct {
	Code  *string  `json:"code,omitempty"`
	Name  *string  `json:"name,omitempty"`
	Price *float64 `json:"price,omitempty"`
}

// CreateProduct adds a catalog item.
//
// @Summary      Create product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body CreateProductRequest true "New product"
// @Success      201 {object} models.Product
// @Failure      400 {object} ValidationErrorResponse "Invalid input or bad JSON"
// @Failure      409 {object} ErrorResponse "Code already taken"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /products [post]
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	if err := req.Validate(); err != nil {
		WriteValidationError(w, err)
		return
	}

	product, err := h.Svc.Products.Create(r.Context(), req.Code, req.Name, *req.Price)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrAlreadyExists):
			WriteError(w, http.StatusConflict, serr.ErrAlreadyExists)
		default:
			h.Log.Logger.Sugar().Errorw("create product failed", "error", err)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, product)
}

// ListProducts returns the whole catalog.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200 {array} models.Product
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /products [get]
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Svc.Products.List(r.Context())
	if err != nil {
		h.Log.Logger.Sugar().Errorw("list products failed", "error", err)
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}

	WriteJSON(w, http.StatusOK, products)
}

// GetProduct returns one product by id.
//
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id path int true "Product ID"
// @Success      200 {object} models.Product
// @Failure      404 {object} ErrorResponse "Product not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /products/{id} [get]
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}

	product, err := h.Svc.Products.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		default:
			h.Log.Logger.Sugar().Errorw("get product failed", "error", err)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, product)
}

// UpdateProduct merges the provided fields into the stored product.
//
// @Summary      Update product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path int true "Product ID"
// @Param        request body UpdateProductRequest true "Fields to update"
// @Success      200 {object} models.Product
// @Failure      400 {object} ErrorResponse "Bad JSON"
// @Failure      404 {object} ErrorResponse "Product not found"
// @Failure      409 {object} ErrorResponse "Code already taken"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /products/{id} [patch]
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	product, err := h.Svc.Products.Update(r.Context(), id, service.UpdateProductParams{
		Code:  req.Code,
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		case errors.Is(err, serr.ErrAlreadyExists):
			WriteError(w, http.StatusConflict, serr.ErrAlreadyExists)
		default:
			h.Log.Logger.Sugar().Errorw("update product failed", "error", err)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, product)
}

// DeleteProduct removes the product and returns the pre-delete snapshot.
//
// @Summary      Delete product
// @Tags         products
// @Produce      json
// @Param        id path int true "Product ID"
// @Success      200 {object} models.Product
// @Failure      404 {object} ErrorResponse "Product not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /products/{id} [delete]
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}

	product, err := h.Svc.Products.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		default:
			h.Log.Logger.Sugar().Errorw("delete product failed", "error", err)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, product)
}
