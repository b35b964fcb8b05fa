// Sale CRUD handlers
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"

	serr "github.com/pdv-labs/api-sales/internal/shared/errors"
)

// CreateSaleRequest is the sale creation body.
//
// Identifiers arrive as strings on the wire (the original web clients
// send them that way); an id that does not parse simply never resolves.
type CreateSaleRequest struct {
	User     string   `json:"user"`
	Products []string `json:"products"`
}

func (r CreateSaleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.User,
			validation.Required.Error("É necessário o usuário."),
		),
		validation.Field(&r.Products,
			validation.Required.Error("É necessário informar um produto."),
		),
	)
}

// UpdateSaleRequest is a partial update; absent fields stay untouched.
type UpdateSaleRequest struct {
	User     *string  `json:"user,omitempty"`
	Products []string `json:"products,omitempty"`
}

// parseIDList converts wire ids to integers, dropping malformed ones.
// A malformed id is indistinguishable from an id that does not exist.
func parseIDList(raw []string) []int64 {
	ids := make([]int64, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// CreateSale records a sale linking one user to a set of products.
//
// The product set is resolved leniently: unknown ids are dropped and the
// sale succeeds as long as at least one id resolves. A fully unresolved
// set, or an unknown user, is a 404 and nothing is persisted.
//
// @Summary      Create sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateSaleRequest true "New sale"
// @Success      201 {object} models.Sale
// @Failure      400 {object} ValidationErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "User or products not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /sales [post]
func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	if err := req.Validate(); err != nil {
		WriteValidationError(w, err)
		return
	}

	userID, err := strconv.ParseInt(req.User, 10, 64)
	if err != nil {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}

	sale, err := h.Svc.Sales.Create(r.Context(), userID, parseIDList(req.Products))
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		default:
			h.Log.Logger.Sugar().Errorw("create sale failed", "error", err)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, sale)
}

// ListSales returns every sale with user and products resolved.
//
// @Summary      List sales
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} models.Sale
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /sales [get]
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.Svc.Sales.GetAll(r.Context())
	if err != nil {
		h.Log.Logger.Sugar().Errorw("list sales failed", "error", err)
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}

	WriteJSON(w, http.StatusOK, sales)
}

// GetSale returns one sale by id.
//
// @Summary      Get sale
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Sale ID"
// @Success      200 {object} models.Sale
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Sale not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /sales/{id} [get]
func (h *Handler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}

	sale, err := h.Svc.Sales.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		default:
			h.Log.Logger.Sugar().Errorw("get sale failed", "error", err)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, sale)
}

// UpdateSale re-resolves any provided references and merges them.
//
// @Summary      Update sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Sale ID"
// @Param        request body UpdateSaleRequest true "Fields to update"
// @Success      200 {object} models.Sale
// @Failure      400 {object} ErrorResponse "Bad JSON"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Sale, user or products not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /sales/{id} [patch]
func (h *Handler) UpdateSale(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}

	var req UpdateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	var userID *int64
	if req.User != nil {
		parsed, err := strconv.ParseInt(*req.User, 10, 64)
		if err != nil {
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
			return
		}
		userID = &parsed
	}

	var productIDs []int64
	if req.Products != nil {
		productIDs = parseIDList(req.Products)
	}

	sale, err := h.Svc.Sales.Update(r.Context(), id, userID, productIDs)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		default:
			h.Log.Logger.Sugar().Errorw("update sale failed", "error", err)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, sale)
}

// DeleteSale removes the sale and returns the pre-delete snapshot.
//
// @Summary      Delete sale
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Sale ID"
// @Success      200 {object} models.Sale
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Sale not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /sales/{id} [delete]
func (h *Handler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}

	sale, err := h.Svc.Sales.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		default:
			h.Log.Logger.Sugar().Errorw("delete sale failed", "error", err)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, sale)
}
