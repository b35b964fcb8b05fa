// Login handler
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	serr "github.com/pdv-labs/api-sales/internal/shared/errors"
)

// AuthRequest is the login request body.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login payload field by field.
func (r AuthRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("É necessário informar o e-mail."),
			is.Email.Error("É Necessário informar um e-mail válido"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("É necessário informar a senha."),
		),
	)
}

// AuthResponse carries the issued bearer token.
type AuthResponse struct {
	Token string `json:"token"`
}

// Login verifies the credentials and issues an access token.
//
// Unknown email and wrong password are reported identically.
//
// @Summary      Login
// @Description  Verifies email and password, returns a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body AuthRequest true "Credentials"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} ValidationErrorResponse "Invalid input or bad JSON"
// @Failure      404 {object} ErrorResponse "Unknown email or wrong password"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /auth [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	if err := req.Validate(); err != nil {
		WriteValidationError(w, err)
		return
	}

	token, err := h.Svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		default:
			h.Log.Logger.Sugar().Errorw("login failed", "error", err)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, AuthResponse{Token: token})
}
