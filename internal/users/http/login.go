package http

import (
	"encoding/json"
	"net/http"

	"github.com/eliteconnect/userservice/internal/users/service"
	"github.com/eliteconnect/userservice/pkg/httpx"
	"github.com/eliteconnect/userservice/pkg/slogx"
	"github.com/eliteconnect/userservice/pkg/userapi"
)

type LoginHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Authenticate and obtain a bearer token
//	@Description	Verifies the username/password pair and issues a signed, expiring JWT. The failure response is identical for unknown usernames and wrong passwords.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		userapi.LoginRequest	true	"Credentials"
//	@Success		200		{object}	userapi.TokenResponse
//	@Failure		400		{object}	userapi.APIError	"Malformed request"
//	@Failure		401		{object}	userapi.APIError	"Invalid credentials"
//	@Failure		500		{object}	userapi.APIError
//	@Router			/api/users/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req userapi.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		userapi.ErrInvalidRequest.WriteError(w)
		return
	}
	if err := validate.Struct(req); err != nil {
		userapi.ErrInvalidRequest.WriteError(w)
		return
	}

	user, ok, err := h.UserService.LoginUser(ctx, req.Username, req.Password)
	if err != nil {
		log.Error("login lookup failed", "err", err)
		userapi.ErrServerError.WriteError(w)
		return
	}
	if !ok {
		// One uniform response regardless of which check failed.
		userapi.ErrInvalidCredentials.WriteError(w)
		return
	}

	token, ttl, err := h.TokenService.IssueToken(user)
	if err != nil {
		log.Error("failed to issue token", "user_id", user.ID, "err", err)
		userapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userapi.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(ttl.Seconds()),
	})
}
