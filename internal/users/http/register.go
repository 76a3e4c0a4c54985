package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eliteconnect/userservice/internal/users/domain"
	"github.com/eliteconnect/userservice/internal/users/service"
	"github.com/eliteconnect/userservice/internal/users/store"
	"github.com/eliteconnect/userservice/pkg/httpx"
	"github.com/eliteconnect/userservice/pkg/slogx"
	"github.com/eliteconnect/userservice/pkg/userapi"
)

type RegisterHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Register a new user account
//	@Description	Creates a user from the submitted profile fields. The raw password is hashed before storage and never echoed back.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		userapi.RegisterRequest	true	"User registration fields"
//	@Success		201		{object}	userapi.UserResponse	"Created user, password hash omitted"
//	@Failure		400		{object}	userapi.ValidationErrorResponse
//	@Failure		409		{object}	userapi.APIError	"Username already taken"
//	@Failure		500		{object}	userapi.APIError
//	@Router			/api/users/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req userapi.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		userapi.ErrInvalidRequest.WriteError(w)
		return
	}
	if err := validate.Struct(req); err != nil {
		userapi.WriteValidationError(w, validationDetails(err))
		return
	}

	user := domain.User{
		Username:          req.Username,
		Email:             req.Email,
		FullName:          req.FullName,
		Gender:            req.Gender,
		DateOfBirth:       req.DateOfBirth,
		City:              req.City,
		Country:           req.Country,
		Bio:               req.Bio,
		ProfilePictureURL: req.ProfilePictureURL,
	}

	created, err := h.UserService.CreateUser(ctx, user, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			userapi.ErrUsernameTaken.WriteError(w)
			return
		}
		log.Error("failed to create user", "err", err)
		userapi.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(created))
}
