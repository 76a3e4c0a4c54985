package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/eliteconnect/userservice/internal/users/service"
	"github.com/eliteconnect/userservice/internal/users/store"
	"github.com/eliteconnect/userservice/pkg/httpx"
	"github.com/eliteconnect/userservice/pkg/slogx"
	"github.com/eliteconnect/userservice/pkg/userapi"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleList godoc
//
//	@Summary		List all users
//	@Description	Returns every user record, ordered by id.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{array}		userapi.UserResponse
//	@Failure		500	{object}	userapi.APIError
//	@Router			/api/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.UserService.GetAllUsers(ctx)
	if err != nil {
		log.Error("failed to list users", "err", err)
		userapi.ErrServerError.WriteError(w)
		return
	}

	out := make([]userapi.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary		Get a user by id
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		int	true	"User id"
//	@Success		200	{object}	userapi.UserResponse
//	@Failure		400	{object}	userapi.APIError	"Malformed id"
//	@Failure		404	{object}	userapi.APIError
//	@Failure		500	{object}	userapi.APIError
//	@Router			/api/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	user, found, err := h.UserService.GetUserByID(ctx, id)
	if err != nil {
		log.Error("failed to load user", "user_id", id, "err", err)
		userapi.ErrServerError.WriteError(w)
		return
	}
	if !found {
		userapi.ErrUserNotFound.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleUpdate godoc
//
//	@Summary		Update a user
//	@Description	Overwrites all profile fields. The password is replaced only when a non-empty password is supplied; it is re-hashed before storage.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"User id"
//	@Param			body	body		userapi.UpdateUserRequest	true	"Replacement fields, password optional"
//	@Success		200		{object}	userapi.UserResponse
//	@Failure		400		{object}	userapi.ValidationErrorResponse
//	@Failure		404		{object}	userapi.APIError
//	@Failure		409		{object}	userapi.APIError	"Username already taken"
//	@Failure		500		{object}	userapi.APIError
//	@Router			/api/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req userapi.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		userapi.ErrInvalidRequest.WriteError(w)
		return
	}
	if err := validate.Struct(req); err != nil {
		userapi.WriteValidationError(w, validationDetails(err))
		return
	}

	updated, err := h.UserService.UpdateUser(ctx, id, patchFromUpdateRequest(req), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			userapi.ErrUserNotFound.WriteError(w)
		case errors.Is(err, store.ErrAlreadyExists):
			userapi.ErrUsernameTaken.WriteError(w)
		default:
			log.Error("failed to update user", "user_id", id, "err", err)
			userapi.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(updated))
}

// HandleDelete godoc
//
//	@Summary	Delete a user
//	@Tags		Users
//	@Param		id	path	int	true	"User id"
//	@Success	204	"No content"
//	@Failure	400	{object}	userapi.APIError	"Malformed id"
//	@Failure	404	{object}	userapi.APIError
//	@Failure	500	{object}	userapi.APIError
//	@Router		/api/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.UserService.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			userapi.ErrUserNotFound.WriteError(w)
			return
		}
		log.Error("failed to delete user", "user_id", id, "err", err)
		userapi.ErrServerError.WriteError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		userapi.ErrInvalidRequest.WriteError(w)
		return 0, false
	}
	return id, true
}
