package http

import (
	"time"

	"github.com/eliteconnect/userservice/internal/users/domain"
	"github.com/eliteconnect/userservice/pkg/userapi"
)

// toUserResponse maps a domain user onto its public representation. The
// password hash never crosses this boundary.
func toUserResponse(u domain.User) userapi.UserResponse {
	return userapi.UserResponse{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		FullName:          u.FullName,
		Gender:            u.Gender,
		DateOfBirth:       u.DateOfBirth,
		City:              u.City,
		Country:           u.Country,
		Bio:               u.Bio,
		ProfilePictureURL: u.ProfilePictureURL,
		CreatedAt:         formatTime(u.CreatedAt),
		UpdatedAt:         formatTime(u.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// patchFromUpdateRequest maps the update body onto a domain patch; the
// password travels separately.
func patchFromUpdateRequest(req userapi.UpdateUserRequest) domain.User {
	return domain.User{
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
}
