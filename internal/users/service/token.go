package service

import (
	"strconv"
	"time"

	"github.com/eliteconnect/userservice/internal/users/domain"
	"github.com/eliteconnect/userservice/pkg/jwtx"
)

// TokenService issues signed bearer tokens for authenticated users. It only
// issues; verification lives with the consumers of the JWKS endpoint.
type TokenService struct {
	Signer    jwtx.Signer
	Issuer    string
	AccessTTL time.Duration
}

// IssueToken produces a fresh signed JWT binding the user's id and username
// to an expiration. Tokens are never stored.
func (s *TokenService) IssueToken(u domain.User) (string, time.Duration, error) {
	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(
		strconv.FormatInt(u.ID, 10),
		u.Username,
		s.Issuer,
		ttl,
		time.Now().UTC(),
	)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", 0, err
	}
	return token, ttl, nil
}
