package service_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/eliteconnect/userservice/internal/users/domain"
	"github.com/eliteconnect/userservice/internal/users/service"
	"github.com/eliteconnect/userservice/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T) jwtx.Signer {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	der, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	signer, err := jwtx.NewSignerEdDSA("test-key", pemKey)
	require.NoError(t, err)
	return signer
}

func TestIssueToken(t *testing.T) {
	signer := newTestSigner(t)
	svc := &service.TokenService{
		Signer:    signer,
		Issuer:    "user-service",
		AccessTTL: 30 * time.Minute,
	}

	user := domain.User{ID: 42, Username: "alice"}

	token, ttl, err := svc.IssueToken(user)
	require.NoError(t, err)
	require.Equal(t, 30*time.Minute, ttl)

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := jwtx.NewVerifierEdDSA(keys, "user-service")

	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "user-service", claims.Issuer)
	require.NotEmpty(t, claims.ID)
	require.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestIssueTokenDefaultTTL(t *testing.T) {
	svc := &service.TokenService{
		Signer: newTestSigner(t),
		Issuer: "user-service",
	}

	_, ttl, err := svc.IssueToken(domain.User{ID: 1, Username: "alice"})
	require.NoError(t, err)
	require.Equal(t, jwtx.DefaultAccessTokenTTL, ttl)
}

func TestIssueTokenUniqueJTI(t *testing.T) {
	signer := newTestSigner(t)
	svc := &service.TokenService{Signer: signer, Issuer: "user-service", AccessTTL: time.Hour}

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := jwtx.NewVerifierEdDSA(keys, "user-service")

	first, _, err := svc.IssueToken(domain.User{ID: 1, Username: "alice"})
	require.NoError(t, err)
	second, _, err := svc.IssueToken(domain.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	a, err := verifier.Verify(first)
	require.NoError(t, err)
	b, err := verifier.Verify(second)
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)
}
