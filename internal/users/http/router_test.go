package http_test

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	userhttp "github.com/eliteconnect/userservice/internal/users/http"
	"github.com/eliteconnect/userservice/internal/users/service"
	"github.com/eliteconnect/userservice/internal/users/store/drivers/memory"
	"github.com/eliteconnect/userservice/pkg/cryptox"
	"github.com/eliteconnect/userservice/pkg/jwtx"
	"github.com/eliteconnect/userservice/pkg/userapi"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server
	keys *jwtx.KeySet
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	signer, err := jwtx.NewSignerEdDSA("test-key", pemKey)
	require.NoError(t, err)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	st := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := userhttp.NewRouter(keys, "test", st, logger)
	router.UserService = &service.UserService{
		Store:  st,
		Hasher: cryptox.NewHasher("test-pepper"),
	}
	router.TokenService = &service.TokenService{
		Signer:    signer,
		Issuer:    "user-service",
		AccessTTL: time.Hour,
	}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, keys: keys}
}

func (s *testServer) postJSON(t *testing.T, path string, body any) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(s.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func (s *testServer) doJSON(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestUserLifecycle(t *testing.T) {
	srv := newTestServer(t)

	register := userapi.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
		FullName: "Alice Example",
		City:     "Sydney",
	}

	// Register
	resp := srv.postJSON(t, "/api/users/register", register)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[userapi.UserResponse](t, resp)
	require.Positive(t, created.ID)
	require.Equal(t, "alice", created.Username)
	require.NotEmpty(t, created.CreatedAt)

	t.Run("response never leaks the password", func(t *testing.T) {
		resp := srv.postJSON(t, "/api/users/register", userapi.RegisterRequest{
			Username: "bob",
			Password: "hunter2hunter2",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NotContains(t, string(raw), "hunter2hunter2")
		require.NotContains(t, string(raw), "password")
	})

	// Login
	resp = srv.postJSON(t, "/api/users/login", userapi.LoginRequest{
		Username: "alice",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decodeBody[userapi.TokenResponse](t, resp)
	require.NotEmpty(t, token.Token)
	require.Equal(t, "Bearer", token.TokenType)
	require.Equal(t, 3600, token.ExpiresIn)

	t.Run("issued token verifies against the JWKS key", func(t *testing.T) {
		verifier := jwtx.NewVerifierEdDSA(srv.keys, "user-service")
		claims, err := verifier.Verify(token.Token)
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("%d", created.ID), claims.Subject)
		require.Equal(t, "alice", claims.Username)
	})

	// Read
	resp = srv.doJSON(t, http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeBody[userapi.UserResponse](t, resp)
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, "Alice Example", fetched.FullName)

	// Update without password
	resp = srv.doJSON(t, http.MethodPut, fmt.Sprintf("/api/users/%d", created.ID), userapi.UpdateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Updated",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[userapi.UserResponse](t, resp)
	require.Equal(t, "Alice Updated", updated.FullName)
	require.Empty(t, updated.City)

	t.Run("old password still works after password-less update", func(t *testing.T) {
		resp := srv.postJSON(t, "/api/users/login", userapi.LoginRequest{
			Username: "alice",
			Password: "password123",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	// Update with password
	resp = srv.doJSON(t, http.MethodPut, fmt.Sprintf("/api/users/%d", created.ID), userapi.UpdateUserRequest{
		Username: "alice",
		Password: "newpassword1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	t.Run("only the new password works after a password change", func(t *testing.T) {
		resp := srv.postJSON(t, "/api/users/login", userapi.LoginRequest{
			Username: "alice",
			Password: "password123",
		})
		resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp = srv.postJSON(t, "/api/users/login", userapi.LoginRequest{
			Username: "alice",
			Password: "newpassword1",
		})
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	// List
	resp = srv.doJSON(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody[[]userapi.UserResponse](t, resp)
	require.Len(t, list, 2)

	// Delete
	resp = srv.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", created.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = srv.doJSON(t, http.MethodGet, fmt.Sprintf("/api/users/%d", created.ID), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestRegisterValidation(t *testing.T) {
	srv := newTestServer(t)

	t.Run("missing fields", func(t *testing.T) {
		resp := srv.postJSON(t, "/api/users/register", userapi.RegisterRequest{})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody[userapi.ValidationErrorResponse](t, resp)
		require.Equal(t, userapi.ErrorCodeValidationError, body.Code)
		require.Contains(t, body.Details, "username")
		require.Contains(t, body.Details, "password")
	})

	t.Run("short password", func(t *testing.T) {
		resp := srv.postJSON(t, "/api/users/register", userapi.RegisterRequest{
			Username: "alice",
			Password: "short",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/users/register", "application/json",
			bytes.NewReader([]byte("{not json")))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("duplicate username", func(t *testing.T) {
		first := srv.postJSON(t, "/api/users/register", userapi.RegisterRequest{
			Username: "carol",
			Password: "password123",
		})
		first.Body.Close()
		require.Equal(t, http.StatusCreated, first.StatusCode)

		resp := srv.postJSON(t, "/api/users/register", userapi.RegisterRequest{
			Username: "carol",
			Password: "password456",
		})
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		body := decodeBody[userapi.APIError](t, resp)
		require.Equal(t, userapi.ErrorCodeConflict, body.Code)
	})
}

func TestLoginFailuresAreUniform(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.postJSON(t, "/api/users/register", userapi.RegisterRequest{
		Username: "alice",
		Password: "password123",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	readFailure := func(req userapi.LoginRequest) (int, string) {
		resp := srv.postJSON(t, "/api/users/login", req)
		defer resp.Body.Close()
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(raw)
	}

	wrongPassStatus, wrongPassBody := readFailure(userapi.LoginRequest{
		Username: "alice", Password: "wrongpassword",
	})
	unknownUserStatus, unknownUserBody := readFailure(userapi.LoginRequest{
		Username: "nobody", Password: "password123",
	})

	require.Equal(t, http.StatusUnauthorized, wrongPassStatus)
	require.Equal(t, wrongPassStatus, unknownUserStatus)
	require.JSONEq(t, wrongPassBody, unknownUserBody)
}

func TestUserEndpointErrors(t *testing.T) {
	srv := newTestServer(t)

	t.Run("get unknown id", func(t *testing.T) {
		resp := srv.doJSON(t, http.MethodGet, "/api/users/9999", nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := decodeBody[userapi.APIError](t, resp)
		require.Equal(t, userapi.ErrorCodeNotFound, body.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		resp := srv.doJSON(t, http.MethodGet, "/api/users/abc", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("update unknown id", func(t *testing.T) {
		resp := srv.doJSON(t, http.MethodPut, "/api/users/9999", userapi.UpdateUserRequest{
			Username: "ghost",
		})
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("delete unknown id", func(t *testing.T) {
		resp := srv.doJSON(t, http.MethodDelete, "/api/users/9999", nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestSystemEndpoints(t *testing.T) {
	srv := newTestServer(t)

	t.Run("livez", func(t *testing.T) {
		resp := srv.doJSON(t, http.MethodGet, "/livez", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[userapi.HealthResponse](t, resp)
		require.Equal(t, "ok", body.Status)
		require.Equal(t, "test", body.Version)
	})

	t.Run("readyz", func(t *testing.T) {
		resp := srv.doJSON(t, http.MethodGet, "/readyz", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[userapi.HealthResponse](t, resp)
		require.Equal(t, "ok", body.Status)
	})

	t.Run("jwks", func(t *testing.T) {
		resp := srv.doJSON(t, http.MethodGet, "/.well-known/jwks.json", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody[jwtx.JWKS](t, resp)
		require.Len(t, body.Keys, 1)
		require.Equal(t, "OKP", body.Keys[0].Kty)
		require.Equal(t, "test-key", body.Keys[0].Kid)
	})

	t.Run("request id header is set", func(t *testing.T) {
		resp := srv.doJSON(t, http.MethodGet, "/livez", nil)
		defer resp.Body.Close()
		require.NotEmpty(t, resp.Header.Get("X-Request-Id"))
	})
}
