package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdevries/tripwise/backend/internal/middleware"
)

var testSecret = []byte("test-secret-key")

// signToken mints an HS256 token the way the external identity system does:
// the subject claim carries the user ID.
func signToken(t *testing.T, secret []byte, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

// echoUserHandler writes 200 when an identity is present in context.
func echoUserHandler(t *testing.T, wantUserID uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFrom(r.Context())
		require.True(t, ok, "identity must be in context when the handler runs")
		assert.Equal(t, wantUserID, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_ValidToken(t *testing.T) {
	userID := uuid.New()
	h := middleware.Authenticate(testSecret)(echoUserHandler(t, userID))

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, userID.String(), time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	h := middleware.Authenticate(testSecret)(trivialHandler)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_authenticated")
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	h := middleware.Authenticate(testSecret)(trivialHandler)

	for _, header := range []string{
		"Bearer",
		"Bearer ",
		"Basic dXNlcjpwYXNz",
		"not-a-token",
	} {
		req := httptest.NewRequest(http.MethodGet, "/trips", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	h := middleware.Authenticate(testSecret)(trivialHandler)

	token := signToken(t, []byte("some-other-secret"), uuid.New().String(), time.Now().Add(time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	h := middleware.Authenticate(testSecret)(trivialHandler)

	token := signToken(t, testSecret, uuid.New().String(), time.Now().Add(-time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_NonUUIDSubject(t *testing.T) {
	h := middleware.Authenticate(testSecret)(trivialHandler)

	token := signToken(t, testSecret, "user-42", time.Now().Add(time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_RejectsUnsignedAlgorithm(t *testing.T) {
	h := middleware.Authenticate(testSecret)(trivialHandler)

	// alg=none tokens must never pass, whatever their claims say.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWithUserID_RoundTrip(t *testing.T) {
	userID := uuid.New()

	got, ok := middleware.UserIDFrom(middleware.WithUserID(context.Background(), userID))

	require.True(t, ok)
	assert.Equal(t, userID, got)
}
