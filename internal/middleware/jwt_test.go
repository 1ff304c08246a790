package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRouter(secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetInt("user_id"), "name": c.GetString("user_name")})
	})
	return r
}

func doAuthed(r *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_RoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	token, err := IssueToken(secret, 42, "Ana")
	require.NoError(t, err)

	w := doAuthed(authedRouter(secret), token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uid":42`)
	assert.Contains(t, w.Body.String(), `"name":"Ana"`)
}

func TestJWTAuth_RejectsWrongSecret(t *testing.T) {
	token, err := IssueToken([]byte("other-secret"), 42, "Ana")
	require.NoError(t, err)

	w := doAuthed(authedRouter([]byte("test-secret")), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_RejectsMissingHeader(t *testing.T) {
	w := doAuthed(authedRouter([]byte("test-secret")), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_RejectsTokenWithoutIdentityClaims(t *testing.T) {
	secret := []byte("test-secret")
	// Validly signed, but neither uid nor name present.
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(secret)
	require.NoError(t, err)

	w := doAuthed(authedRouter(secret), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
