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

	"github.com/orbis-edu/school-bi-api/internal/models"
	"github.com/orbis-edu/school-bi-api/internal/service"
)

const testSecret = "test-secret"

func newAuthService() *service.AuthService {
	return service.NewAuthService(nil, nil, nil, service.AuthConfig{Secret: testSecret, Issuer: "school-bi-api"})
}

func signToken(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()
	claims := &models.JWTClaims{
		UserID: "user-1",
		Email:  "admin@escola.local",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runJWT(t *testing.T, authorization string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/academic", nil)
	if authorization != "" {
		c.Request.Header.Set("Authorization", authorization)
	}
	JWT(newAuthService())(c)
	return c, rec
}

func TestJWTValidToken(t *testing.T) {
	token := signToken(t, testSecret, time.Now().Add(time.Hour))

	c, rec := runJWT(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, c.IsAborted())

	claims, ok := c.Get(ContextUserKey)
	require.True(t, ok)
	assert.Equal(t, "admin@escola.local", claims.(*models.JWTClaims).Email)
}

func TestJWTMissingHeader(t *testing.T) {
	c, rec := runJWT(t, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.True(t, c.IsAborted())
}

func TestJWTMalformedHeader(t *testing.T) {
	_, rec := runJWT(t, "Token abc123")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, time.Now().Add(-time.Hour))

	_, rec := runJWT(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTWrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", time.Now().Add(time.Hour))

	_, rec := runJWT(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
