package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-upi.backend/internal/interfaces/http/handlers"
	"smart-upi.backend/internal/usecases"
	"smart-upi.backend/pkg/jwt"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
	authUsecase, err := usecases.NewAuthUsecaseFromPlainSecret(jwtService, "merchant-secret")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	authHandler := handlers.NewAuthHandler(authUsecase)
	r.POST("/api/v1/auth/login", authHandler.Login)
	r.POST("/api/v1/auth/refresh", authHandler.RefreshToken)
	return r
}

func TestLogin(t *testing.T) {
	r := newAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{"secret": "merchant-secret"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var pair jwt.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestLogin_WrongSecret(t *testing.T) {
	r := newAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{"secret": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_MissingSecret(t *testing.T) {
	r := newAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshToken(t *testing.T) {
	r := newAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{"secret": "merchant-secret"})
	require.Equal(t, http.StatusOK, w.Code)

	var pair jwt.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh", gin.H{"refreshToken": pair.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var fresh jwt.TokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fresh))
	assert.NotEmpty(t, fresh.AccessToken)
}

func TestRefreshToken_Invalid(t *testing.T) {
	r := newAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh", gin.H{"refreshToken": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
