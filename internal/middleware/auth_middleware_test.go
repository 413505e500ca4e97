package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskmanager/internal/auth"
	"taskmanager/internal/middleware"
	"taskmanager/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const jwtSecret = "test-secret-key"

type MockUserLookup struct {
	mock.Mock
}

func (m *MockUserLookup) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func setupRouter() (*gin.Engine, *MockUserLookup) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	users := new(MockUserLookup)
	tokens := auth.NewTokenManager(jwtSecret, time.Hour)

	protected := r.Group("/protected")
	protected.Use(middleware.Protect(tokens, users))

	protected.GET("/resource", func(c *gin.Context) {
		userID, exists := c.Get(middleware.UserIDKey)
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "User ID not found in context"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Access granted",
			"user_id": userID,
		})
	})
	protected.GET("/admin", middleware.AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Admin access granted"})
	})

	return r, users
}

func generateTestToken(t *testing.T, userID uuid.UUID) string {
	token, err := auth.NewTokenManager(jwtSecret, time.Hour).GenerateToken(userID.String())
	assert.NoError(t, err)
	return token
}

func TestProtect_ValidBearerToken(t *testing.T) {
	router, users := setupRouter()
	userID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, userID))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Access granted")
	assert.Contains(t, resp.Body.String(), userID.String())
	users.AssertExpectations(t)
}

func TestProtect_ValidCookieToken(t *testing.T) {
	router, users := setupRouter()
	userID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: generateTestToken(t, userID)})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	users.AssertExpectations(t)
}

func TestProtect_NoToken(t *testing.T) {
	router, _ := setupRouter()

	req, _ := http.NewRequest("GET", "/protected/resource", nil)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Not authorized. Try login again.")
}

func TestProtect_InvalidAuthFormat(t *testing.T) {
	router, _ := setupRouter()

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "InvalidFormat token123")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestProtect_InvalidToken(t *testing.T) {
	router, _ := setupRouter()

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer invalid-token")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Not authorized. Try login again.")
}

func TestProtect_TokenWithInvalidUserID(t *testing.T) {
	router, _ := setupRouter()

	claims := jwt.MapClaims{
		"user_id": "not-a-valid-uuid",
		"exp":     jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(jwtSecret))

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid user ID in token")
}

func TestProtect_UserGone(t *testing.T) {
	router, users := setupRouter()
	userID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(nil, nil)

	req, _ := http.NewRequest("GET", "/protected/resource", nil)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, userID))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "User not found. Try login again.")
}

func TestAdminOnly(t *testing.T) {
	router, users := setupRouter()
	adminID, memberID := uuid.New(), uuid.New()
	users.On("GetByID", mock.Anything, adminID).Return(&model.User{ID: adminID, IsAdmin: true}, nil)
	users.On("GetByID", mock.Anything, memberID).Return(&model.User{ID: memberID}, nil)

	tests := []struct {
		name   string
		userID uuid.UUID
		want   int
	}{
		{"admin", adminID, http.StatusOK},
		{"member", memberID, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/protected/admin", nil)
			req.Header.Set("Authorization", "Bearer "+generateTestToken(t, tt.userID))

			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			assert.Equal(t, tt.want, resp.Code)
		})
	}
}
