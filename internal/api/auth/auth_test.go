package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sou930/HG-SNS/config"
	"github.com/Sou930/HG-SNS/internal/errors"
	"github.com/Sou930/HG-SNS/internal/service"
	"github.com/Sou930/HG-SNS/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig.FrontendURL = "http://localhost:5173"
	util.InitLogger("error")
}

// MockAuthService 是 AuthServiceInterface 的模拟实现
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) HandleCallback(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

// 确保 MockAuthService 实现了 AuthServiceInterface
var _ service.AuthServiceInterface = (*MockAuthService)(nil)

// TestCallbackMissingCode 测试缺少授权码
func TestCallbackMissingCode(t *testing.T) {
	mockService := new(MockAuthService)
	handler := NewAuthHandler(mockService)

	router := gin.New()
	router.GET("/auth/callback", handler.Callback)

	req, _ := http.NewRequest("GET", "/auth/callback", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "HandleCallback", mock.Anything, mock.Anything)
}

// TestCallbackSuccess 测试成功登录后重定向到默认前端地址
func TestCallbackSuccess(t *testing.T) {
	mockService := new(MockAuthService)
	handler := NewAuthHandler(mockService)

	router := gin.New()
	router.GET("/auth/callback", handler.Callback)

	mockService.On("HandleCallback", mock.Anything, "abc").Return("session-token", nil)

	req, _ := http.NewRequest("GET", "/auth/callback?code=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://localhost:5173?token=session-token", w.Header().Get("Location"))
	mockService.AssertExpectations(t)
}

// TestCallbackCustomRedirect 测试调用方指定的重定向地址
func TestCallbackCustomRedirect(t *testing.T) {
	mockService := new(MockAuthService)
	handler := NewAuthHandler(mockService)

	router := gin.New()
	router.GET("/auth/callback", handler.Callback)

	mockService.On("HandleCallback", mock.Anything, "abc").Return("session-token", nil)

	req, _ := http.NewRequest("GET", "/auth/callback?code=abc&redirect=http://example.com/app", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://example.com/app?token=session-token", w.Header().Get("Location"))
}

// TestCallbackUpstreamFailure 测试上游认证失败返回500
func TestCallbackUpstreamFailure(t *testing.T) {
	mockService := new(MockAuthService)
	handler := NewAuthHandler(mockService)

	router := gin.New()
	router.GET("/auth/callback", handler.Callback)

	mockService.On("HandleCallback", mock.Anything, "bad").Return("",
		errors.New(errors.ErrUpstreamAuth, "Discord令牌交换失败"))

	req, _ := http.NewRequest("GET", "/auth/callback?code=bad", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
