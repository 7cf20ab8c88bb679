package auth

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/Sou930/HG-SNS/config"
	"github.com/Sou930/HG-SNS/internal/errors"
	"github.com/Sou930/HG-SNS/internal/service"
	"github.com/Sou930/HG-SNS/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler 处理与认证相关的HTTP请求
type AuthHandler struct {
	authService service.AuthServiceInterface
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(authService service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{authService}
}

// Callback 处理 Discord OAuth2 回调，成功后重定向回前端并附带会话令牌
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		errors.HandleError(c, errors.New(errors.ErrValidation, "缺少授权码"))
		return
	}

	redirect := c.Query("redirect")
	if redirect == "" {
		redirect = config.AppConfig.FrontendURL
	}

	token, err := h.authService.HandleCallback(c.Request.Context(), code)
	if err != nil {
		util.Logger.Error("登录失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("%s?token=%s", redirect, url.QueryEscape(token)))
}
