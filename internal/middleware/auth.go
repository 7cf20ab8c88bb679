package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/Sou930/HG-SNS/internal/errors"
	"github.com/Sou930/HG-SNS/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware 验证会话令牌并将身份信息附加到请求上下文。
// 纯校验，不访问数据库。
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "需要认证"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "无效的认证格式"))
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(parts[1])
		if err != nil {
			util.Logger.Warn("令牌验证失败",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path))
			errors.HandleError(c, errors.Wrap(errors.ErrInvalidToken, "无效或过期的令牌", err))
			c.Abort()
			return
		}

		c.Set("discord_id", claims.DiscordID)
		c.Set("username", claims.Username)
		c.Set("global_name", claims.GlobalName)

		c.Next()
	}
}

// CallerClaims 从请求上下文取出认证中间件附加的身份信息
func CallerClaims(c *gin.Context) util.SessionClaims {
	return util.SessionClaims{
		DiscordID:  c.GetString("discord_id"),
		Username:   c.GetString("username"),
		GlobalName: c.GetString("global_name"),
	}
}
