package util

import (
	"errors"
	"time"

	"github.com/Sou930/HG-SNS/config"
	"github.com/dgrijalva/jwt-go"
)

// SessionClaims 会话令牌中携带的身份信息
type SessionClaims struct {
	DiscordID  string
	Username   string
	GlobalName string
}

// 会话令牌有效期固定为7天
const sessionTokenLifetime = 7 * 24 * time.Hour

func GenerateToken(claims SessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"discord_id":  claims.DiscordID,
		"username":    claims.Username,
		"global_name": claims.GlobalName,
		"exp":         time.Now().Add(sessionTokenLifetime).Unix(),
	})

	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

func ValidateToken(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, errors.New("令牌为空")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("意外的签名方法")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("无效的令牌")
	}

	discordID, ok := claims["discord_id"].(string)
	if !ok || discordID == "" {
		return nil, errors.New("无效的用户ID")
	}
	username, _ := claims["username"].(string)
	globalName, _ := claims["global_name"].(string)

	return &SessionClaims{
		DiscordID:  discordID,
		Username:   username,
		GlobalName: globalName,
	}, nil
}
