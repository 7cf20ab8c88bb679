package util

import (
	"testing"
	"time"

	"github.com/Sou930/HG-SNS/config"
	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
)

func init() {
	config.AppConfig.JWTSecret = "test-secret"
	InitLogger("error")
}

// TestGenerateAndValidateToken 测试令牌签发与验证的往返
func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(SessionClaims{
		DiscordID:  "42",
		Username:   "bob",
		GlobalName: "Bob",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "42", claims.DiscordID)
	assert.Equal(t, "bob", claims.Username)
	assert.Equal(t, "Bob", claims.GlobalName)
}

// TestValidateTokenRejectsGarbage 测试非法令牌被拒绝
func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("")
	assert.Error(t, err)

	_, err = ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

// TestValidateTokenRejectsExpired 测试过期令牌被拒绝
func TestValidateTokenRejectsExpired(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"discord_id":  "42",
		"username":    "bob",
		"global_name": "Bob",
		"exp":         time.Now().Add(-time.Hour).Unix(),
	})
	tokenString, err := expired.SignedString([]byte(config.AppConfig.JWTSecret))
	assert.NoError(t, err)

	_, err = ValidateToken(tokenString)
	assert.Error(t, err)
}

// TestValidateTokenRejectsWrongSecret 测试错误密钥签名的令牌被拒绝
func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	tampered := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"discord_id": "42",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := tampered.SignedString([]byte("other-secret"))
	assert.NoError(t, err)

	_, err = ValidateToken(tokenString)
	assert.Error(t, err)
}
