package service

import (
	"context"

	"github.com/Sou930/HG-SNS/internal/errors"
	"github.com/Sou930/HG-SNS/internal/model"
	"github.com/Sou930/HG-SNS/internal/oauth"
	"github.com/Sou930/HG-SNS/internal/repository/interfaces"
	"github.com/Sou930/HG-SNS/internal/util"
	oauth2pkg "golang.org/x/oauth2"
)

// DiscordAuthClient 定义了 Discord OAuth2 客户端应该实现的方法
type DiscordAuthClient interface {
	ExchangeCode(ctx context.Context, code string) (*oauth2pkg.Token, error)
	FetchProfile(ctx context.Context, token *oauth2pkg.Token) (*oauth.Profile, error)
}

// AuthServiceInterface 定义了认证服务的接口
type AuthServiceInterface interface {
	HandleCallback(ctx context.Context, code string) (string, error)
}

// AuthService 处理 Discord 登录的业务逻辑
type AuthService struct {
	discord  DiscordAuthClient
	userRepo interfaces.UserRepository
}

// NewAuthService 创建一个新的 AuthService 实例
func NewAuthService(discord DiscordAuthClient, userRepo interfaces.UserRepository) *AuthService {
	return &AuthService{
		discord:  discord,
		userRepo: userRepo,
	}
}

// HandleCallback 完成一次登录：换取令牌、获取资料、Upsert用户、签发会话令牌
func (s *AuthService) HandleCallback(ctx context.Context, code string) (string, error) {
	token, err := s.discord.ExchangeCode(ctx, code)
	if err != nil {
		return "", errors.Wrap(errors.ErrUpstreamAuth, "Discord令牌交换失败", err)
	}

	profile, err := s.discord.FetchProfile(ctx, token)
	if err != nil {
		return "", errors.Wrap(errors.ErrUpstreamAuth, "获取Discord用户资料失败", err)
	}

	user := &model.User{
		DiscordID:  profile.ID,
		Username:   profile.Username,
		GlobalName: profile.GlobalName,
		Avatar:     profile.Avatar,
	}
	if err := s.userRepo.Upsert(user); err != nil {
		return "", errors.Wrap(errors.ErrDatabase, "保存用户失败", err)
	}

	sessionToken, err := util.GenerateToken(util.SessionClaims{
		DiscordID:  profile.ID,
		Username:   profile.Username,
		GlobalName: profile.GlobalName,
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrInternal, "生成令牌失败", err)
	}

	return sessionToken, nil
}
