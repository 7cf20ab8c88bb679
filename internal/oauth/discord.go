package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Sou930/HG-SNS/config"
	"golang.org/x/oauth2"
)

// Discord OAuth2 端点
const (
	discordAuthURL  = "https://discord.com/oauth2/authorize"
	discordTokenURL = "https://discord.com/api/oauth2/token"
	discordAPIBase  = "https://discord.com/api"
)

// Profile 表示 Discord 返回的用户资料
type Profile struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Avatar     string `json:"avatar"`
}

// DiscordClient 负责与 Discord OAuth2 端点通信
type DiscordClient struct {
	conf    *oauth2.Config
	apiBase string
}

// NewDiscordClient 从全局配置创建一个新的 DiscordClient 实例
func NewDiscordClient() *DiscordClient {
	return &DiscordClient{
		conf: &oauth2.Config{
			ClientID:     config.AppConfig.DiscordClientID,
			ClientSecret: config.AppConfig.DiscordClientSecret,
			RedirectURL:  config.AppConfig.DiscordRedirectURI,
			Scopes:       []string{"identify"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  discordAuthURL,
				TokenURL: discordTokenURL,
			},
		},
		apiBase: discordAPIBase,
	}
}

// ExchangeCode 用授权码换取访问令牌
func (c *DiscordClient) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	return token, nil
}

// FetchProfile 用访问令牌获取当前用户的资料
func (c *DiscordClient) FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	client := c.conf.Client(ctx, token)
	resp, err := client.Get(c.apiBase + "/users/@me")
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile request returned status %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &profile, nil
}
