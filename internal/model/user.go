package model

import "time"

// User 结构体表示用户模型
type User struct {
	ID         int       `json:"-"` // 内部自增ID不应在JSON中暴露
	DiscordID  string    `json:"discord_id"`
	Username   string    `json:"username"`
	GlobalName string    `json:"global_name"`
	Avatar     string    `json:"avatar"`
	CreatedAt  time.Time `json:"created_at"`
	LastLogin  time.Time `json:"last_login"`
}

// PublicUser 是对外暴露的用户公开字段投影
type PublicUser struct {
	DiscordID  string `json:"discord_id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Avatar     string `json:"avatar"`
}

// Public 返回用户的公开投影
func (u *User) Public() *PublicUser {
	return &PublicUser{
		DiscordID:  u.DiscordID,
		Username:   u.Username,
		GlobalName: u.GlobalName,
		Avatar:     u.Avatar,
	}
}
