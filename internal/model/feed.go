package model

import "time"

type Post struct {
	ID        int         `json:"id"`
	DiscordID string      `json:"discord_id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	User      *PublicUser `json:"user,omitempty"`
	LikeCount int         `json:"like_count"`
	LikedByMe bool        `json:"liked_by_me"`
}

type Like struct {
	ID        int       `json:"id"`
	PostID    int       `json:"post_id"`
	DiscordID string    `json:"discord_id"`
	CreatedAt time.Time `json:"created_at"`
}
