package interfaces

import "github.com/Sou930/HG-SNS/internal/model"

// FeedRepository 定义了帖子和点赞相关的数据库操作接口
type FeedRepository interface {
	CreatePost(post *model.Post) error
	DeletePost(postID int, discordID string) (bool, error)
	ListTimeline(viewerID string, limit, offset int) ([]*model.Post, error)
	ListUserPosts(ownerID, viewerID string) ([]*model.Post, error)
	CreateLike(postID int, discordID string) error
	DeleteLike(postID int, discordID string) error
}
