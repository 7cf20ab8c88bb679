package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Sou930/HG-SNS/internal/errors"
	"github.com/Sou930/HG-SNS/internal/model"
	"github.com/Sou930/HG-SNS/internal/repository/interfaces"
	"github.com/Sou930/HG-SNS/internal/util"
)

// 时间线分页参数
const (
	DefaultTimelineLimit = 50
	MaxTimelineLimit     = 100
	MaxPostLength        = 280
)

// FeedServiceInterface 定义了帖子服务的接口
type FeedServiceInterface interface {
	ListTimeline(viewerID string, limit, offset int) ([]*model.Post, error)
	ListUserPosts(ownerID, viewerID string) ([]*model.Post, error)
	CreatePost(claims util.SessionClaims, content string) (*model.Post, error)
	DeletePost(postID int, discordID string) error
	LikePost(postID int, discordID string) error
	UnlikePost(postID int, discordID string) error
}

// FeedService 处理帖子和点赞相关的业务逻辑
type FeedService struct {
	feedRepo interfaces.FeedRepository
}

// NewFeedService 创建一个新的 FeedService 实例
func NewFeedService(feedRepo interfaces.FeedRepository) *FeedService {
	return &FeedService{feedRepo: feedRepo}
}

// ClampTimelinePage 将分页参数收敛到允许的范围内
func ClampTimelinePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultTimelineLimit
	}
	if limit > MaxTimelineLimit {
		limit = MaxTimelineLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ListTimeline 返回全站帖子时间线
func (s *FeedService) ListTimeline(viewerID string, limit, offset int) ([]*model.Post, error) {
	limit, offset = ClampTimelinePage(limit, offset)

	posts, err := s.feedRepo.ListTimeline(viewerID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询时间线失败", err)
	}
	return posts, nil
}

// ListUserPosts 返回指定用户的帖子列表
func (s *FeedService) ListUserPosts(ownerID, viewerID string) ([]*model.Post, error) {
	posts, err := s.feedRepo.ListUserPosts(ownerID, viewerID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户帖子失败", err)
	}
	return posts, nil
}

// CreatePost 校验并创建新帖子，直接返回插入的字段，不做回读
func (s *FeedService) CreatePost(claims util.SessionClaims, content string) (*model.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New(errors.ErrValidation, "内容不能为空")
	}
	if utf8.RuneCountInString(content) > MaxPostLength {
		return nil, errors.New(errors.ErrValidation, "内容不能超过280个字符")
	}

	post := &model.Post{
		DiscordID: claims.DiscordID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.feedRepo.CreatePost(post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "创建帖子失败", err)
	}

	// 新帖子不可能已被点赞，无需额外查询
	post.LikeCount = 0
	post.LikedByMe = false
	post.User = &model.PublicUser{
		DiscordID:  claims.DiscordID,
		Username:   claims.Username,
		GlobalName: claims.GlobalName,
	}
	return post, nil
}

// DeletePost 仅允许删除自己的帖子；不存在与非本人统一按未找到处理
func (s *FeedService) DeletePost(postID int, discordID string) error {
	deleted, err := s.feedRepo.DeletePost(postID, discordID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除帖子失败", err)
	}
	if !deleted {
		return errors.New(errors.ErrPostNotFound, "帖子不存在")
	}
	return nil
}

// LikePost 点赞帖子，重复点赞为幂等成功
func (s *FeedService) LikePost(postID int, discordID string) error {
	if err := s.feedRepo.CreateLike(postID, discordID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "点赞失败", err)
	}
	return nil
}

// UnlikePost 取消点赞，点赞不存在时同样视为成功
func (s *FeedService) UnlikePost(postID int, discordID string) error {
	if err := s.feedRepo.DeleteLike(postID, discordID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "取消点赞失败", err)
	}
	return nil
}
