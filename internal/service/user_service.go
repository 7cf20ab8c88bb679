package service

import (
	"github.com/Sou930/HG-SNS/internal/errors"
	"github.com/Sou930/HG-SNS/internal/model"
	"github.com/Sou930/HG-SNS/internal/repository/interfaces"
)

// 用户列表固定返回最近登录的20人
const recentUserLimit = 20

// UserServiceInterface 定义了用户服务的接口
type UserServiceInterface interface {
	GetCurrentUser(discordID string) (*model.User, error)
	GetUserByDiscordID(discordID string) (*model.PublicUser, error)
	ListRecentUsers() ([]*model.PublicUser, error)
}

// UserService 处理与用户相关的业务逻辑
type UserService struct {
	userRepo interfaces.UserRepository
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(userRepo interfaces.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetCurrentUser 返回调用者自己的用户记录
func (s *UserService) GetCurrentUser(discordID string) (*model.User, error) {
	user, err := s.userRepo.FindByDiscordID(discordID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		// 持有有效令牌却没有用户记录，正常情况下不可达
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	return user, nil
}

// GetUserByDiscordID 返回指定用户的公开资料
func (s *UserService) GetUserByDiscordID(discordID string) (*model.PublicUser, error) {
	user, err := s.userRepo.FindByDiscordID(discordID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	return user.Public(), nil
}

// ListRecentUsers 返回最近登录的用户公开资料列表
func (s *UserService) ListRecentUsers() ([]*model.PublicUser, error) {
	users, err := s.userRepo.ListRecent(recentUserLimit)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户列表失败", err)
	}

	publicUsers := make([]*model.PublicUser, 0, len(users))
	for _, user := range users {
		publicUsers = append(publicUsers, user.Public())
	}
	return publicUsers, nil
}
