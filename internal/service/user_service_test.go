package service

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/Sou930/HG-SNS/internal/errors"
	"github.com/Sou930/HG-SNS/internal/model"
	"github.com/stretchr/testify/assert"
)

// TestGetCurrentUser 测试获取当前用户
func TestGetCurrentUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	now := time.Now()
	mockRepo.On("FindByDiscordID", "42").Return(&model.User{
		ID:        1,
		DiscordID: "42",
		Username:  "bob",
		LastLogin: now,
	}, nil)

	user, err := svc.GetCurrentUser("42")
	assert.NoError(t, err)
	assert.Equal(t, "42", user.DiscordID)
	assert.Equal(t, "bob", user.Username)
	mockRepo.AssertExpectations(t)
}

// TestGetCurrentUserNotFound 测试有效令牌但用户记录缺失的情况
func TestGetCurrentUserNotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	mockRepo.On("FindByDiscordID", "404").Return(nil, nil)

	_, err := svc.GetCurrentUser("404")
	appErr, ok := err.(*apperrors.AppError)
	assert.True(t, ok)
	assert.Equal(t, apperrors.ErrUserNotFound, appErr.Code)
}

// TestGetUserByDiscordIDProjection 测试公开资料只包含公开字段
func TestGetUserByDiscordIDProjection(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	mockRepo.On("FindByDiscordID", "42").Return(&model.User{
		ID:         99,
		DiscordID:  "42",
		Username:   "bob",
		GlobalName: "Bob",
		Avatar:     "abc123",
	}, nil)

	user, err := svc.GetUserByDiscordID("42")
	assert.NoError(t, err)
	assert.Equal(t, &model.PublicUser{
		DiscordID:  "42",
		Username:   "bob",
		GlobalName: "Bob",
		Avatar:     "abc123",
	}, user)
}

// TestListRecentUsers 测试最近登录用户列表
func TestListRecentUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	mockRepo.On("ListRecent", 20).Return([]*model.User{
		{ID: 1, DiscordID: "42", Username: "bob"},
		{ID: 2, DiscordID: "43", Username: "alice"},
	}, nil)

	users, err := svc.ListRecentUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "42", users[0].DiscordID)
	assert.Equal(t, "alice", users[1].Username)
	mockRepo.AssertExpectations(t)
}

// TestListRecentUsersStorageError 测试存储错误被包装为数据库错误
func TestListRecentUsersStorageError(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	mockRepo.On("ListRecent", 20).Return(nil, errors.New("connection refused"))

	_, err := svc.ListRecentUsers()
	appErr, ok := err.(*apperrors.AppError)
	assert.True(t, ok)
	assert.Equal(t, apperrors.ErrDatabase, appErr.Code)
}
