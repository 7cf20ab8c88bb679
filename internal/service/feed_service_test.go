package service

import (
	"strings"
	"testing"

	"github.com/Sou930/HG-SNS/internal/errors"
	"github.com/Sou930/HG-SNS/internal/model"
	"github.com/Sou930/HG-SNS/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	util.InitLogger("error")
}

// MockFeedRepository 是 FeedRepository 接口的模拟实现
type MockFeedRepository struct {
	mock.Mock
}

func (m *MockFeedRepository) CreatePost(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockFeedRepository) DeletePost(postID int, discordID string) (bool, error) {
	args := m.Called(postID, discordID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFeedRepository) ListTimeline(viewerID string, limit, offset int) ([]*model.Post, error) {
	args := m.Called(viewerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockFeedRepository) ListUserPosts(ownerID, viewerID string) ([]*model.Post, error) {
	args := m.Called(ownerID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockFeedRepository) CreateLike(postID int, discordID string) error {
	args := m.Called(postID, discordID)
	return args.Error(0)
}

func (m *MockFeedRepository) DeleteLike(postID int, discordID string) error {
	args := m.Called(postID, discordID)
	return args.Error(0)
}

var testClaims = util.SessionClaims{
	DiscordID:  "42",
	Username:   "bob",
	GlobalName: "Bob",
}

// TestCreatePostValidation 测试帖子内容校验
func TestCreatePostValidation(t *testing.T) {
	mockRepo := new(MockFeedRepository)
	svc := NewFeedService(mockRepo)

	// 空内容
	_, err := svc.CreatePost(testClaims, "")
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrValidation, appErr.Code)

	// 去除空白后为空
	_, err = svc.CreatePost(testClaims, "   \n\t  ")
	appErr, ok = err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrValidation, appErr.Code)

	// 超过280字符
	_, err = svc.CreatePost(testClaims, strings.Repeat("a", 281))
	appErr, ok = err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrValidation, appErr.Code)

	// 校验失败时不应触达存储层
	mockRepo.AssertNotCalled(t, "CreatePost", mock.Anything)
}

// TestCreatePostSuccess 测试成功创建帖子
func TestCreatePostSuccess(t *testing.T) {
	mockRepo := new(MockFeedRepository)
	svc := NewFeedService(mockRepo)

	mockRepo.On("CreatePost", mock.AnythingOfType("*model.Post")).Run(func(args mock.Arguments) {
		args.Get(0).(*model.Post).ID = 7
	}).Return(nil)

	post, err := svc.CreatePost(testClaims, "  hello  ")
	assert.NoError(t, err)
	assert.Equal(t, 7, post.ID)
	assert.Equal(t, "hello", post.Content) // 前后空白被去除
	assert.Equal(t, "42", post.DiscordID)
	assert.Equal(t, 0, post.LikeCount)
	assert.False(t, post.LikedByMe)
	assert.Equal(t, "bob", post.User.Username)
	mockRepo.AssertExpectations(t)
}

// TestCreatePostBoundaryLength 测试恰好280字符的内容可以通过
func TestCreatePostBoundaryLength(t *testing.T) {
	mockRepo := new(MockFeedRepository)
	svc := NewFeedService(mockRepo)

	mockRepo.On("CreatePost", mock.AnythingOfType("*model.Post")).Return(nil)

	_, err := svc.CreatePost(testClaims, strings.Repeat("カ", 280))
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestClampTimelinePage 测试分页参数收敛
func TestClampTimelinePage(t *testing.T) {
	limit, offset := ClampTimelinePage(0, 0)
	assert.Equal(t, DefaultTimelineLimit, limit)
	assert.Equal(t, 0, offset)

	limit, _ = ClampTimelinePage(200, 0)
	assert.Equal(t, MaxTimelineLimit, limit)

	limit, offset = ClampTimelinePage(-1, -5)
	assert.Equal(t, DefaultTimelineLimit, limit)
	assert.Equal(t, 0, offset)

	limit, offset = ClampTimelinePage(30, 10)
	assert.Equal(t, 30, limit)
	assert.Equal(t, 10, offset)
}

// TestListTimelineClampsLimit 测试时间线查询使用收敛后的分页参数
func TestListTimelineClampsLimit(t *testing.T) {
	mockRepo := new(MockFeedRepository)
	svc := NewFeedService(mockRepo)

	mockRepo.On("ListTimeline", "42", 100, 0).Return([]*model.Post{}, nil)

	posts, err := svc.ListTimeline("42", 200, 0)
	assert.NoError(t, err)
	assert.Empty(t, posts)
	mockRepo.AssertExpectations(t)
}

// TestDeletePostNotOwned 测试删除他人帖子返回未找到
func TestDeletePostNotOwned(t *testing.T) {
	mockRepo := new(MockFeedRepository)
	svc := NewFeedService(mockRepo)

	mockRepo.On("DeletePost", 5, "42").Return(false, nil)

	err := svc.DeletePost(5, "42")
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrPostNotFound, appErr.Code)
	mockRepo.AssertExpectations(t)
}

// TestDeletePostSuccess 测试删除自己的帖子
func TestDeletePostSuccess(t *testing.T) {
	mockRepo := new(MockFeedRepository)
	svc := NewFeedService(mockRepo)

	mockRepo.On("DeletePost", 5, "42").Return(true, nil)

	assert.NoError(t, svc.DeletePost(5, "42"))
	mockRepo.AssertExpectations(t)
}

// TestLikeUnlikeIdempotent 测试点赞与取消点赞均委托给幂等的存储操作
func TestLikeUnlikeIdempotent(t *testing.T) {
	mockRepo := new(MockFeedRepository)
	svc := NewFeedService(mockRepo)

	mockRepo.On("CreateLike", 5, "42").Return(nil).Twice()
	mockRepo.On("DeleteLike", 5, "42").Return(nil)

	assert.NoError(t, svc.LikePost(5, "42"))
	assert.NoError(t, svc.LikePost(5, "42"))
	assert.NoError(t, svc.UnlikePost(5, "42"))
	mockRepo.AssertExpectations(t)
}
