package user

import (
	"github.com/Sou930/HG-SNS/internal/errors"
	"github.com/Sou930/HG-SNS/internal/middleware"
	"github.com/Sou930/HG-SNS/internal/service"
	"github.com/gin-gonic/gin"
)

// UserHandler 处理与用户相关的HTTP请求
type UserHandler struct {
	userService service.UserServiceInterface
	feedService service.FeedServiceInterface
}

// NewUserHandler 创建一个新的 UserHandler 实例
func NewUserHandler(userService service.UserServiceInterface, feedService service.FeedServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
		feedService: feedService,
	}
}

type userURI struct {
	ID string `uri:"id" binding:"required,snowflake"`
}

// Me 返回调用者自己的用户记录
func (h *UserHandler) Me(c *gin.Context) {
	claims := middleware.CallerClaims(c)

	user, err := h.userService.GetCurrentUser(claims.DiscordID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, user, "")
}

// List 返回最近登录的用户列表
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListRecentUsers()
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, users, "")
}

// GetByID 返回指定用户的公开资料
func (h *UserHandler) GetByID(c *gin.Context) {
	var uri userURI
	if err := c.ShouldBindUri(&uri); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的用户ID", err))
		return
	}

	user, err := h.userService.GetUserByDiscordID(uri.ID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, user, "")
}

// GetUserPosts 返回指定用户的帖子列表
func (h *UserHandler) GetUserPosts(c *gin.Context) {
	var uri userURI
	if err := c.ShouldBindUri(&uri); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的用户ID", err))
		return
	}

	claims := middleware.CallerClaims(c)
	posts, err := h.feedService.ListUserPosts(uri.ID, claims.DiscordID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, posts, "")
}
