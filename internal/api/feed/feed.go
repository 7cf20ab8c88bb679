package feed

import (
	"net/http"
	"strconv"

	"github.com/Sou930/HG-SNS/internal/errors"
	"github.com/Sou930/HG-SNS/internal/middleware"
	"github.com/Sou930/HG-SNS/internal/service"
	"github.com/gin-gonic/gin"
)

// FeedHandler 处理帖子和点赞相关的HTTP请求
type FeedHandler struct {
	feedService service.FeedServiceInterface
}

// NewFeedHandler 创建一个新的 FeedHandler 实例
func NewFeedHandler(feedService service.FeedServiceInterface) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// ListTimeline 返回全站帖子时间线
func (h *FeedHandler) ListTimeline(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	claims := middleware.CallerClaims(c)
	posts, err := h.feedService.ListTimeline(claims.DiscordID, limit, offset)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, posts, "")
}

// CreatePost 创建新帖子
func (h *FeedHandler) CreatePost(c *gin.Context) {
	var postData struct {
		Content string `json:"content" binding:"required"`
	}

	if err := c.ShouldBindJSON(&postData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	claims := middleware.CallerClaims(c)
	post, err := h.feedService.CreatePost(claims, postData.Content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, errors.SuccessResponse{
		Code: http.StatusCreated,
		Data: post,
	})
}

// DeletePost 删除自己的帖子
func (h *FeedHandler) DeletePost(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的帖子ID", err))
		return
	}

	claims := middleware.CallerClaims(c)
	if err := h.feedService.DeletePost(postID, claims.DiscordID); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "帖子已删除")
}

// LikePost 点赞帖子
func (h *FeedHandler) LikePost(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的帖子ID", err))
		return
	}

	claims := middleware.CallerClaims(c)
	if err := h.feedService.LikePost(postID, claims.DiscordID); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "点赞成功")
}

// UnlikePost 取消点赞
func (h *FeedHandler) UnlikePost(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的帖子ID", err))
		return
	}

	claims := middleware.CallerClaims(c)
	if err := h.feedService.UnlikePost(postID, claims.DiscordID); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "已取消点赞")
}
