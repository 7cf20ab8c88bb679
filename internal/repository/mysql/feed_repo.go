package mysql

import (
	"database/sql"
	"fmt"

	"github.com/Sou930/HG-SNS/internal/model"
	"github.com/Sou930/HG-SNS/internal/util"
	"go.uber.org/zap"
)

type feedRepository struct {
	db *sql.DB
}

func NewFeedRepository(db *sql.DB) *feedRepository {
	return &feedRepository{db: db}
}

// 帖子列表的聚合查询：点赞数用 LEFT JOIN + COUNT 计算，
// 当前用户的点赞状态用 EXISTS 子查询计算，避免逐帖查询
const postListSelect = `
        SELECT p.id, p.discord_id, p.content, p.created_at,
               u.username, u.global_name, u.avatar,
               COUNT(l.id) AS like_count,
               EXISTS(
                   SELECT 1 FROM likes
                   WHERE post_id = p.id AND discord_id = ?
               ) AS liked_by_me
        FROM posts p
        JOIN users u ON p.discord_id = u.discord_id
        LEFT JOIN likes l ON l.post_id = p.id`

const postListGroupOrder = `
        GROUP BY p.id, p.discord_id, p.content, p.created_at,
                 u.username, u.global_name, u.avatar
        ORDER BY p.created_at DESC, p.id DESC`

func (r *feedRepository) CreatePost(post *model.Post) error {
	query := `INSERT INTO posts (discord_id, content, created_at) VALUES (?, ?, NOW())`
	result, err := r.db.Exec(query, post.DiscordID, post.Content)
	if err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err))
		return fmt.Errorf("failed to insert post: %w", err)
	}

	postID, err := result.LastInsertId()
	if err != nil {
		util.Logger.Error("获取新帖子ID失败", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	post.ID = int(postID)

	util.Logger.Info("帖子创建成功", zap.Int("post_id", post.ID))
	return nil
}

// DeletePost 仅当帖子属于 discordID 时删除，返回是否有行被删除
func (r *feedRepository) DeletePost(postID int, discordID string) (bool, error) {
	query := `DELETE FROM posts WHERE id = ? AND discord_id = ?`
	result, err := r.db.Exec(query, postID, discordID)
	if err != nil {
		util.Logger.Error("删除帖子失败", zap.Error(err), zap.Int("post_id", postID))
		return false, fmt.Errorf("failed to delete post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}

// ListTimeline 返回按时间倒序分页的全站帖子列表
func (r *feedRepository) ListTimeline(viewerID string, limit, offset int) ([]*model.Post, error) {
	query := postListSelect + postListGroupOrder + `
        LIMIT ? OFFSET ?`

	rows, err := r.db.Query(query, viewerID, limit, offset)
	if err != nil {
		util.Logger.Error("查询时间线失败", zap.Error(err))
		return nil, fmt.Errorf("failed to query timeline: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// ListUserPosts 返回指定用户的帖子列表，按时间倒序
func (r *feedRepository) ListUserPosts(ownerID, viewerID string) ([]*model.Post, error) {
	query := postListSelect + `
        WHERE p.discord_id = ?` + postListGroupOrder

	rows, err := r.db.Query(query, viewerID, ownerID)
	if err != nil {
		util.Logger.Error("查询用户帖子失败",
			zap.Error(err),
			zap.String("discord_id", ownerID))
		return nil, fmt.Errorf("failed to query user posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// CreateLike 幂等地插入点赞记录，重复点赞由唯一约束吸收
func (r *feedRepository) CreateLike(postID int, discordID string) error {
	query := `INSERT INTO likes (post_id, discord_id, created_at)
              VALUES (?, ?, NOW())
              ON DUPLICATE KEY UPDATE created_at = created_at`
	_, err := r.db.Exec(query, postID, discordID)
	if err != nil {
		util.Logger.Error("创建点赞失败",
			zap.Error(err),
			zap.Int("post_id", postID),
			zap.String("discord_id", discordID))
		return fmt.Errorf("failed to insert like: %w", err)
	}
	return nil
}

// DeleteLike 删除点赞记录，不存在时视为成功
func (r *feedRepository) DeleteLike(postID int, discordID string) error {
	query := `DELETE FROM likes WHERE post_id = ? AND discord_id = ?`
	_, err := r.db.Exec(query, postID, discordID)
	if err != nil {
		util.Logger.Error("删除点赞失败",
			zap.Error(err),
			zap.Int("post_id", postID),
			zap.String("discord_id", discordID))
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}

func scanPosts(rows *sql.Rows) ([]*model.Post, error) {
	posts := []*model.Post{}
	for rows.Next() {
		var post model.Post
		var user model.PublicUser
		err := rows.Scan(
			&post.ID, &post.DiscordID, &post.Content, &post.CreatedAt,
			&user.Username, &user.GlobalName, &user.Avatar,
			&post.LikeCount, &post.LikedByMe,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		user.DiscordID = post.DiscordID
		post.User = &user
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}
