package mysql

import (
	"database/sql"
	"fmt"

	"github.com/Sou930/HG-SNS/internal/model"
	"github.com/Sou930/HG-SNS/internal/util"
	"go.uber.org/zap"
)

// userRepository 实现了 UserRepository 接口
type userRepository struct {
	db *sql.DB
}

// NewUserRepository 创建一个新的 userRepository 实例
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db}
}

// Upsert 以 discord_id 为键原子性地插入或更新用户
func (r *userRepository) Upsert(user *model.User) error {
	query := `INSERT INTO users (discord_id, username, global_name, avatar, created_at, last_login)
              VALUES (?, ?, ?, ?, NOW(), NOW())
              ON DUPLICATE KEY UPDATE
                  username = VALUES(username),
                  global_name = VALUES(global_name),
                  avatar = VALUES(avatar),
                  last_login = NOW()`
	_, err := r.db.Exec(query, user.DiscordID, user.Username, user.GlobalName, user.Avatar)
	if err != nil {
		util.Logger.Error("用户Upsert失败",
			zap.Error(err),
			zap.String("discord_id", user.DiscordID))
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	util.Logger.Info("用户Upsert成功", zap.String("discord_id", user.DiscordID))
	return nil
}

// FindByDiscordID 通过 discord_id 查找用户
func (r *userRepository) FindByDiscordID(discordID string) (*model.User, error) {
	query := `SELECT id, discord_id, username, global_name, avatar, created_at, last_login
              FROM users WHERE discord_id = ?`
	var user model.User
	err := r.db.QueryRow(query, discordID).Scan(
		&user.ID, &user.DiscordID, &user.Username, &user.GlobalName,
		&user.Avatar, &user.CreatedAt, &user.LastLogin,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListRecent 返回最近登录的用户列表
func (r *userRepository) ListRecent(limit int) ([]*model.User, error) {
	query := `SELECT id, discord_id, username, global_name, avatar, created_at, last_login
              FROM users
              ORDER BY last_login DESC
              LIMIT ?`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		util.Logger.Error("查询用户列表失败", zap.Error(err))
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var user model.User
		err := rows.Scan(
			&user.ID, &user.DiscordID, &user.Username, &user.GlobalName,
			&user.Avatar, &user.CreatedAt, &user.LastLogin,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}
