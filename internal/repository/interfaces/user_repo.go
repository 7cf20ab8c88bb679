package interfaces

import "github.com/Sou930/HG-SNS/internal/model"

// UserRepository 接口定义了用户仓库应该实现的方法
type UserRepository interface {
	Upsert(user *model.User) error
	FindByDiscordID(discordID string) (*model.User, error)
	ListRecent(limit int) ([]*model.User, error)
}
