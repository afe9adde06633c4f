package boot

import (
	"eloquentlog/internal/repository"
	"eloquentlog/pkg/database"

	"gorm.io/gorm"
)

// Repositories 包含所有仓储实例
type Repositories struct {
	UserRepo        repository.UserRepository
	UserEmailRepo   repository.UserEmailRepository
	AccessTokenRepo repository.AccessTokenRepository
	NamespaceRepo   repository.NamespaceRepository
	MessageRepo     repository.MessageRepository
	AccountStore    repository.AccountStore
}

// InitRepositories 初始化所有仓储实例
func InitRepositories(db *gorm.DB, mongodb *database.MongoClient) *Repositories {
	return &Repositories{
		UserRepo:        repository.NewUserRepository(db),
		UserEmailRepo:   repository.NewUserEmailRepository(db),
		AccessTokenRepo: repository.NewAccessTokenRepository(db),
		NamespaceRepo:   repository.NewNamespaceRepository(db),
		MessageRepo:     repository.NewMessageRepository(mongodb),
		AccountStore:    repository.NewAccountStore(db),
	}
}
