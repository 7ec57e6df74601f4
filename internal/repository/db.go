package repository

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/user/watchscape/internal/model"
)

// InitDB 初始化数据库连接并迁移表结构
func InitDB(databaseURL string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("初始化 ORM 失败: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("表结构迁移失败: %w", err)
	}

	return db, nil
}

// Migrate 迁移全部业务表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.CollectionEntry{},
		&model.PinnedFilm{},
		&model.Post{},
		&model.Notification{},
	)
}

// Repositories 仓库集合
type Repositories struct {
	DB           *gorm.DB
	User         *UserRepository
	Follow       *FollowRepository
	Collection   *CollectionRepository
	Pin          *PinRepository
	Post         *PostRepository
	Notification *NotificationRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:           db,
		User:         NewUserRepository(db),
		Follow:       NewFollowRepository(db),
		Collection:   NewCollectionRepository(db),
		Pin:          NewPinRepository(db),
		Post:         NewPostRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
