package model

import (
	"gorm.io/gorm"

	"terminal-terrace/blog/internal/model/post"
	"terminal-terrace/blog/internal/model/tag"
)

func InitTable(db *gorm.DB) error {
	// post_tags 使用显式的关联模型
	if err := db.SetupJoinTable(&post.Post{}, "Tags", &post.PostTag{}); err != nil {
		return err
	}

	// 自动迁移数据库表结构
	return db.AutoMigrate(
		&tag.Tag{},
		&post.Post{},
		&post.PostTag{},
	)
}
