// Package post 文章模型
package post

import (
	"time"

	"terminal-terrace/blog/internal/model/tag"
)

// Post 文章表，title 全局唯一
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(256);uniqueIndex;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
	// 通过 post_tags 关联，只用于预加载；反向的"标签下的文章"走仓储查询
	Tags []tag.Tag `gorm:"many2many:post_tags;constraint:OnDelete:CASCADE" json:"tags"`
}

// PostTag 文章-标签关联表
type PostTag struct {
	PostID uint `gorm:"primaryKey" json:"post_id"`
	TagID  uint `gorm:"primaryKey;index" json:"tag_id"`
}

func (PostTag) TableName() string {
	return "post_tags"
}
