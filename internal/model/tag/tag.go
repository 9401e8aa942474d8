// Package tag 标签模型
package tag

// Tag 标签表，name 全局唯一
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(128);uniqueIndex;not null" json:"name"`
}
