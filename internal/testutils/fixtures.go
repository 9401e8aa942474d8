package testutils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"terminal-terrace/blog/internal/model/post"
	"terminal-terrace/blog/internal/model/tag"
)

// CreateTestTag creates a tag with a unique name
func CreateTestTag(db *gorm.DB, opts ...TagOption) *tag.Tag {
	testTag := &tag.Tag{
		Name: fmt.Sprintf("tag_%s", uuid.NewString()),
	}

	for _, opt := range opts {
		opt(testTag)
	}

	if err := db.Create(testTag).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test tag: %v", err))
	}

	return testTag
}

// TagOption configures test tag
type TagOption func(*tag.Tag)

// WithTagName sets the tag name
func WithTagName(name string) TagOption {
	return func(t *tag.Tag) {
		t.Name = name
	}
}

// CreateTestPost creates a post with a unique title and links the given tags
func CreateTestPost(db *gorm.DB, opts ...PostOption) *post.Post {
	testPost := &post.Post{
		Title:   fmt.Sprintf("Test Post %s", uuid.NewString()),
		Content: "Test post content",
	}

	for _, opt := range opts {
		opt(testPost)
	}

	if err := db.Omit(clause.Associations).Create(testPost).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test post: %v", err))
	}

	for _, t := range testPost.Tags {
		link := &post.PostTag{PostID: testPost.ID, TagID: t.ID}
		if err := db.Create(link).Error; err != nil {
			panic(fmt.Sprintf("Failed to link test tag: %v", err))
		}
	}

	return testPost
}

// PostOption configures test post
type PostOption func(*post.Post)

// WithTitle sets the post title
func WithTitle(title string) PostOption {
	return func(p *post.Post) {
		p.Title = title
	}
}

// WithContent sets the post content
func WithContent(content string) PostOption {
	return func(p *post.Post) {
		p.Content = content
	}
}

// WithTags attaches already persisted tags
func WithTags(tags ...*tag.Tag) PostOption {
	return func(p *post.Post) {
		for _, t := range tags {
			p.Tags = append(p.Tags, *t)
		}
	}
}

// SetCreatedAt rewrites created_at (and updated_at) of a post, bypassing gorm's timestamps
func SetCreatedAt(db *gorm.DB, postID uint, at time.Time) {
	err := db.Model(&post.Post{}).
		Where("id = ?", postID).
		UpdateColumns(map[string]interface{}{"created_at": at.UTC(), "updated_at": at.UTC()}).Error
	if err != nil {
		panic(fmt.Sprintf("Failed to set created_at: %v", err))
	}
}
