package post

import (
	"time"

	"terminal-terrace/blog/internal/model/post"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository 文章仓储层
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// PostFilter 查询条件，零值字段不参与过滤
type PostFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	TagNames []string
}

func orderTags(db *gorm.DB) *gorm.DB {
	return db.Order("tags.id ASC")
}

// GetByID 预加载标签
func (r *PostRepository) GetByID(id uint) (*post.Post, error) {
	var p post.Post
	err := r.db.Preload("Tags", orderTags).First(&p, id).Error
	return &p, err
}

func (r *PostRepository) FindByTitle(title string) (*post.Post, error) {
	var p post.Post
	err := r.db.Where("title = ?", title).First(&p).Error
	return &p, err
}

// Create 只写 posts 表，关联由 ReplaceTags 维护
func (r *PostRepository) Create(p *post.Post) error {
	return r.db.Omit(clause.Associations).Create(p).Error
}

func (r *PostRepository) Update(p *post.Post) error {
	return r.db.Omit(clause.Associations).Save(p).Error
}

func (r *PostRepository) Delete(id uint) error {
	return r.db.Delete(&post.Post{}, id).Error
}

// RemoveTags 移除文章的所有标签关联
func (r *PostRepository) RemoveTags(postID uint) error {
	return r.db.Where("post_id = ?", postID).Delete(&post.PostTag{}).Error
}

// ReplaceTags 用给定标签集合覆盖文章的关联
func (r *PostRepository) ReplaceTags(postID uint, tagIDs []uint) error {
	if err := r.RemoveTags(postID); err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}

	links := make([]post.PostTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, post.PostTag{PostID: postID, TagID: tagID})
	}
	return r.db.Create(&links).Error
}

// Query 时间边界为开区间；多个标签名之间是"任一匹配"，结果按 id 升序
func (r *PostRepository) Query(filter PostFilter) ([]post.Post, error) {
	q := r.db.Model(&post.Post{}).Preload("Tags", orderTags)

	if filter.DateFrom != nil {
		q = q.Where("posts.created_at > ?", filter.DateFrom.UTC())
	}
	if filter.DateTo != nil {
		q = q.Where("posts.created_at < ?", filter.DateTo.UTC())
	}
	if len(filter.TagNames) > 0 {
		sub := r.db.Session(&gorm.Session{NewDB: true}).
			Table("post_tags").
			Select("1").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("post_tags.post_id = posts.id").
			Where("tags.name IN ?", filter.TagNames)
		q = q.Where("EXISTS (?)", sub)
	}

	var posts []post.Post
	err := q.Order("posts.id ASC").Find(&posts).Error
	return posts, err
}
