package tag

import (
	"errors"

	"terminal-terrace/blog/internal/model/post"
	"terminal-terrace/blog/internal/model/tag"

	"gorm.io/gorm"
)

// TagRepository 标签仓储层
type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) GetByID(id uint) (*tag.Tag, error) {
	var t tag.Tag
	err := r.db.First(&t, id).Error
	return &t, err
}

// FindByName 不存在时返回 gorm.ErrRecordNotFound
func (r *TagRepository) FindByName(name string) (*tag.Tag, error) {
	var t tag.Tag
	err := r.db.Where("name = ?", name).First(&t).Error
	return &t, err
}

func (r *TagRepository) Create(t *tag.Tag) error {
	return r.db.Create(t).Error
}

func (r *TagRepository) Update(t *tag.Tag) error {
	return r.db.Save(t).Error
}

func (r *TagRepository) Delete(id uint) error {
	return r.db.Delete(&tag.Tag{}, id).Error
}

// List 按名称排序
func (r *TagRepository) List() ([]tag.Tag, error) {
	var tags []tag.Tag
	err := r.db.Order("name ASC").Find(&tags).Error
	return tags, err
}

// FindOrCreateTag 查找或创建标签
func (r *TagRepository) FindOrCreateTag(name string) (*tag.Tag, error) {
	t, err := r.FindByName(name)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	t = &tag.Tag{Name: name}
	if err := r.db.Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// RemovePostLinks 删除标签的所有文章关联
func (r *TagRepository) RemovePostLinks(tagID uint) error {
	return r.db.Where("tag_id = ?", tagID).Delete(&post.PostTag{}).Error
}

// GetPosts 获取标签下的所有文章（预加载标签），按 id 升序
func (r *TagRepository) GetPosts(tagID uint) ([]post.Post, error) {
	var posts []post.Post
	err := r.db.
		Preload("Tags", orderTags).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tagID).
		Order("posts.id ASC").
		Find(&posts).Error
	return posts, err
}

func orderTags(db *gorm.DB) *gorm.DB {
	return db.Order("tags.id ASC")
}

// TagResolver 在同一事务内把名称解析为标签，未出现过的名称只创建一次
type TagResolver struct {
	repo  *TagRepository
	cache map[string]*tag.Tag
}

func NewTagResolver(repo *TagRepository) *TagResolver {
	return &TagResolver{
		repo:  repo,
		cache: make(map[string]*tag.Tag),
	}
}

// Resolve 按首次出现顺序返回去重后的标签
func (r *TagResolver) Resolve(names []string) ([]tag.Tag, error) {
	tags := make([]tag.Tag, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		t, ok := r.cache[name]
		if !ok {
			var err error
			t, err = r.repo.FindOrCreateTag(name)
			if err != nil {
				return nil, err
			}
			r.cache[name] = t
		}
		tags = append(tags, *t)
	}

	return tags, nil
}
