package tag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"terminal-terrace/blog/internal/dto"
	"terminal-terrace/blog/internal/model/post"
	"terminal-terrace/blog/internal/model/tag"

	"gorm.io/gorm"
)

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// withRepo 每个请求一个事务，出错回滚
func (s *TagService) withRepo(ctx context.Context, fn func(repo *TagRepository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewTagRepository(tx))
	})
}

func tagNotFound(id uint) error {
	return dto.NotFoundError("Tag", id)
}

func tagExists(name string) error {
	return dto.ConflictError(fmt.Sprintf("Tag with name = %s already exists", name))
}

func getTag(repo *TagRepository, id uint) (*tag.Tag, error) {
	t, err := repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, tagNotFound(id)
	}
	return t, err
}

// CreateTag 创建标签，名称已存在时返回 Conflict
func (s *TagService) CreateTag(ctx context.Context, req dto.CreateTagRequest) (*tag.Tag, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, dto.ValidationError("tag name must not be empty")
	}

	var created *tag.Tag
	err := s.withRepo(ctx, func(repo *TagRepository) error {
		_, err := repo.FindByName(req.Name)
		if err == nil {
			return tagExists(req.Name)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		t := &tag.Tag{Name: req.Name}
		if err := repo.Create(t); err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, dto.StoreError(err, "failed to create tag", fmt.Sprintf("Tag with name = %s already exists", req.Name))
	}

	slog.InfoContext(ctx, "tag created", "tag_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *TagService) GetTag(ctx context.Context, id uint) (*tag.Tag, error) {
	var found *tag.Tag
	err := s.withRepo(ctx, func(repo *TagRepository) error {
		t, err := getTag(repo, id)
		found = t
		return err
	})
	if err != nil {
		return nil, dto.StoreError(err, "failed to get tag", "")
	}
	return found, nil
}

// UpdateTag name 为 nil 时原样返回
func (s *TagService) UpdateTag(ctx context.Context, id uint, req dto.UpdateTagRequest) (*tag.Tag, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, dto.ValidationError("tag name must not be empty")
	}

	var updated *tag.Tag
	err := s.withRepo(ctx, func(repo *TagRepository) error {
		t, err := getTag(repo, id)
		if err != nil {
			return err
		}
		updated = t

		if req.Name == nil || *req.Name == t.Name {
			return nil
		}

		other, err := repo.FindByName(*req.Name)
		if err == nil && other.ID != t.ID {
			return tagExists(*req.Name)
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		t.Name = *req.Name
		return repo.Update(t)
	})
	if err != nil {
		name := ""
		if req.Name != nil {
			name = *req.Name
		}
		return nil, dto.StoreError(err, "failed to update tag", fmt.Sprintf("Tag with name = %s already exists", name))
	}
	return updated, nil
}

// DeleteTag 删除标签及其关联，文章本身保留
func (s *TagService) DeleteTag(ctx context.Context, id uint) error {
	err := s.withRepo(ctx, func(repo *TagRepository) error {
		if _, err := getTag(repo, id); err != nil {
			return err
		}
		if err := repo.RemovePostLinks(id); err != nil {
			return err
		}
		return repo.Delete(id)
	})
	if err != nil {
		return dto.StoreError(err, "failed to delete tag", "")
	}

	slog.InfoContext(ctx, "tag deleted", "tag_id", id)
	return nil
}

func (s *TagService) ListTags(ctx context.Context) ([]tag.Tag, error) {
	var tags []tag.Tag
	err := s.withRepo(ctx, func(repo *TagRepository) error {
		var err error
		tags, err = repo.List()
		return err
	})
	if err != nil {
		return nil, dto.StoreError(err, "failed to list tags", "")
	}
	return tags, nil
}

// ListTagPosts 标签不存在时返回 NotFound
func (s *TagService) ListTagPosts(ctx context.Context, id uint) ([]post.Post, error) {
	var posts []post.Post
	err := s.withRepo(ctx, func(repo *TagRepository) error {
		if _, err := getTag(repo, id); err != nil {
			return err
		}
		var err error
		posts, err = repo.GetPosts(id)
		return err
	})
	if err != nil {
		return nil, dto.StoreError(err, "failed to list tag posts", "")
	}
	return posts, nil
}
