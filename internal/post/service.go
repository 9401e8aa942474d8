package post

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"terminal-terrace/blog/internal/dto"
	"terminal-terrace/blog/internal/model/post"
	"terminal-terrace/blog/internal/model/tag"
	tagPkg "terminal-terrace/blog/internal/tag"

	"gorm.io/gorm"
)

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// repos 同一事务内的仓储
type repos struct {
	posts *PostRepository
	tags  *tagPkg.TagRepository
}

// withRepos 每个请求一个事务，出错回滚
func (s *PostService) withRepos(ctx context.Context, fn func(r repos) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repos{
			posts: NewPostRepository(tx),
			tags:  tagPkg.NewTagRepository(tx),
		})
	})
}

func postNotFound(id uint) error {
	return dto.NotFoundError("Post", id)
}

func titleConflict(title string) string {
	return fmt.Sprintf("Post with title = %s already exists", title)
}

func getPost(r repos, id uint) (*post.Post, error) {
	p, err := r.posts.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, postNotFound(id)
	}
	return p, err
}

// ensureTitleFree 标题被其他文章占用时返回 Conflict
func ensureTitleFree(r repos, title string, selfID uint) error {
	other, err := r.posts.FindByTitle(title)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.ID != selfID {
		return dto.ConflictError(titleConflict(title))
	}
	return nil
}

func validateTagRefs(refs []dto.TagRef) error {
	for _, ref := range refs {
		if strings.TrimSpace(ref.Name) == "" {
			return dto.ValidationError("tag name must not be empty")
		}
	}
	return nil
}

func tagIDs(tags []tag.Tag) []uint {
	ids := make([]uint, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// CreatePost 创建文章并关联标签，不存在的标签名会被创建
func (s *PostService) CreatePost(ctx context.Context, req dto.CreatePostRequest) (*post.Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, dto.ValidationError("title must not be empty")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, dto.ValidationError("content must not be empty")
	}
	if err := validateTagRefs(req.Tags); err != nil {
		return nil, err
	}

	var created *post.Post
	err := s.withRepos(ctx, func(r repos) error {
		if err := ensureTitleFree(r, req.Title, 0); err != nil {
			return err
		}

		tags, err := tagPkg.NewTagResolver(r.tags).Resolve(dto.TagNames(req.Tags))
		if err != nil {
			return err
		}

		p := &post.Post{
			Title:   req.Title,
			Content: req.Content,
		}
		if err := r.posts.Create(p); err != nil {
			return err
		}
		if err := r.posts.ReplaceTags(p.ID, tagIDs(tags)); err != nil {
			return err
		}

		created, err = getPost(r, p.ID)
		return err
	})
	if err != nil {
		return nil, dto.StoreError(err, "failed to create post", titleConflict(req.Title))
	}

	slog.InfoContext(ctx, "post created", "post_id", created.ID, "tags", len(created.Tags))
	return created, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*post.Post, error) {
	var found *post.Post
	err := s.withRepos(ctx, func(r repos) error {
		p, err := getPost(r, id)
		found = p
		return err
	})
	if err != nil {
		return nil, dto.StoreError(err, "failed to get post", "")
	}
	return found, nil
}

// UpdatePost 只修改请求中出现的字段；tags 出现时整体替换（空数组表示清空）
func (s *PostService) UpdatePost(ctx context.Context, id uint, req dto.UpdatePostRequest) (*post.Post, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, dto.ValidationError("title must not be empty")
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return nil, dto.ValidationError("content must not be empty")
	}
	if req.Tags != nil {
		if err := validateTagRefs(*req.Tags); err != nil {
			return nil, err
		}
	}

	var updated *post.Post
	err := s.withRepos(ctx, func(r repos) error {
		p, err := getPost(r, id)
		if err != nil {
			return err
		}

		if req.Title != nil {
			if *req.Title != p.Title {
				if err := ensureTitleFree(r, *req.Title, p.ID); err != nil {
					return err
				}
			}
			p.Title = *req.Title
		}
		if req.Content != nil {
			p.Content = *req.Content
		}
		if req.Tags != nil {
			tags, err := tagPkg.NewTagResolver(r.tags).Resolve(dto.TagNames(*req.Tags))
			if err != nil {
				return err
			}
			if err := r.posts.ReplaceTags(p.ID, tagIDs(tags)); err != nil {
				return err
			}
		}

		// 任一字段出现都刷新 updated_at
		if req.Title != nil || req.Content != nil || req.Tags != nil {
			if err := r.posts.Update(p); err != nil {
				return err
			}
		}

		updated, err = getPost(r, p.ID)
		return err
	})
	if err != nil {
		// 未改标题时唯一冲突只可能来自并发创建的同名标签
		conflictMsg := "Tag already exists"
		if req.Title != nil {
			conflictMsg = titleConflict(*req.Title)
		}
		return nil, dto.StoreError(err, "failed to update post", conflictMsg)
	}
	return updated, nil
}

// DeletePost 删除文章及其关联，标签保留
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	err := s.withRepos(ctx, func(r repos) error {
		if _, err := getPost(r, id); err != nil {
			return err
		}
		if err := r.posts.RemoveTags(id); err != nil {
			return err
		}
		return r.posts.Delete(id)
	})
	if err != nil {
		return dto.StoreError(err, "failed to delete post", "")
	}

	slog.InfoContext(ctx, "post deleted", "post_id", id)
	return nil
}

// QueryPosts 按创建时间开区间和标签名筛选
func (s *PostService) QueryPosts(ctx context.Context, req dto.QueryPostsRequest) ([]post.Post, error) {
	filter := PostFilter{TagNames: dto.TagNames(req.Tags)}
	if req.DateFrom != nil {
		from := req.DateFrom.Time.UTC()
		filter.DateFrom = &from
	}
	if req.DateTo != nil {
		to := req.DateTo.Time.UTC()
		filter.DateTo = &to
	}

	var posts []post.Post
	err := s.withRepos(ctx, func(r repos) error {
		var err error
		posts, err = r.posts.Query(filter)
		return err
	})
	if err != nil {
		return nil, dto.StoreError(err, "failed to query posts", "")
	}

	slog.DebugContext(ctx, "posts queried", "count", len(posts), "tags", filter.TagNames)
	return posts, nil
}
