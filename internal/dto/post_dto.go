package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"terminal-terrace/blog/internal/model/post"
)

// TagRef 请求体中的标签引用，只按名称匹配
type TagRef struct {
	Name string `json:"name" binding:"required,max=128" example:"go"`
}

// CreatePostRequest 创建文章请求
type CreatePostRequest struct {
	Title   string   `json:"title" binding:"required,max=256" example:"Hello"`
	Content string   `json:"content" binding:"required" example:"First post"`
	Tags    []TagRef `json:"tags" binding:"required,dive"`
}

// UpdatePostRequest 更新文章请求，缺省字段保持不变
type UpdatePostRequest struct {
	Title   *string   `json:"title,omitempty" binding:"omitempty,max=256"`
	Content *string   `json:"content,omitempty"`
	Tags    *[]TagRef `json:"tags,omitempty" binding:"omitempty,dive"`
}

// QueryPostsRequest 文章筛选条件，全部可选
type QueryPostsRequest struct {
	DateFrom *Timestamp `json:"date_from,omitempty" swaggertype:"string" example:"2024-01-01T00:00:00Z"`
	DateTo   *Timestamp `json:"date_to,omitempty" swaggertype:"string" example:"2024-12-31T23:59:59Z"`
	Tags     []TagRef   `json:"tags,omitempty" binding:"omitempty,dive"`
}

// Timestamp 接受 RFC3339、不带时区的 2006-01-02T15:04:05 以及 2006-01-02，不带时区按 UTC 处理
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			ts.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", raw)
}

// NewTimestamp 测试和调用方构造筛选条件用
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t.UTC()}
}

// TagNames 按出现顺序返回名称
func TagNames(refs []TagRef) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	return names
}

// PostResponse 文章及其标签
type PostResponse struct {
	ID        uint          `json:"id" example:"1"`
	Title     string        `json:"title" example:"Hello"`
	Content   string        `json:"content" example:"First post"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Tags      []TagResponse `json:"tags"`
}

func NewPostResponse(p *post.Post) PostResponse {
	tags := make([]TagResponse, 0, len(p.Tags))
	for i := range p.Tags {
		tags = append(tags, NewTagResponse(&p.Tags[i]))
	}

	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
		Tags:      tags,
	}
}

func NewPostListResponse(posts []post.Post) []PostResponse {
	list := make([]PostResponse, 0, len(posts))
	for i := range posts {
		list = append(list, NewPostResponse(&posts[i]))
	}
	return list
}
