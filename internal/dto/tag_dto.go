package dto

import "terminal-terrace/blog/internal/model/tag"

type CreateTagRequest struct {
	Name string `json:"name" binding:"required,max=128" example:"go"`
}

// UpdateTagRequest name 缺省或为 null 时不做修改
type UpdateTagRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,max=128" example:"golang"`
}

type TagResponse struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"go"`
}

func NewTagResponse(t *tag.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name}
}

func NewTagListResponse(tags []tag.Tag) []TagResponse {
	list := make([]TagResponse, 0, len(tags))
	for i := range tags {
		list = append(list, NewTagResponse(&tags[i]))
	}
	return list
}

// DeletedResponse 删除成功后放在 data 中
type DeletedResponse struct {
	ID uint `json:"id" example:"1"`
}
