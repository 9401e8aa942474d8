package tag

import (
	"net/http"
	"strconv"

	"terminal-terrace/blog/internal/dto"
	"terminal-terrace/blog/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TagHandler struct {
	tagService *TagService
}

func NewTagHandler(db *gorm.DB) *TagHandler {
	return &TagHandler{
		tagService: NewTagService(db),
	}
}

func parseTagID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func invalidTagID(c *gin.Context) {
	dto.ErrorResponse(c, response.NewBusinessError(
		response.WithErrorCode(response.ParseError),
		response.WithErrorMessage("invalid tag id"),
	))
}

// CreateTag 创建标签
// @Summary 创建标签
// @Tags Tag
// @Accept json
// @Produce json
// @Param request body dto.CreateTagRequest true "创建标签请求"
// @Success 201 {object} dto.TagResponse
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /tags/create [post]
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	t, err := h.tagService.CreateTag(c.Request.Context(), req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.EntityResponse(c, http.StatusCreated, dto.NewTagResponse(t))
}

// GetTag 获取标签
// @Summary 获取标签
// @Tags Tag
// @Produce json
// @Param id path int true "标签ID"
// @Success 200 {object} dto.TagResponse
// @Failure 404 {object} response.Response
// @Router /tags/{id} [get]
func (h *TagHandler) GetTag(c *gin.Context) {
	id, ok := parseTagID(c.Param("id"))
	if !ok {
		invalidTagID(c)
		return
	}

	t, err := h.tagService.GetTag(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.EntityResponse(c, http.StatusOK, dto.NewTagResponse(t))
}

// UpdateTag 修改标签名称
// @Summary 修改标签
// @Tags Tag
// @Accept json
// @Produce json
// @Param id query int true "标签ID"
// @Param request body dto.UpdateTagRequest true "修改标签请求"
// @Success 200 {object} dto.TagResponse
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /tags/update [put]
func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, ok := parseTagID(c.Query("id"))
	if !ok {
		invalidTagID(c)
		return
	}

	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	t, err := h.tagService.UpdateTag(c.Request.Context(), id, req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.EntityResponse(c, http.StatusOK, dto.NewTagResponse(t))
}

// DeleteTag 删除标签
// @Summary 删除标签（关联的文章保留）
// @Tags Tag
// @Produce json
// @Param id path int true "标签ID"
// @Success 200 {object} response.Response{data=dto.DeletedResponse}
// @Failure 404 {object} response.Response
// @Router /tags/delete/{id} [delete]
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, ok := parseTagID(c.Param("id"))
	if !ok {
		invalidTagID(c)
		return
	}

	if err := h.tagService.DeleteTag(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, dto.DeletedResponse{ID: id})
}

// ListTags 获取全部标签
// @Summary 标签列表
// @Tags Tag
// @Produce json
// @Success 200 {array} dto.TagResponse
// @Router /tags/ [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.tagService.ListTags(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.EntityResponse(c, http.StatusOK, dto.NewTagListResponse(tags))
}

// ListTagPosts 获取标签下的文章
// @Summary 标签下的文章
// @Tags Tag
// @Produce json
// @Param id path int true "标签ID"
// @Success 200 {array} dto.PostResponse
// @Failure 404 {object} response.Response
// @Router /tags/{id}/posts [get]
func (h *TagHandler) ListTagPosts(c *gin.Context) {
	id, ok := parseTagID(c.Param("id"))
	if !ok {
		invalidTagID(c)
		return
	}

	posts, err := h.tagService.ListTagPosts(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.EntityResponse(c, http.StatusOK, dto.NewPostListResponse(posts))
}
