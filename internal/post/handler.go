package post

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"terminal-terrace/blog/internal/dto"
	"terminal-terrace/blog/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct {
	postService *PostService
}

func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{
		postService: NewPostService(db),
	}
}

func parsePostID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func invalidPostID(c *gin.Context) {
	dto.ErrorResponse(c, response.NewBusinessError(
		response.WithErrorCode(response.ParseError),
		response.WithErrorMessage("invalid post id"),
	))
}

// CreatePost 创建文章
// @Summary 创建文章
// @Description 不存在的标签名会被自动创建
// @Tags Post
// @Accept json
// @Produce json
// @Param request body dto.CreatePostRequest true "创建文章请求"
// @Success 201 {object} dto.PostResponse
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /posts/create [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	p, err := h.postService.CreatePost(c.Request.Context(), req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.EntityResponse(c, http.StatusCreated, dto.NewPostResponse(p))
}

// GetPost 获取文章详情
// @Summary 获取文章详情（包含标签）
// @Tags Post
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} dto.PostResponse
// @Failure 404 {object} response.Response
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := parsePostID(c.Param("id"))
	if !ok {
		invalidPostID(c)
		return
	}

	p, err := h.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.EntityResponse(c, http.StatusOK, dto.NewPostResponse(p))
}

// UpdatePost 更新文章
// @Summary 更新文章
// @Description 缺省字段保持不变；tags 出现时整体替换
// @Tags Post
// @Accept json
// @Produce json
// @Param id query int true "文章ID"
// @Param request body dto.UpdatePostRequest true "更新文章请求"
// @Success 200 {object} dto.PostResponse
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /posts/update [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := parsePostID(c.Query("id"))
	if !ok {
		invalidPostID(c)
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	p, err := h.postService.UpdatePost(c.Request.Context(), id, req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.EntityResponse(c, http.StatusOK, dto.NewPostResponse(p))
}

// DeletePost 删除文章
// @Summary 删除文章（标签保留）
// @Tags Post
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} response.Response{data=dto.DeletedResponse}
// @Failure 404 {object} response.Response
// @Router /posts/delete/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := parsePostID(c.Param("id"))
	if !ok {
		invalidPostID(c)
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.SuccessResponse(c, dto.DeletedResponse{ID: id})
}

// QueryPosts 筛选文章
// @Summary 按创建时间和标签筛选文章
// @Description 时间边界不包含端点；多个标签为任一匹配；请求体可为空
// @Tags Post
// @Accept json
// @Produce json
// @Param request body dto.QueryPostsRequest false "筛选条件"
// @Success 200 {array} dto.PostResponse
// @Failure 422 {object} response.Response
// @Router /posts/ [post]
func (h *PostHandler) QueryPosts(c *gin.Context) {
	var req dto.QueryPostsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		dto.ValidationErrorResponse(c, err)
		return
	}

	posts, err := h.postService.QueryPosts(c.Request.Context(), req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	dto.EntityResponse(c, http.StatusOK, dto.NewPostListResponse(posts))
}
