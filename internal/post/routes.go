package post

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupPostRoutes 设置文章相关路由
func SetupPostRoutes(r *gin.RouterGroup, db *gorm.DB) {
	postHandler := NewPostHandler(db)

	posts := r.Group("/posts")
	{
		posts.POST("/", postHandler.QueryPosts)             // 筛选文章
		posts.POST("/create", postHandler.CreatePost)       // 创建文章
		posts.PUT("/update", postHandler.UpdatePost)        // 更新文章 ?id=
		posts.DELETE("/delete/:id", postHandler.DeletePost) // 删除文章
		posts.GET("/:id", postHandler.GetPost)              // 文章详情
	}
}
