package tag

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupTagRoutes 设置标签相关路由
func SetupTagRoutes(r *gin.RouterGroup, db *gorm.DB) {
	tagHandler := NewTagHandler(db)

	tags := r.Group("/tags")
	{
		tags.GET("/", tagHandler.ListTags)               // 标签列表
		tags.POST("/create", tagHandler.CreateTag)       // 创建标签
		tags.PUT("/update", tagHandler.UpdateTag)        // 修改标签 ?id=
		tags.DELETE("/delete/:id", tagHandler.DeleteTag) // 删除标签
		tags.GET("/:id", tagHandler.GetTag)              // 标签详情
		tags.GET("/:id/posts", tagHandler.ListTagPosts)  // 标签下的文章
	}
}
