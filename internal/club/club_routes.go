package club

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterClubRoutes(router *gin.RouterGroup, db *gorm.DB) {
	clubRepo := NewClubRepository(db)
	clubController := NewClubController(clubRepo)

	// Public: the registration form polls this while the admin types a club code.
	clubs := router.Group("/clubs")
	{
		clubs.GET("/check-slug", clubController.CheckSlug)
	}
}
