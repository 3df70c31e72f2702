package user

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/acebook/backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const currentUserKey = "current_club_user"

// Loader resolves the user ID stored by middleware.AuthMiddleware into a
// ClubUser (with club preloaded) and puts it in the context. Runs after the
// token check on every authenticated group, so a stale or deleted account
// fails here instead of deep inside a handler.
func Loader(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := middleware.GetUserIDFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var currentUser ClubUser
		if err := db.Preload("Club").First(&currentUser, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found or inactive"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}

		c.Set(currentUserKey, &currentUser)
		c.Next()
	}
}

// CurrentUser returns the authenticated club user loaded by Loader.
func CurrentUser(c *gin.Context) (*ClubUser, error) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, errors.New("user not found in context")
	}

	u, ok := value.(*ClubUser)
	if !ok {
		return nil, fmt.Errorf("user in context has unexpected type: %T", value)
	}

	return u, nil
}
