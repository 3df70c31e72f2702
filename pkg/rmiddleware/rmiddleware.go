package rmiddleware

import (
	"github.com/acebook/backend/internal/user"
	"github.com/gin-gonic/gin"
)

// RoleMiddleware gates a route group on the authenticated user's role. The
// check itself lives in internal/user (next to user.CurrentUser) so that the
// user package's own routes can use it without importing this package.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return user.RoleMiddleware(requiredRoles...)
}

// AdminMiddleware is a convenience middleware for admin-only access
func AdminMiddleware() gin.HandlerFunc {
	return user.AdminMiddleware()
}
