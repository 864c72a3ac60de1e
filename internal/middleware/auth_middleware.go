package middleware

import (
	goerrors "errors"
	"strings"

	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/internal/app/repository"
	"github.com/Maya170605/customs-backend/internal/errors"
	"github.com/Maya170605/customs-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys for the authenticated principal
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
	UserRoleKey = "user_role"
)

type AuthMiddleware struct {
	jwtSecret string
	userRepo  repository.UserRepository
}

func NewAuthMiddleware(jwtSecret string, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		userRepo:  userRepo,
	}
}

// Authenticate attaches the principal from a bearer token when one is
// present and valid. It never aborts: a missing, malformed or expired token
// simply leaves the request unauthenticated and lets the per-route guards
// decide. Public endpoints therefore keep working with a stale token.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			log.Debug("Token validation failed - continuing unauthenticated", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.Next()
			return
		}

		user, err := m.userRepo.FindByUsername(claims.Username())
		if err != nil {
			if !goerrors.Is(err, gorm.ErrRecordNotFound) {
				log.Warn("Principal lookup failed", map[string]interface{}{
					"username": claims.Username(),
					"error":    err.Error(),
				})
			}
			c.Next()
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UsernameKey, user.Username)
		c.Set(UserRoleKey, user.Role)

		log.Debug("User authenticated", map[string]interface{}{
			"user_id":  user.ID,
			"username": user.Username,
			"role":     user.Role,
		})

		c.Next()
	}
}

// RequireAuth rejects requests that carry no principal.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); !ok {
			errors.Respond401(c, "Требуется аутентификация")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole rejects requests whose principal is missing (401) or whose
// role is not in the allowed set (403).
func (m *AuthMiddleware) RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		role, ok := GetUserRole(c)
		if !ok {
			errors.Respond401(c, "Требуется аутентификация")
			c.Abort()
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		userID, _ := GetUserID(c)
		log.Warn("Insufficient permissions", map[string]interface{}{
			"user_id":        userID,
			"user_role":      role,
			"required_roles": roles,
			"path":           c.Request.URL.Path,
		})
		errors.Respond403(c, "Доступ запрещен")
		c.Abort()
	}
}

// GetUserID extracts the principal's id from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetUsername extracts the principal's username from context
func GetUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(UsernameKey)
	if !exists {
		return "", false
	}
	name, ok := username.(string)
	return name, ok
}

// GetUserRole extracts the principal's role from context
func GetUserRole(c *gin.Context) (model.Role, bool) {
	userRole, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	role, ok := userRole.(model.Role)
	return role, ok
}

// IsAdmin reports whether the current principal is an administrator.
func IsAdmin(c *gin.Context) bool {
	role, ok := GetUserRole(c)
	return ok && role == model.RoleAdmin
}
