package controller

import (
	"net/http"

	"github.com/Maya170605/customs-backend/internal/app/service"
	apperrors "github.com/Maya170605/customs-backend/internal/errors"
	"github.com/Maya170605/customs-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
	userService service.UserService
}

func NewAuthController(authService service.AuthService, userService service.UserService) *AuthController {
	return &AuthController{
		authService: authService,
		userService: userService,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}

// Register handles public self-registration
// POST /api/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.Respond400(c, "Некорректные данные регистрации")
		return
	}

	user, err := ctrl.authService.Register(req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, user.ToDTO())
}

// Login authenticates a user and issues a bearer token
// POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.Respond400(c, "Некорректные данные входа")
		return
	}

	resp, err := ctrl.authService.Login(req.Username, req.Password)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CheckUsername reports whether a username is taken
// GET /api/auth/check-username/:username
func (ctrl *AuthController) CheckUsername(c *gin.Context) {
	exists, err := ctrl.userService.ExistsByUsername(c.Param("username"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// CheckEmail reports whether an email is taken
// GET /api/auth/check-email/:email
func (ctrl *AuthController) CheckEmail(c *gin.Context) {
	exists, err := ctrl.userService.ExistsByEmail(c.Param("email"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}
