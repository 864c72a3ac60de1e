package controller

import (
	"net/http"
	"strings"

	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/internal/app/service"
	apperrors "github.com/Maya170605/customs-backend/internal/errors"
	"github.com/Maya170605/customs-backend/internal/middleware"
	"github.com/Maya170605/customs-backend/pkg/pagination"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService service.UserService
	authService service.AuthService
}

func NewUserController(userService service.UserService, authService service.AuthService) *UserController {
	return &UserController{
		userService: userService,
		authService: authService,
	}
}

// Create registers a user on behalf of the caller
// POST /api/users
func (ctrl *UserController) Create(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond400(c, "Некорректные данные пользователя")
		return
	}

	user, err := ctrl.authService.Register(req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, user.ToDTO())
}

// GetByID returns one user
// GET /api/users/:id
func (ctrl *UserController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := ctrl.userService.GetByID(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user.ToDTO())
}

// GetMe returns the authenticated principal
// GET /api/users/me
func (ctrl *UserController) GetMe(c *gin.Context) {
	username, ok := middleware.GetUsername(c)
	if !ok {
		apperrors.Respond401(c, "")
		return
	}

	user, err := ctrl.userService.GetByUsername(username)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user.ToDTO())
}

// GetAll lists every user
// GET /api/users
func (ctrl *UserController) GetAll(c *gin.Context) {
	users, err := ctrl.userService.GetAll()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	dtos := make([]model.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, users[i].ToDTO())
	}
	c.JSON(http.StatusOK, dtos)
}

// GetPage lists users one page at a time
// GET /api/users/page?page=&size=
func (ctrl *UserController) GetPage(c *gin.Context) {
	page, err := ctrl.userService.GetPage(pagination.GetParams(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetByRole lists users of one role
// GET /api/users/role/:role
func (ctrl *UserController) GetByRole(c *gin.Context) {
	users, err := ctrl.userService.GetByRole(strings.ToUpper(c.Param("role")))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	dtos := make([]model.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, users[i].ToDTO())
	}
	c.JSON(http.StatusOK, dtos)
}

// Update patches a user; any authenticated principal may do so
// PUT /api/users/:id
func (ctrl *UserController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond400(c, "Некорректные данные пользователя")
		return
	}

	user, err := ctrl.userService.Update(id, req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user.ToDTO())
}

// Delete removes a user and everything the user owns
// DELETE /api/users/:id
func (ctrl *UserController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.userService.Delete(id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckUsername reports whether a username is taken
// GET /api/users/check-username/:username
func (ctrl *UserController) CheckUsername(c *gin.Context) {
	exists, err := ctrl.userService.ExistsByUsername(c.Param("username"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// CheckEmail reports whether an email is taken
// GET /api/users/check-email/:email
func (ctrl *UserController) CheckEmail(c *gin.Context) {
	exists, err := ctrl.userService.ExistsByEmail(c.Param("email"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}
