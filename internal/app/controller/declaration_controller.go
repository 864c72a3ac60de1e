package controller

import (
	"net/http"
	"strings"

	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/internal/app/service"
	apperrors "github.com/Maya170605/customs-backend/internal/errors"
	"github.com/Maya170605/customs-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type DeclarationController struct {
	declarationService service.DeclarationService
}

func NewDeclarationController(declarationService service.DeclarationService) *DeclarationController {
	return &DeclarationController{declarationService: declarationService}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create files a new declaration. A client files only for themselves.
// POST /api/declarations
func (ctrl *DeclarationController) Create(c *gin.Context) {
	var req service.DeclarationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond400(c, "Некорректные данные декларации")
		return
	}

	if !middleware.IsAdmin(c) {
		userID, _ := middleware.GetUserID(c)
		if req.ClientID == 0 {
			req.ClientID = userID
		} else if req.ClientID != userID {
			apperrors.Respond403(c, "Доступ запрещен")
			return
		}
	}

	declaration, err := ctrl.declarationService.Create(req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, declaration.ToDTO())
}

// GetByID returns one declaration
// GET /api/declarations/:id
func (ctrl *DeclarationController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	declaration, err := ctrl.declarationService.GetByID(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, declaration.ToDTO())
}

// GetAll lists every declaration
// GET /api/declarations
func (ctrl *DeclarationController) GetAll(c *gin.Context) {
	declarations, err := ctrl.declarationService.GetAll()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeclarationDTOs(declarations))
}

// GetByClient lists a client's declarations. A client sees only their own;
// drivers may look up any client's declarations for transport planning.
// GET /api/declarations/client/:clientId
func (ctrl *DeclarationController) GetByClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "clientId")
	if !ok {
		return
	}

	role, _ := middleware.GetUserRole(c)
	if role == model.RoleClient && !isSelf(c, clientID) {
		apperrors.Respond403(c, "Доступ запрещен")
		return
	}

	declarations, err := ctrl.declarationService.GetByClientID(clientID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeclarationDTOs(declarations))
}

// GetByStatus lists declarations in one status
// GET /api/declarations/status/:status
func (ctrl *DeclarationController) GetByStatus(c *gin.Context) {
	status := strings.ToUpper(c.Param("status"))
	declarations, err := ctrl.declarationService.GetByStatus(status)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeclarationDTOs(declarations))
}

// Update rewrites a declaration; owners only, unless administrator
// PUT /api/declarations/:id
func (ctrl *DeclarationController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	admin := middleware.IsAdmin(c)
	if !admin {
		userID, _ := middleware.GetUserID(c)
		owner, err := ctrl.declarationService.IsOwner(id, userID)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		if !owner {
			apperrors.Respond403(c, "Доступ запрещен")
			return
		}
	}

	var req service.DeclarationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond400(c, "Некорректные данные декларации")
		return
	}

	declaration, err := ctrl.declarationService.Update(id, req, admin)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, declaration.ToDTO())
}

// UpdateStatus moves a declaration through its lifecycle
// PATCH /api/declarations/:id/status
func (ctrl *DeclarationController) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond400(c, "Статус обязателен")
		return
	}

	declaration, err := ctrl.declarationService.UpdateStatus(id, strings.ToUpper(req.Status))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, declaration.ToDTO())
}

// Delete removes a declaration; owners only, unless administrator
// DELETE /api/declarations/:id
func (ctrl *DeclarationController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	admin := middleware.IsAdmin(c)
	if !admin {
		userID, _ := middleware.GetUserID(c)
		owner, err := ctrl.declarationService.IsOwner(id, userID)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		if !owner {
			apperrors.Respond403(c, "Доступ запрещен")
			return
		}
	}

	if err := ctrl.declarationService.Delete(id, admin); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// StatsByClient returns the client's declaration aggregates
// GET /api/declarations/client/:clientId/stats
func (ctrl *DeclarationController) StatsByClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "clientId")
	if !ok {
		return
	}
	if !requireSelfOrAdmin(c, clientID) {
		return
	}

	stats, err := ctrl.declarationService.StatsByClient(clientID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func toDeclarationDTOs(declarations []model.Declaration) []model.DeclarationDTO {
	dtos := make([]model.DeclarationDTO, 0, len(declarations))
	for i := range declarations {
		dtos = append(dtos, declarations[i].ToDTO())
	}
	return dtos
}
