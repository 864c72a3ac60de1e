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

type PaymentController struct {
	paymentService     service.PaymentService
	declarationService service.DeclarationService
}

func NewPaymentController(
	paymentService service.PaymentService,
	declarationService service.DeclarationService,
) *PaymentController {
	return &PaymentController{
		paymentService:     paymentService,
		declarationService: declarationService,
	}
}

// Create registers a payment. A client pays only for themselves.
// POST /api/payments
func (ctrl *PaymentController) Create(c *gin.Context) {
	var req service.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond400(c, "Некорректные данные платежа")
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

	payment, err := ctrl.paymentService.Create(req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment.ToDTO())
}

// GetByID returns one payment
// GET /api/payments/:id
func (ctrl *PaymentController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payment, err := ctrl.paymentService.GetByID(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, payment.ToDTO())
}

// GetAll lists every payment
// GET /api/payments
func (ctrl *PaymentController) GetAll(c *gin.Context) {
	payments, err := ctrl.paymentService.GetAll()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentDTOs(payments))
}

// GetByClient lists a client's payments; clients see only their own
// GET /api/payments/client/:clientId
func (ctrl *PaymentController) GetByClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "clientId")
	if !ok {
		return
	}
	if !requireSelfOrAdmin(c, clientID) {
		return
	}

	payments, err := ctrl.paymentService.GetByClientID(clientID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentDTOs(payments))
}

// GetByStatus lists payments in one status
// GET /api/payments/status/:status
func (ctrl *PaymentController) GetByStatus(c *gin.Context) {
	payments, err := ctrl.paymentService.GetByStatus(strings.ToUpper(c.Param("status")))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentDTOs(payments))
}

// GetByDeclaration lists payments tied to a declaration; a client must own
// the declaration
// GET /api/payments/declaration/:declarationId
func (ctrl *PaymentController) GetByDeclaration(c *gin.Context) {
	declarationID, ok := parseIDParam(c, "declarationId")
	if !ok {
		return
	}

	if !middleware.IsAdmin(c) {
		userID, _ := middleware.GetUserID(c)
		owner, err := ctrl.declarationService.IsOwner(declarationID, userID)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		if !owner {
			apperrors.Respond403(c, "Доступ запрещен")
			return
		}
	}

	payments, err := ctrl.paymentService.GetByDeclarationID(declarationID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentDTOs(payments))
}

// GetOverdueByClient lists the client's pending payments past their due date
// GET /api/payments/client/:clientId/overdue
func (ctrl *PaymentController) GetOverdueByClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "clientId")
	if !ok {
		return
	}
	if !requireSelfOrAdmin(c, clientID) {
		return
	}

	payments, err := ctrl.paymentService.GetOverdueByClient(clientID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentDTOs(payments))
}

// Update rewrites a payment; owners only, unless administrator
// PUT /api/payments/:id
func (ctrl *PaymentController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	admin, ok2 := ctrl.requireOwnership(c, id)
	if !ok2 {
		return
	}

	var req service.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond400(c, "Некорректные данные платежа")
		return
	}

	payment, err := ctrl.paymentService.Update(id, req, admin)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, payment.ToDTO())
}

// UpdateStatus moves a payment to another status
// PATCH /api/payments/:id/status
func (ctrl *PaymentController) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond400(c, "Статус обязателен")
		return
	}

	payment, err := ctrl.paymentService.UpdateStatus(id, strings.ToUpper(req.Status))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, payment.ToDTO())
}

// Process settles a pending payment; owners only, unless administrator
// POST /api/payments/:id/process
func (ctrl *PaymentController) Process(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, ok := ctrl.requireOwnership(c, id); !ok {
		return
	}

	payment, err := ctrl.paymentService.Process(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, payment.ToDTO())
}

// Delete removes a payment; owners only, unless administrator
// DELETE /api/payments/:id
func (ctrl *PaymentController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	admin, ok2 := ctrl.requireOwnership(c, id)
	if !ok2 {
		return
	}

	if err := ctrl.paymentService.Delete(id, admin); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// StatsByClient returns the client's payment aggregates
// GET /api/payments/client/:clientId/stats
func (ctrl *PaymentController) StatsByClient(c *gin.Context) {
	clientID, ok := parseIDParam(c, "clientId")
	if !ok {
		return
	}
	if !requireSelfOrAdmin(c, clientID) {
		return
	}

	stats, err := ctrl.paymentService.StatsByClient(clientID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// requireOwnership resolves the admin/owner gate for a payment mutation. It
// returns (admin, proceed); a false proceed means the response was written,
// with a 404 winning over a 403 when the payment does not exist.
func (ctrl *PaymentController) requireOwnership(c *gin.Context, paymentID uint) (bool, bool) {
	if middleware.IsAdmin(c) {
		return true, true
	}

	userID, _ := middleware.GetUserID(c)
	owner, err := ctrl.paymentService.IsOwner(paymentID, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return false, false
	}
	if !owner {
		apperrors.Respond403(c, "Доступ запрещен")
		return false, false
	}
	return false, true
}

func toPaymentDTOs(payments []model.Payment) []model.PaymentDTO {
	dtos := make([]model.PaymentDTO, 0, len(payments))
	for i := range payments {
		dtos = append(dtos, payments[i].ToDTO())
	}
	return dtos
}
