package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/internal/app/service"
	apperrors "github.com/Maya170605/customs-backend/internal/errors"
	"github.com/Maya170605/customs-backend/internal/middleware"
	"github.com/Maya170605/customs-backend/pkg/pagination"
	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	activityService service.ActivityService
}

func NewActivityController(activityService service.ActivityService) *ActivityController {
	return &ActivityController{activityService: activityService}
}

type ActivityBodyRequest struct {
	Description  string     `json:"description"`
	ActivityDate *time.Time `json:"activityDate"`
}

// Create records an activity for an arbitrary user id
// POST /api/activities
func (ctrl *ActivityController) Create(c *gin.Context) {
	var req service.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond400(c, "Некорректные данные активности")
		return
	}

	activity, err := ctrl.activityService.Create(req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, activity.ToDTO())
}

// CreateForUsername records an activity against a username; callers may only
// write their own log unless they are administrators
// POST /api/activities/user/:username
func (ctrl *ActivityController) CreateForUsername(c *gin.Context) {
	target := c.Param("username")

	if !middleware.IsAdmin(c) {
		caller, _ := middleware.GetUsername(c)
		if caller != target {
			apperrors.Respond403(c, "Доступ запрещен")
			return
		}
	}

	var req ActivityBodyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond400(c, "Некорректные данные активности")
		return
	}

	activity, err := ctrl.activityService.CreateForUsername(target, req.Description, req.ActivityDate)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, activity.ToDTO())
}

// CreateForUserID records an activity against a user id in the path
// POST /api/activities/user/id/:userId
func (ctrl *ActivityController) CreateForUserID(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	var req ActivityBodyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond400(c, "Некорректные данные активности")
		return
	}

	activity, err := ctrl.activityService.Create(service.ActivityRequest{
		UserID:       userID,
		Description:  req.Description,
		ActivityDate: req.ActivityDate,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, activity.ToDTO())
}

// GetByID returns one activity
// GET /api/activities/:id
func (ctrl *ActivityController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	activity, err := ctrl.activityService.GetByID(id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, activity.ToDTO())
}

// GetAll lists every activity
// GET /api/activities
func (ctrl *ActivityController) GetAll(c *gin.Context) {
	activities, err := ctrl.activityService.GetAll()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toActivityDTOs(activities))
}

// GetByUser lists a user's activities, newest first
// GET /api/activities/user/:userId
func (ctrl *ActivityController) GetByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	activities, err := ctrl.activityService.GetByUserID(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toActivityDTOs(activities))
}

// GetRecentByUser lists the user's newest activities
// GET /api/activities/user/:userId/recent?limit=
func (ctrl *ActivityController) GetRecentByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	activities, err := ctrl.activityService.GetRecentByUserID(userID, limit)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toActivityDTOs(activities))
}

// GetPageByUser lists the user's activities one page at a time
// GET /api/activities/user/:userId/page?page=&size=
func (ctrl *ActivityController) GetPageByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	page, err := ctrl.activityService.GetPageByUserID(userID, pagination.GetParams(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Update changes an activity's description and date
// PUT /api/activities/:id
func (ctrl *ActivityController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ActivityBodyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond400(c, "Некорректные данные активности")
		return
	}

	activity, err := ctrl.activityService.Update(id, req.Description, req.ActivityDate)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, activity.ToDTO())
}

// Delete removes one activity
// DELETE /api/activities/:id
func (ctrl *ActivityController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.activityService.Delete(id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteByUser removes every activity of one user
// DELETE /api/activities/user/:userId
func (ctrl *ActivityController) DeleteByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := ctrl.activityService.DeleteByUserID(userID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// StatsByUser returns the user's activity aggregates
// GET /api/activities/user/:userId/stats
func (ctrl *ActivityController) StatsByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	stats, err := ctrl.activityService.StatsByUser(userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func toActivityDTOs(activities []model.Activity) []model.ActivityDTO {
	dtos := make([]model.ActivityDTO, 0, len(activities))
	for i := range activities {
		dtos = append(dtos, activities[i].ToDTO())
	}
	return dtos
}
