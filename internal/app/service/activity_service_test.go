package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/internal/app/repository"
	"github.com/Maya170605/customs-backend/internal/db"
	"github.com/Maya170605/customs-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupActivityServiceTest(t *testing.T) (ActivityService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	activityRepo := repository.NewActivityRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	return NewActivityService(activityRepo, userRepo), testDB
}

func TestActivityService_Create(t *testing.T) {
	svc, testDB := setupActivityServiceTest(t)
	user := createTestUser(t, testDB, "acme", model.RoleClient)

	activity, err := svc.Create(ActivityRequest{
		UserID:      user.ID,
		Description: "Filed declaration",
	})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), activity.ActivityDate, time.Minute)
	require.NotNil(t, activity.User)
	assert.Equal(t, "acme", activity.User.Username)

	t.Run("Blank description", func(t *testing.T) {
		_, err := svc.Create(ActivityRequest{UserID: user.ID, Description: "   "})
		require.Error(t, err)
		assert.EqualError(t, err, "Описание активности обязательно")
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, err := svc.Create(ActivityRequest{UserID: 9999, Description: "x"})
		require.Error(t, err)
		assert.EqualError(t, err, "Пользователь не найден")
	})
}

func TestActivityService_CreateForUsername(t *testing.T) {
	svc, testDB := setupActivityServiceTest(t)
	user := createTestUser(t, testDB, "acme", model.RoleClient)

	activity, err := svc.CreateForUsername("acme", "Logged in", nil)
	require.NoError(t, err)
	assert.Equal(t, user.ID, activity.UserID)

	_, err = svc.CreateForUsername("nobody", "Logged in", nil)
	require.Error(t, err)
	assert.EqualError(t, err, "Пользователь не найден")
}

func TestActivityService_RecentAndPaged(t *testing.T) {
	svc, testDB := setupActivityServiceTest(t)
	user := createTestUser(t, testDB, "acme", model.RoleClient)

	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < 7; i++ {
		date := base.Add(time.Duration(i) * time.Hour)
		_, err := svc.Create(ActivityRequest{
			UserID:       user.ID,
			Description:  fmt.Sprintf("event %d", i),
			ActivityDate: &date,
		})
		require.NoError(t, err)
	}

	recent, err := svc.GetRecentByUserID(user.ID, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "event 6", recent[0].Description)
	assert.Equal(t, "event 4", recent[2].Description)

	t.Run("Non-positive limit falls back to default", func(t *testing.T) {
		recent, err := svc.GetRecentByUserID(user.ID, 0)
		require.NoError(t, err)
		assert.Len(t, recent, 7)
	})

	page, err := svc.GetPageByUserID(user.ID, pagination.Params{Page: 1, Size: 3, Offset: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 7, page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)

	content, ok := page.Content.([]model.ActivityDTO)
	require.True(t, ok)
	require.Len(t, content, 3)
	assert.Equal(t, "event 3", content[0].Description)
}

func TestActivityService_UpdateAndDelete(t *testing.T) {
	svc, testDB := setupActivityServiceTest(t)
	user := createTestUser(t, testDB, "acme", model.RoleClient)

	activity, err := svc.Create(ActivityRequest{UserID: user.ID, Description: "original"})
	require.NoError(t, err)

	newDate := time.Now().Add(-2 * time.Hour)
	updated, err := svc.Update(activity.ID, "rewritten", &newDate)
	require.NoError(t, err)
	assert.Equal(t, "rewritten", updated.Description)
	assert.WithinDuration(t, newDate, updated.ActivityDate, time.Second)

	require.NoError(t, svc.Delete(activity.ID))
	_, err = svc.GetByID(activity.ID)
	require.Error(t, err)
	assert.EqualError(t, err, "Активность не найдена")
}

func TestActivityService_DeleteByUserAndStats(t *testing.T) {
	svc, testDB := setupActivityServiceTest(t)
	user := createTestUser(t, testDB, "acme", model.RoleClient)
	other := createTestUser(t, testDB, "globex", model.RoleClient)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ActivityRequest{UserID: user.ID, Description: "event"})
		require.NoError(t, err)
	}
	_, err := svc.Create(ActivityRequest{UserID: other.ID, Description: "event"})
	require.NoError(t, err)

	stats, err := svc.StatsByUser(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalActivities)

	require.NoError(t, svc.DeleteByUserID(user.ID))

	stats, err = svc.StatsByUser(user.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalActivities)

	otherStats, err := svc.StatsByUser(other.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, otherStats.TotalActivities)
}
