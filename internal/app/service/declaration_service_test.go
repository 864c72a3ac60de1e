package service

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/Maya170605/customs-backend/internal/app/model"
	"github.com/Maya170605/customs-backend/internal/app/repository"
	"github.com/Maya170605/customs-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDeclarationServiceTest(t *testing.T) (DeclarationService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	declarationRepo := repository.NewDeclarationRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	return NewDeclarationService(declarationRepo, userRepo), testDB
}

func createTestDeclaration(t *testing.T, svc DeclarationService, clientID uint) *model.Declaration {
	t.Helper()
	declaration, err := svc.Create(DeclarationRequest{
		ClientID:           clientID,
		DeclarationType:    "IMPORT",
		TnvedCode:          "8544429009",
		ProductDescription: "Copper cable",
		ProductValue:       12500,
		NetWeight:          340,
		Quantity:           10,
		CountryOfOrigin:    "DE",
		CustomsOffice:      "Minsk Regional",
	})
	require.NoError(t, err)
	return declaration
}

func TestDeclarationService_Create(t *testing.T) {
	svc, testDB := setupDeclarationServiceTest(t)
	client := createTestUser(t, testDB, "acme", model.RoleClient)

	declaration := createTestDeclaration(t, svc, client.ID)

	assert.Equal(t, model.DeclarationStatusPending, declaration.Status)
	require.NotNil(t, declaration.SubmittedAt)
	assert.WithinDuration(t, time.Now(), *declaration.SubmittedAt, time.Minute)
	assert.Nil(t, declaration.ReviewedAt)

	pattern := fmt.Sprintf(`^TD-%d-\d{5}$`, time.Now().Year())
	assert.Regexp(t, regexp.MustCompile(pattern), declaration.DeclarationNumber)

	t.Run("Numbers stay unique", func(t *testing.T) {
		second := createTestDeclaration(t, svc, client.ID)
		assert.NotEqual(t, declaration.DeclarationNumber, second.DeclarationNumber)
	})

	t.Run("Unknown client", func(t *testing.T) {
		_, err := svc.Create(DeclarationRequest{ClientID: 9999, ProductDescription: "x"})
		require.Error(t, err)
		assert.EqualError(t, err, "Клиент не найден")
	})

	t.Run("Negative product value", func(t *testing.T) {
		_, err := svc.Create(DeclarationRequest{
			ClientID:           client.ID,
			ProductDescription: "x",
			ProductValue:       -1,
		})
		require.Error(t, err)
		assert.EqualError(t, err, "Стоимость товара не может быть отрицательной")
	})
}

func TestDeclarationService_UpdateStatus(t *testing.T) {
	svc, testDB := setupDeclarationServiceTest(t)
	client := createTestUser(t, testDB, "acme", model.RoleClient)
	declaration := createTestDeclaration(t, svc, client.ID)

	updated, err := svc.UpdateStatus(declaration.ID, model.DeclarationStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, model.DeclarationStatusApproved, updated.Status)
	require.NotNil(t, updated.ReviewedAt)

	t.Run("Free-form status without review stamp", func(t *testing.T) {
		other := createTestDeclaration(t, svc, client.ID)
		updated, err := svc.UpdateStatus(other.ID, "ON_HOLD")
		require.NoError(t, err)
		assert.Equal(t, "ON_HOLD", updated.Status)
		assert.Nil(t, updated.ReviewedAt)
	})
}

func TestDeclarationService_LifecycleGates(t *testing.T) {
	svc, testDB := setupDeclarationServiceTest(t)
	client := createTestUser(t, testDB, "acme", model.RoleClient)
	declaration := createTestDeclaration(t, svc, client.ID)

	patch := DeclarationRequest{
		ClientID:           client.ID,
		DeclarationType:    "IMPORT",
		ProductDescription: "Copper cable, revised",
		ProductValue:       13000,
	}

	// While PENDING the owner may edit
	updated, err := svc.Update(declaration.ID, patch, false)
	require.NoError(t, err)
	assert.Equal(t, "Copper cable, revised", updated.ProductDescription)

	_, err = svc.UpdateStatus(declaration.ID, model.DeclarationStatusApproved)
	require.NoError(t, err)

	t.Run("Processed declaration rejects client edit", func(t *testing.T) {
		_, err := svc.Update(declaration.ID, patch, false)
		require.Error(t, err)
		assert.EqualError(t, err, "Редактирование невозможно. Декларация уже обработана.")
	})

	t.Run("Processed declaration rejects client delete", func(t *testing.T) {
		err := svc.Delete(declaration.ID, false)
		require.Error(t, err)
		assert.EqualError(t, err, "Удаление невозможно. Декларация уже обработана.")
	})

	t.Run("Administrator stays exempt", func(t *testing.T) {
		_, err := svc.Update(declaration.ID, patch, true)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(declaration.ID, true))

		_, err = svc.GetByID(declaration.ID)
		require.Error(t, err)
		assert.EqualError(t, err, "Декларация не найдена")
	})
}

func TestDeclarationService_StatsByClient(t *testing.T) {
	svc, testDB := setupDeclarationServiceTest(t)
	client := createTestUser(t, testDB, "acme", model.RoleClient)
	other := createTestUser(t, testDB, "globex", model.RoleClient)

	first := createTestDeclaration(t, svc, client.ID)
	createTestDeclaration(t, svc, client.ID)
	createTestDeclaration(t, svc, other.ID)

	_, err := svc.UpdateStatus(first.ID, model.DeclarationStatusApproved)
	require.NoError(t, err)

	stats, err := svc.StatsByClient(client.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.TotalDeclarations)
	assert.EqualValues(t, 1, stats.PendingDeclarations)
	assert.EqualValues(t, 1, stats.ApprovedDeclarations)
}

func TestDeclarationService_IsOwner(t *testing.T) {
	svc, testDB := setupDeclarationServiceTest(t)
	client := createTestUser(t, testDB, "acme", model.RoleClient)
	other := createTestUser(t, testDB, "globex", model.RoleClient)
	declaration := createTestDeclaration(t, svc, client.ID)

	owner, err := svc.IsOwner(declaration.ID, client.ID)
	require.NoError(t, err)
	assert.True(t, owner)

	owner, err = svc.IsOwner(declaration.ID, other.ID)
	require.NoError(t, err)
	assert.False(t, owner)

	_, err = svc.IsOwner(9999, client.ID)
	require.Error(t, err)
	assert.EqualError(t, err, "Декларация не найдена")
}
