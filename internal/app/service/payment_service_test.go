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

func setupPaymentServiceTest(t *testing.T) (PaymentService, DeclarationService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	paymentRepo := repository.NewPaymentRepository(testDB)
	declarationRepo := repository.NewDeclarationRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	return NewPaymentService(paymentRepo, declarationRepo, userRepo),
		NewDeclarationService(declarationRepo, userRepo),
		testDB
}

func createTestPayment(t *testing.T, svc PaymentService, clientID uint, amount float64) *model.Payment {
	t.Helper()
	payment, err := svc.Create(PaymentRequest{
		ClientID:    clientID,
		Amount:      amount,
		PaymentType: "CUSTOMS_DUTY",
	})
	require.NoError(t, err)
	return payment
}

func TestPaymentService_Create(t *testing.T) {
	svc, _, testDB := setupPaymentServiceTest(t)
	client := createTestUser(t, testDB, "acme", model.RoleClient)

	payment := createTestPayment(t, svc, client.ID, 1500)

	assert.Equal(t, model.PaymentStatusPending, payment.Status)
	assert.Equal(t, "EUR", payment.Currency)
	assert.Nil(t, payment.PaidAt)
	require.NotNil(t, payment.DueDate)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 14), *payment.DueDate, time.Minute)

	pattern := fmt.Sprintf(`^PMT-%d-\d{5}$`, time.Now().Year())
	assert.Regexp(t, regexp.MustCompile(pattern), payment.PaymentNumber)

	t.Run("Unknown client", func(t *testing.T) {
		_, err := svc.Create(PaymentRequest{ClientID: 9999})
		require.Error(t, err)
		assert.EqualError(t, err, "Клиент не найден")
	})

	t.Run("Negative amount", func(t *testing.T) {
		_, err := svc.Create(PaymentRequest{ClientID: client.ID, Amount: -5})
		require.Error(t, err)
		assert.EqualError(t, err, "Сумма платежа не может быть отрицательной")
	})

	t.Run("Unknown declaration reference", func(t *testing.T) {
		missing := uint(9999)
		_, err := svc.Create(PaymentRequest{ClientID: client.ID, DeclarationID: &missing})
		require.Error(t, err)
		assert.EqualError(t, err, "Декларация не найдена")
	})
}

func TestPaymentService_Process(t *testing.T) {
	svc, _, testDB := setupPaymentServiceTest(t)
	client := createTestUser(t, testDB, "acme", model.RoleClient)
	payment := createTestPayment(t, svc, client.ID, 1500)

	processed, err := svc.Process(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, processed.Status)
	require.NotNil(t, processed.PaidAt)
	assert.WithinDuration(t, time.Now(), *processed.PaidAt, time.Minute)

	t.Run("Second process fails", func(t *testing.T) {
		_, err := svc.Process(payment.ID)
		require.Error(t, err)
		assert.EqualError(t, err, "Платеж уже обработан")
	})

	t.Run("Unknown payment", func(t *testing.T) {
		_, err := svc.Process(9999)
		require.Error(t, err)
		assert.EqualError(t, err, "Платеж не найден")
	})
}

func TestPaymentService_LifecycleGates(t *testing.T) {
	svc, _, testDB := setupPaymentServiceTest(t)
	client := createTestUser(t, testDB, "acme", model.RoleClient)
	payment := createTestPayment(t, svc, client.ID, 1500)

	_, err := svc.Process(payment.ID)
	require.NoError(t, err)

	patch := PaymentRequest{ClientID: client.ID, Amount: 2000}

	t.Run("Processed payment rejects client edit", func(t *testing.T) {
		_, err := svc.Update(payment.ID, patch, false)
		require.Error(t, err)
		assert.EqualError(t, err, "Редактирование невозможно. Платеж уже обработан.")
	})

	t.Run("Processed payment rejects client delete", func(t *testing.T) {
		err := svc.Delete(payment.ID, false)
		require.Error(t, err)
		assert.EqualError(t, err, "Удаление невозможно. Платеж уже обработан.")
	})

	t.Run("Administrator stays exempt", func(t *testing.T) {
		updated, err := svc.Update(payment.ID, patch, true)
		require.NoError(t, err)
		assert.Equal(t, 2000.0, updated.Amount)

		require.NoError(t, svc.Delete(payment.ID, true))
	})
}

func TestPaymentService_UpdateStatus(t *testing.T) {
	svc, _, testDB := setupPaymentServiceTest(t)
	client := createTestUser(t, testDB, "acme", model.RoleClient)
	payment := createTestPayment(t, svc, client.ID, 1500)

	paid, err := svc.UpdateStatus(payment.ID, "PAID")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	// Leaving PAID clears the settlement timestamp
	pending, err := svc.UpdateStatus(payment.ID, "PENDING")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, pending.Status)
	assert.Nil(t, pending.PaidAt)

	_, err = svc.UpdateStatus(payment.ID, "SETTLED")
	require.Error(t, err)
	assert.EqualError(t, err, "Неизвестный статус платежа: SETTLED")
}

func TestPaymentService_StatsByClient(t *testing.T) {
	svc, _, testDB := setupPaymentServiceTest(t)
	client := createTestUser(t, testDB, "acme", model.RoleClient)
	other := createTestUser(t, testDB, "globex", model.RoleClient)

	first := createTestPayment(t, svc, client.ID, 1000)
	createTestPayment(t, svc, client.ID, 500)
	createTestPayment(t, svc, other.ID, 9000)

	_, err := svc.Process(first.ID)
	require.NoError(t, err)

	stats, err := svc.StatsByClient(client.ID)
	require.NoError(t, err)

	assert.InDelta(t, 1500, stats.TotalAmount, 0.001)
	assert.InDelta(t, 1000, stats.PaidAmount, 0.001)
	assert.InDelta(t, 500, stats.PendingAmount, 0.001)
}

func TestPaymentService_GetOverdueByClient(t *testing.T) {
	svc, _, testDB := setupPaymentServiceTest(t)
	client := createTestUser(t, testDB, "acme", model.RoleClient)

	pastDue := time.Now().AddDate(0, 0, -3)
	overduePayment, err := svc.Create(PaymentRequest{
		ClientID: client.ID,
		Amount:   700,
		DueDate:  &pastDue,
	})
	require.NoError(t, err)

	// Still within its term
	createTestPayment(t, svc, client.ID, 300)

	// Past due but already settled
	settled, err := svc.Create(PaymentRequest{
		ClientID: client.ID,
		Amount:   400,
		DueDate:  &pastDue,
	})
	require.NoError(t, err)
	_, err = svc.Process(settled.ID)
	require.NoError(t, err)

	overdue, err := svc.GetOverdueByClient(client.ID)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, overduePayment.ID, overdue[0].ID)
}

func TestPaymentService_DeclarationLink(t *testing.T) {
	svc, declarationSvc, testDB := setupPaymentServiceTest(t)
	client := createTestUser(t, testDB, "acme", model.RoleClient)

	declaration := createTestDeclaration(t, declarationSvc, client.ID)
	payment, err := svc.Create(PaymentRequest{
		ClientID:      client.ID,
		Amount:        250,
		DeclarationID: &declaration.ID,
	})
	require.NoError(t, err)

	linked, err := svc.GetByDeclarationID(declaration.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, payment.ID, linked[0].ID)

	dto := linked[0].ToDTO()
	assert.Equal(t, declaration.DeclarationNumber, dto.DeclarationNumber)
}
