package model

import (
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusOverdue PaymentStatus = "OVERDUE"
)

// ParsePaymentStatus maps a wire value onto the closed payment status set.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue:
		return PaymentStatus(s), true
	}
	return "", false
}

type Payment struct {
	ID            uint          `gorm:"primarykey" json:"id"`
	PaymentNumber string        `gorm:"uniqueIndex;not null" json:"paymentNumber"` // PMT-<year>-NNNNN
	ClientID      uint          `gorm:"index;not null" json:"clientId"`
	DeclarationID *uint         `gorm:"index" json:"declarationId,omitempty"`
	Amount        float64       `json:"amount"`
	Currency      string        `gorm:"default:'EUR'" json:"currency"`
	PaymentType   string        `json:"paymentType"`
	Status        PaymentStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	DueDate       *time.Time    `json:"dueDate"`
	PaidAt        *time.Time    `json:"paidAt"` // set iff status = PAID
	CreatedAt     time.Time     `json:"created_at"`

	Client      *User        `gorm:"foreignKey:ClientID" json:"-"`
	Declaration *Declaration `gorm:"foreignKey:DeclarationID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
