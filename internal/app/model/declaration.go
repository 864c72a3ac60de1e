package model

import (
	"time"
)

// Declaration statuses recognized by the lifecycle gates. The column itself
// is a free string; anything other than PENDING blocks client edits.
const (
	DeclarationStatusPending  = "PENDING"
	DeclarationStatusApproved = "APPROVED"
	DeclarationStatusRejected = "REJECTED"
)

type Declaration struct {
	ID                   uint       `gorm:"primarykey" json:"id"`
	DeclarationNumber    string     `gorm:"uniqueIndex;not null" json:"declarationNumber"` // TD-<year>-NNNNN
	ClientID             uint       `gorm:"index;not null" json:"clientId"`
	DeclarationType      string     `gorm:"not null" json:"declarationType"`
	TnvedCode            string     `json:"tnvedCode"`
	ProductDescription   string     `gorm:"not null" json:"productDescription"`
	ProductValue         float64    `json:"productValue"`
	NetWeight            float64    `json:"netWeight"`
	Quantity             int        `json:"quantity"`
	CountryOfOrigin      string     `json:"countryOfOrigin"`
	CountryOfDestination string     `json:"countryOfDestination"`
	CustomsOffice        string     `json:"customsOffice"`
	Status               string     `gorm:"default:'PENDING'" json:"status"`
	SubmittedAt          *time.Time `json:"submittedAt"`
	ReviewedAt           *time.Time `json:"reviewedAt"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`

	Client *User `gorm:"foreignKey:ClientID" json:"-"`
}

func (Declaration) TableName() string {
	return "declarations"
}
