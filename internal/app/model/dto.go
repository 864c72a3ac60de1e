package model

import (
	"time"
)

// Wire shapes. Field names follow the established client contract, so they
// are camelCase and carry denormalized display names next to the ids.

type UserDTO struct {
	ID           uint    `json:"id,omitempty"`
	Username     string  `json:"username"`
	Password     string  `json:"password,omitempty"` // input only, never set on responses
	Role         Role    `json:"role"`
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	ActivityType *string `json:"activityType,omitempty"`
	Unp          *string `json:"unp,omitempty"`
	Verified     bool    `json:"verified"`
}

type AuthResponse struct {
	AccessToken  string   `json:"accessToken"`
	TokenType    string   `json:"tokenType"`
	ID           uint     `json:"id"`
	Username     string   `json:"username"`
	Email        *string  `json:"email"`
	Role         Role     `json:"role"`
	Roles        []string `json:"roles"`
	Name         *string  `json:"name"`
	Unp          *string  `json:"unp"`
	ActivityType *string  `json:"activityType"`
	Verified     bool     `json:"verified"`
}

type ActivityDTO struct {
	ID           uint       `json:"id,omitempty"`
	UserID       uint       `json:"userId"`
	UserName     string     `json:"userName,omitempty"`
	Description  string     `json:"description"`
	ActivityDate *time.Time `json:"activityDate,omitempty"`
}

type DeclarationDTO struct {
	ID                   uint       `json:"id,omitempty"`
	DeclarationNumber    string     `json:"declarationNumber,omitempty"`
	ClientID             uint       `json:"clientId"`
	ClientName           *string    `json:"clientName,omitempty"`
	DeclarationType      string     `json:"declarationType"`
	TnvedCode            string     `json:"tnvedCode,omitempty"`
	ProductDescription   string     `json:"productDescription"`
	ProductValue         float64    `json:"productValue"`
	NetWeight            float64    `json:"netWeight,omitempty"`
	Quantity             int        `json:"quantity,omitempty"`
	CountryOfOrigin      string     `json:"countryOfOrigin,omitempty"`
	CountryOfDestination string     `json:"countryOfDestination,omitempty"`
	CustomsOffice        string     `json:"customsOffice,omitempty"`
	Status               string     `json:"status,omitempty"`
	SubmittedAt          *time.Time `json:"submittedAt,omitempty"`
	ReviewedAt           *time.Time `json:"reviewedAt,omitempty"`
}

type PaymentDTO struct {
	ID                uint          `json:"id,omitempty"`
	PaymentNumber     string        `json:"paymentNumber,omitempty"`
	ClientID          uint          `json:"clientId"`
	ClientName        *string       `json:"clientName,omitempty"`
	DeclarationID     *uint         `json:"declarationId,omitempty"`
	DeclarationNumber string        `json:"declarationNumber,omitempty"`
	Amount            float64       `json:"amount"`
	Currency          string        `json:"currency,omitempty"`
	PaymentType       string        `json:"paymentType,omitempty"`
	Status            PaymentStatus `json:"status,omitempty"`
	DueDate           *time.Time    `json:"dueDate,omitempty"`
	PaidAt            *time.Time    `json:"paidAt,omitempty"`
}

type VehicleDTO struct {
	ID                uint       `json:"id,omitempty"`
	LicensePlate      string     `json:"licensePlate"`
	Model             string     `json:"model,omitempty"`
	VehicleType       string     `json:"vehicleType,omitempty"`
	YearOfManufacture int        `json:"yearOfManufacture,omitempty"`
	Capacity          float64    `json:"capacity,omitempty"`
	ClientID          uint       `json:"clientId"`
	ClientName        *string    `json:"clientName,omitempty"`
	DriverID          *uint      `json:"driverId,omitempty"`
	DriverName        *string    `json:"driverName,omitempty"`
	IsAvailable       bool       `json:"isAvailable"`
	RentalStartDate   *time.Time `json:"rentalStartDate,omitempty"`
	RentalEndDate     *time.Time `json:"rentalEndDate,omitempty"`
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:           u.ID,
		Username:     u.Username,
		Role:         u.Role,
		Name:         u.Name,
		Email:        u.Email,
		ActivityType: u.ActivityType,
		Unp:          u.UnpNumber(),
		Verified:     u.Verified,
	}
}

func (a *Activity) ToDTO() ActivityDTO {
	dto := ActivityDTO{
		ID:          a.ID,
		UserID:      a.UserID,
		Description: a.Description,
	}
	if !a.ActivityDate.IsZero() {
		date := a.ActivityDate
		dto.ActivityDate = &date
	}
	if a.User != nil {
		dto.UserName = a.User.Username
	}
	return dto
}

func (d *Declaration) ToDTO() DeclarationDTO {
	dto := DeclarationDTO{
		ID:                   d.ID,
		DeclarationNumber:    d.DeclarationNumber,
		ClientID:             d.ClientID,
		DeclarationType:      d.DeclarationType,
		TnvedCode:            d.TnvedCode,
		ProductDescription:   d.ProductDescription,
		ProductValue:         d.ProductValue,
		NetWeight:            d.NetWeight,
		Quantity:             d.Quantity,
		CountryOfOrigin:      d.CountryOfOrigin,
		CountryOfDestination: d.CountryOfDestination,
		CustomsOffice:        d.CustomsOffice,
		Status:               d.Status,
		SubmittedAt:          d.SubmittedAt,
		ReviewedAt:           d.ReviewedAt,
	}
	if d.Client != nil {
		dto.ClientName = d.Client.Name
	}
	return dto
}

func (p *Payment) ToDTO() PaymentDTO {
	dto := PaymentDTO{
		ID:            p.ID,
		PaymentNumber: p.PaymentNumber,
		ClientID:      p.ClientID,
		DeclarationID: p.DeclarationID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		PaymentType:   p.PaymentType,
		Status:        p.Status,
		DueDate:       p.DueDate,
		PaidAt:        p.PaidAt,
	}
	if p.Client != nil {
		dto.ClientName = p.Client.Name
	}
	if p.Declaration != nil {
		dto.DeclarationNumber = p.Declaration.DeclarationNumber
	}
	return dto
}

func (v *Vehicle) ToDTO() VehicleDTO {
	dto := VehicleDTO{
		ID:                v.ID,
		LicensePlate:      v.LicensePlate,
		Model:             v.Model,
		VehicleType:       v.VehicleType,
		YearOfManufacture: v.YearOfManufacture,
		Capacity:          v.Capacity,
		ClientID:          v.ClientID,
		DriverID:          v.DriverID,
		IsAvailable:       v.Available(),
		RentalStartDate:   v.RentalStartDate,
		RentalEndDate:     v.RentalEndDate,
	}
	if v.Client != nil {
		dto.ClientName = v.Client.Name
	}
	if v.Driver != nil {
		dto.DriverName = &v.Driver.Username
	}
	return dto
}
