package model

import (
	"time"
)

// Vehicle belongs to a client and may be held by a driver during a rental.
// An active rental is exactly: driver set, is_available false, start date set.
type Vehicle struct {
	ID                uint       `gorm:"primarykey" json:"id"`
	LicensePlate      string     `gorm:"uniqueIndex;not null" json:"licensePlate"`
	Model             string     `json:"model"`
	VehicleType       string     `json:"vehicleType"`
	YearOfManufacture int        `json:"yearOfManufacture"`
	Capacity          float64    `json:"capacity"`
	ClientID          uint       `gorm:"index;not null" json:"clientId"`
	DriverID          *uint      `gorm:"index" json:"driverId,omitempty"`
	IsAvailable       *bool      `gorm:"default:true" json:"isAvailable"`
	RentalStartDate   *time.Time `json:"rentalStartDate"`
	RentalEndDate     *time.Time `json:"rentalEndDate"`
	CreatedAt         time.Time  `json:"created_at"`

	Client *User `gorm:"foreignKey:ClientID" json:"-"`
	Driver *User `gorm:"foreignKey:DriverID" json:"-"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// Available derives the wire-level availability: free of a driver and not
// explicitly marked unavailable (a NULL flag counts as available).
func (v *Vehicle) Available() bool {
	return v.DriverID == nil && (v.IsAvailable == nil || *v.IsAvailable)
}
