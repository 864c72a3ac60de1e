package model

import (
	"time"
)

// Activity is a free-text log entry tied to a user.
type Activity struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"userId"`
	Description  string    `gorm:"not null" json:"description"`
	ActivityDate time.Time `json:"activityDate"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Activity) TableName() string {
	return "activities"
}
