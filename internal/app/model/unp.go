package model

// Unp is a row of the read-only company-registry reference table. A CLIENT's
// UNP must resolve here before the account is considered verified.
type Unp struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Unp         string `gorm:"uniqueIndex;size:9;not null" json:"unp"`
	CompanyName string `json:"companyName,omitempty"`
}

func (Unp) TableName() string {
	return "unps"
}
