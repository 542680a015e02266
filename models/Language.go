package models

// Language tags submitted source code for display; it has no behavioral effect
type Language struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"type:varchar(100);unique;not null" json:"name"`
	Extension string `gorm:"type:varchar(5);not null" json:"extension"`
}
