package models

// ExtraItem is a one-off shopping item with no relation to any day or meal.
type ExtraItem struct {
	ID     int    `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	Amount int    `gorm:"not null" json:"amount"`
	Bought bool   `gorm:"not null;default:false" json:"bought"`
}

// TableName returns the table name for the ExtraItem model
func (ExtraItem) TableName() string {
	return "extra_items"
}
