package models

// Ingredient belongs to exactly one meal. Rows are created and deleted in
// bulk whenever the owning meal's ingredient list is replaced; the declared
// cascade clears dependent day-ingredient rows when that happens.
type Ingredient struct {
	ID     int    `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"not null" json:"name"`
	Amount int    `gorm:"not null" json:"amount"`
	MealID int    `gorm:"not null;index" json:"meal_id"`

	DayIngredients []DayIngredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for the Ingredient model
func (Ingredient) TableName() string {
	return "ingredients"
}
