package models

// DayIngredient is the point-in-time shopping state of one ingredient for
// one day's meal. Rows are bulk-deleted and regenerated whenever the day's
// meal assignment changes.
type DayIngredient struct {
	DayID        int  `gorm:"primaryKey;autoIncrement:false" json:"day_id"`
	IngredientID int  `gorm:"primaryKey;autoIncrement:false" json:"ingredient_id"`
	Bought       bool `gorm:"not null;default:false" json:"bought"`
}

// TableName returns the table name for the DayIngredient model
func (DayIngredient) TableName() string {
	return "days_ingredients"
}

// IngredientWithBought is the per-day projection of an ingredient together
// with its bought flag, as served by the week assembler.
type IngredientWithBought struct {
	DayID      int        `json:"day_id"`
	Ingredient Ingredient `json:"ingredient"`
	Bought     bool       `json:"bought"`
}
