package models

// Meal is a dish that can be assigned to days of the week. Its ingredient
// list is replaced wholesale on update; the meal service deletes the
// ingredients itself before deleting the meal.
type Meal struct {
	ID        int     `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"not null" json:"name"`
	Image     string  `gorm:"not null" json:"image"`
	RecipeURL *string `json:"recipe_url,omitempty"`

	Ingredients []Ingredient `gorm:"foreignKey:MealID" json:"ingredients,omitempty"`
}

// TableName returns the table name for the Meal model
func (Meal) TableName() string {
	return "meals"
}
