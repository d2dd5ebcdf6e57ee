package models

// Day is one calendar day of a planning week. Exactly one row exists per
// date, enforced by the unique index and the upsert-on-conflict write path.
// Week and year always hold the ISO week derived from the date itself.
type Day struct {
	ID      int  `gorm:"primaryKey" json:"id"`
	Date    Date `gorm:"type:date;uniqueIndex;not null" json:"date"`
	MealID  *int `gorm:"index" json:"meal_id"`
	Week    int  `gorm:"not null;index:idx_days_week_year" json:"week"`
	Year    int  `gorm:"not null;index:idx_days_week_year" json:"year"`
	AttendA bool `gorm:"not null;default:false" json:"attend_a"`
	AttendB bool `gorm:"not null;default:false" json:"attend_b"`
	AttendC bool `gorm:"not null;default:false" json:"attend_c"`

	// The plain FK keeps a referenced meal from being deleted.
	Meal *Meal `gorm:"foreignKey:MealID" json:"-"`

	DayIngredients []DayIngredient `gorm:"foreignKey:DayID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name for the Day model
func (Day) TableName() string {
	return "days"
}
