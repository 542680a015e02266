package models

// Bonus kinds. Behavior is bound to the kind, not the row id, so
// installations can rename or reprice bonuses freely.
const (
	BonusFastSolve     = "fast_solve"
	BonusEarlyBird     = "early_bird"
	BonusFirstToFinish = "first_to_finish"
)

// Bonus represents extra points awarded for a timing or ordering condition
type Bonus struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Kind        string `gorm:"type:varchar(50);unique;not null" json:"kind"`
	Title       string `gorm:"type:varchar(100);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"type:varchar(100)" json:"icon"`
	Points      int    `gorm:"not null;default:0" json:"points"`
}
