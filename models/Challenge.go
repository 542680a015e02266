package models

import "time"

// Challenge statuses. Regular users only see challenges at StatusInProgress
// or later; staff also see drafts.
const (
	ChallengeRemoved = iota
	ChallengeDraft
	ChallengeInProgress
	ChallengeArchived
)

// Challenge represents a single problem split into multiple sets
type Challenge struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"type:varchar(100);not null" json:"title"`
	AuthorID uint   `gorm:"not null;column:author_id" json:"author_id"`
	Status   int    `gorm:"not null;default:1" json:"status"`

	// rules
	SourceRequired     bool `gorm:"not null;default:false" json:"source_required"`
	UseInputValidation bool `gorm:"not null;default:true" json:"use_input_validation"`

	// descriptions
	Preamble string `gorm:"type:text" json:"preamble"`
	Body     string `gorm:"type:text" json:"body"`

	// per-challenge generator and validator programs
	GeneratorPath string `gorm:"type:varchar(255)" json:"generator_path"`
	ValidatorPath string `gorm:"type:varchar(255)" json:"validator_path"`

	// bonus bindings: which set carries the timed bonuses and which set
	// awards first-to-finish
	TimedSetID *uint `gorm:"column:timed_set_id" json:"timed_set_id"`
	FinalSetID *uint `gorm:"column:final_set_id" json:"final_set_id"`

	CreatedAt time.Time  `json:"created_at"`
	Started   *time.Time `json:"started"`
	Completed *time.Time `json:"completed"`

	Author    *User       `gorm:"foreignKey:AuthorID" json:"author"`
	Sets      []*Set      `gorm:"many2many:challenge_sets;" json:"sets"`
	Bonuses   []*Bonus    `gorm:"many2many:challenge_bonuses;" json:"bonuses"`
	Solutions []*Solution `gorm:"foreignKey:ChallengeID" json:"-"`
}

// VisibleTo reports whether the challenge can be shown to the given viewer.
// Anonymous viewers pass a nil user.
func (ch *Challenge) VisibleTo(user *User) bool {
	if user != nil && user.IsStaff {
		return ch.Status >= ChallengeDraft
	}
	return ch.Status >= ChallengeInProgress
}

// HasBonus reports whether the given bonus kind is enabled for the challenge
func (ch *Challenge) HasBonus(kind string) bool {
	for _, b := range ch.Bonuses {
		if b.Kind == kind {
			return true
		}
	}
	return false
}
