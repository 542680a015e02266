package models

import (
	"time"
)

// Solution statuses
const (
	SolutionIncomplete = iota
	SolutionExpired
	SolutionComplete
)

// Solution represents one user's attempt at one set of a challenge.
// At most one row exists per (challenge, author, set).
type Solution struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	ChallengeID uint `gorm:"not null;column:challenge_id;uniqueIndex:idx_solution_identity" json:"challenge_id"`
	AuthorID    uint `gorm:"not null;column:author_id;uniqueIndex:idx_solution_identity" json:"author_id"`
	SetID       uint `gorm:"not null;column:set_id;uniqueIndex:idx_solution_identity" json:"set_id"`

	Status    int        `gorm:"not null;default:0" json:"status"`
	Attempt   int        `gorm:"not null;default:0" json:"attempt"`
	Generated *time.Time `json:"generated"`
	Submitted *time.Time `json:"submitted"`

	InputGen  string `gorm:"type:text" json:"-"`
	OutputGen string `gorm:"type:text" json:"-"`

	OutputFile string `gorm:"type:varchar(255)" json:"output_file"`
	SourceFile string `gorm:"type:varchar(255)" json:"source_file"`
	LanguageID *uint  `gorm:"column:language_id" json:"language_id"`

	Challenge *Challenge `gorm:"foreignKey:ChallengeID" json:"-"`
	Author    *User      `gorm:"foreignKey:AuthorID" json:"author"`
	Set       *Set       `gorm:"foreignKey:SetID" json:"set"`
	Language  *Language  `gorm:"foreignKey:LanguageID" json:"language"`
	Bonuses   []*Bonus   `gorm:"many2many:solution_bonuses;" json:"bonuses"`
}

// IsExpired reports whether the attempt has run past its set's time limit
// plus the grace period. Sets with no time limit never expire.
func (sol *Solution) IsExpired(now time.Time, grace time.Duration) bool {
	if sol.Set == nil || sol.Set.TimeLimit <= 0 {
		return false
	}
	if sol.Generated == nil {
		return false
	}
	deadline := sol.Generated.Add(time.Duration(sol.Set.TimeLimit)*time.Second + grace)
	return !now.Before(deadline)
}

// TimeLeft formats the remaining time as minutes:seconds, floored at 0:00
func (sol *Solution) TimeLeft(now time.Time, grace time.Duration) string {
	if sol.Set == nil || sol.Generated == nil {
		return "0:00"
	}
	total := time.Duration(sol.Set.TimeLimit)*time.Second + grace
	left := total - now.Sub(*sol.Generated)
	return formatClock(int(left.Seconds()))
}
