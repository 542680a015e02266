package models

import "fmt"

// Set represents a reusable difficulty tier. Sets are shared across
// challenges; their id order defines the progression order within a challenge.
type Set struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Title     string `gorm:"type:varchar(100);not null" json:"title"`
	Points    int    `gorm:"not null" json:"points"`
	TimeLimit int    `gorm:"not null" json:"time_limit"` // seconds; 0 means unlimited
}

// TimeLimitDisplay formats the time limit as minutes:seconds
func (s *Set) TimeLimitDisplay() string {
	return formatClock(s.TimeLimit)
}

// formatClock renders a duration in whole seconds as m:ss, floored at 0:00
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
