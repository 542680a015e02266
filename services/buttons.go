package services

import (
	"fmt"
	"strings"
	"time"

	"pqapi/config"
	"pqapi/models"
)

// Button states for a set on the challenge page
const (
	ButtonLoginRequired = "login_required"
	ButtonLocked        = "locked"
	ButtonOpen          = "open"
	ButtonRunning       = "running"
	ButtonExpired       = "expired"
	ButtonCompleted     = "completed"
)

// Button is the display state of one set for one viewer. It replaces the
// old per-state subclass hierarchy with a single tagged value.
type Button struct {
	State    string      `json:"state"`
	Set      *models.Set `json:"set"`
	Action   string      `json:"action"`
	Time     string      `json:"time"`
	Icon     string      `json:"icon"`
	Classes  [2]string   `json:"classes"`
	URL      string      `json:"url"`
	Running  bool        `json:"running"`
	Disabled bool        `json:"disabled"`
}

// ChallengeButtons computes the button row for a challenge page. The viewer
// may be nil for anonymous visitors; solutions is the viewer's solutions
// keyed by set id.
func ChallengeButtons(challenge *models.Challenge, viewer *models.User, solutions map[uint]*models.Solution, now time.Time, timing config.Timing) []Button {
	sets := OrderedSets(challenge)

	completed := 0
	for _, set := range sets {
		if sol := solutions[set.ID]; sol != nil && sol.Status == models.SolutionComplete {
			completed++
		}
	}

	buttons := make([]Button, 0, len(sets))
	for rank, set := range sets {
		var sol *models.Solution
		if viewer != nil {
			sol = solutions[set.ID]
		}
		buttons = append(buttons, buttonFor(challenge, set, sol, viewer != nil, rank+1, completed, now, timing))
	}
	return buttons
}

// buttonFor is the decision table mapping (authenticated, unlock rank,
// solution status, expiry) to a display state
func buttonFor(challenge *models.Challenge, set *models.Set, sol *models.Solution, authenticated bool, rank, completed int, now time.Time, timing config.Timing) Button {
	b := Button{Set: set, Icon: "icon-time", Time: set.TimeLimitDisplay()}
	beginURL := fmt.Sprintf("/api/v1/challenges/%d/begin/%d", challenge.ID, set.ID)

	switch {
	case !authenticated:
		b.State = ButtonLoginRequired
		b.Action = "Login to participate"
		b.Disabled = true

	case sol == nil && !IsSetOpen(rank, completed):
		b.State = ButtonLocked
		b.Action = "Complete previous set to unlock"
		b.Disabled = true

	case sol != nil && sol.Status == models.SolutionComplete:
		b.State = ButtonCompleted
		b.Action = "Completed!"
		b.Icon = "icon-ok icon-white"
		b.Classes = [2]string{"btn-success", "btn-success"}

	case sol != nil && sol.IsExpired(now, timing.GracePeriod):
		b.State = ButtonExpired
		b.Action = fmt.Sprintf("Retry %s set", strings.ToLower(set.Title))
		b.Icon = "icon-time icon-white"
		b.Classes = [2]string{"btn-info btn-refresh", "btn-inverse"}
		b.URL = beginURL

	case sol != nil:
		b.State = ButtonRunning
		b.Action = fmt.Sprintf("%s set in progress", set.Title)
		b.Icon = "icon-time icon-white"
		b.Running = true
		b.URL = beginURL
		if set.TimeLimit > 0 {
			b.Classes = [2]string{"btn-primary", "btn-inverse timer-running"}
			b.Time = sol.TimeLeft(now, timing.GracePeriod)
		} else {
			b.Classes = [2]string{"btn-primary", "btn-inverse"}
			b.Time = "0:00"
		}

	default:
		b.State = ButtonOpen
		b.Action = "Download input"
		b.Icon = "icon-time icon-white"
		b.Classes = [2]string{"btn-info btn-refresh", "btn-inverse"}
		b.URL = beginURL
	}
	return b
}
