package services

import "errors"

// Request-scoped failures surfaced to the handlers. All of them map onto a
// single HTTP status at the boundary; none corrupt state.
var (
	ErrNotFound         = errors.New("not found")
	ErrNotUnlocked      = errors.New("set is not unlocked yet")
	ErrExpired          = errors.New("solution has expired")
	ErrForbidden        = errors.New("forbidden")
	ErrGenerationFailed = errors.New("input generation failed")
	ErrAlreadyComplete  = errors.New("solution is already complete")
	ErrChallengeClosed  = errors.New("challenge is not accepting submissions")
)
