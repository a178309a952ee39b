package goals

import "github.com/hongminglow/budget-be/internal/models"

// StatusUpdate says how an update decides the goal status: either an
// explicit value chosen by the caller, or a recomputation from the amounts.
type StatusUpdate struct {
	explicit bool
	status   models.GoalStatus
}

// SetStatus forces status regardless of the amounts.
func SetStatus(status models.GoalStatus) StatusUpdate {
	return StatusUpdate{explicit: true, status: status}
}

// Recompute derives the status from current and target amounts.
func Recompute() StatusUpdate {
	return StatusUpdate{}
}

// StatusFromRequest maps a raw status from a request body. Unknown or empty
// values fall back to Recompute.
func StatusFromRequest(raw string) StatusUpdate {
	if s := models.GoalStatus(raw); s.Valid() {
		return SetStatus(s)
	}
	return Recompute()
}

// Explicit reports whether the update carries a caller supplied status.
func (u StatusUpdate) Explicit() bool { return u.explicit }

func (u StatusUpdate) resolve(g models.Goal) models.GoalStatus {
	if u.explicit {
		return u.status
	}
	return models.DeriveStatus(g.CurrentAmount, g.TargetAmount)
}
