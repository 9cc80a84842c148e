package models

import "fmt"

// ControlToken is the single-line value written atomically to the
// well-known control path. It is a latest-wins signal, never a queue.
type ControlToken string

const (
	ControlOff ControlToken = "OFF"
)

// PatternToken builds the PATTERN:<COLOR> token for a given level.
func PatternToken(level AlertLevel) ControlToken {
	if level == AlertSafe {
		return ControlToken(fmt.Sprintf("PATTERN:%s", level.Color()))
	}
	return ControlToken(fmt.Sprintf("PATTERN:%s", level.Color()))
}

// ValidTokens is the closed set of values the control file may ever hold,
// per the atomicity testable property: a reader must always observe one
// of these, never a torn value.
var ValidTokens = map[ControlToken]bool{
	"PATTERN:RED":    true,
	"PATTERN:YELLOW": true,
	"PATTERN:GREEN":  true,
	ControlOff:       true,
}

// ParseControlToken validates a raw token read from disk, returning ok=false
// for anything outside the closed vocabulary (a torn read or corruption).
func ParseControlToken(raw string) (ControlToken, bool) {
	t := ControlToken(raw)
	return t, ValidTokens[t]
}

// LevelForToken maps a control token back to the AlertLevel that would
// produce it, used by tests and the dashboard to render human labels.
// ControlOff maps to AlertOff, not AlertSafe: OFF clears every strip,
// while SAFE blinks green.
func LevelForToken(t ControlToken) AlertLevel {
	switch t {
	case "PATTERN:RED":
		return AlertDanger
	case "PATTERN:YELLOW":
		return AlertCaution
	case "PATTERN:GREEN":
		return AlertSafe
	case ControlOff:
		return AlertOff
	default:
		return AlertSafe
	}
}
