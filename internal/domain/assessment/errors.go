package assessment

import "errors"

var ErrInvalidLevel = errors.New("level must be one of -1, 0, 25, 50, 75, 100")

// ValidLevel reports whether v is on the proficiency scale.
func ValidLevel(v int) bool {
	switch v {
	case -1, 0, 25, 50, 75, 100:
		return true
	}
	return false
}
