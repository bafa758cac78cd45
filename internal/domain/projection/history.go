package projection

import (
	"sort"
	"time"
)

// LevelsAt reconstructs per-pair proficiency as of a past instant by
// replaying the change log backward from the current state. Entries newer
// than the instant are applied in reverse chronological order; the chain
// invariant on PreviousLevel makes the earliest surviving entry leave the
// correct pre-instant value. Only levels are reconstructed: callers score
// the result against today's resolved targets, historical targets are not
// kept.
func (e *Engine) LevelsAt(at time.Time) map[Pair]int {
	levels := make(map[Pair]int, len(e.assessments))
	for pair, assessment := range e.assessments {
		levels[pair] = assessment.Level
	}

	var newer []LogEntry
	for _, entry := range e.snap.Log {
		if entry.Timestamp.After(at) {
			newer = append(newer, entry)
		}
	}
	sort.SliceStable(newer, func(i, j int) bool {
		return newer[i].Timestamp.After(newer[j].Timestamp)
	})
	for _, entry := range newer {
		levels[Pair{entry.EmployeeID, entry.SkillID}] = entry.PreviousLevel
	}
	return levels
}
