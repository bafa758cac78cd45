package assessment

import "sort"

type pairKey struct {
	employeeID string
	skillID    string
}

// Merge reconciles two assessment sets edited independently, last write
// wins per pair by UpdatedAt. Ties keep the local record. The result is
// sorted by employee then skill.
func Merge(local, remote []Assessment) []Assessment {
	byPair := make(map[pairKey]Assessment, len(local)+len(remote))
	for _, a := range local {
		byPair[pairKey{a.EmployeeID, a.SkillID}] = a
	}
	for _, a := range remote {
		key := pairKey{a.EmployeeID, a.SkillID}
		existing, ok := byPair[key]
		if !ok || a.UpdatedAt.After(existing.UpdatedAt) {
			byPair[key] = a
		}
	}

	merged := make([]Assessment, 0, len(byPair))
	for _, a := range byPair {
		merged = append(merged, a)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].EmployeeID != merged[j].EmployeeID {
			return merged[i].EmployeeID < merged[j].EmployeeID
		}
		return merged[i].SkillID < merged[j].SkillID
	})
	return merged
}
