package projection

import "math"

// Fulfillment normalizes a raw proficiency level against a target into a
// 0-100 score. A negative level (not assessed) maps to the -1 sentinel.
// With a positive target the score is the capped ratio level/target; a
// level above target earns no more than 100. Without a target the raw
// level doubles as the score.
func Fulfillment(level, target int) int {
	if level < 0 {
		return LevelNotAssessed
	}
	if target > 0 {
		score := int(math.Round(float64(level) / float64(target) * 100))
		if score > 100 {
			score = 100
		}
		return score
	}
	return level
}

type scorePoint struct {
	value     int
	hasTarget bool
}

// averageFulfillment reduces fulfillment values with the dual-mode rule
// shared by every aggregation site: values measured against a target
// count zeros but never the -1 sentinel; values without a target count
// neither zeros nor the sentinel. If at least one target-bearing value
// exists only that class is averaged; otherwise the raw class is the
// fallback. An empty set yields nil, never zero.
func averageFulfillment(points []scorePoint) *float64 {
	var targetSum, targetCount int
	var rawSum, rawCount int
	for _, point := range points {
		if point.value < 0 {
			continue
		}
		if point.hasTarget {
			targetSum += point.value
			targetCount++
			continue
		}
		if point.value > 0 {
			rawSum += point.value
			rawCount++
		}
	}
	if targetCount > 0 {
		avg := float64(targetSum) / float64(targetCount)
		return &avg
	}
	if rawCount > 0 {
		avg := float64(rawSum) / float64(rawCount)
		return &avg
	}
	return nil
}
