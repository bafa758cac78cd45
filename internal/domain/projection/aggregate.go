package projection

import (
	"sort"
	"time"
)

// ReportAt computes the full report for an instant. Instants after the
// engine's reference time run the forecast simulation; instants before it
// replay the change log backward. A historical report fills only the
// current-side columns and scores reconstructed levels against today's
// resolved targets.
func (e *Engine) ReportAt(instant time.Time) Report {
	if instant.After(e.now) {
		return e.ReportForecast(instant)
	}
	levels := e.currentLevels()
	if instant.Before(e.now) {
		levels = e.LevelsAt(instant)
	}
	return e.buildReport(instant, levels, nil)
}

// ReportForecast computes the current-versus-projected report for a
// future horizon.
func (e *Engine) ReportForecast(horizon time.Time) Report {
	proj := e.Forecast(horizon)
	return e.buildReport(horizon, e.currentLevels(), &proj)
}

// ForecastMonths is ReportForecast with a horizon of whole months from
// the engine's reference time.
func (e *Engine) ForecastMonths(months int) Report {
	return e.ReportForecast(e.now.AddDate(0, months, 0))
}

func (e *Engine) currentLevels() map[Pair]int {
	levels := make(map[Pair]int, len(e.assessments))
	for pair, assessment := range e.assessments {
		levels[pair] = assessment.Level
	}
	return levels
}

func (e *Engine) buildReport(instant time.Time, current map[Pair]int, proj *Projection) Report {
	skillsByEmployee := map[string][]string{}
	seen := map[Pair]bool{}
	collect := func(pair Pair) {
		if seen[pair] {
			return
		}
		seen[pair] = true
		if _, ok := e.employeesByID[pair.EmployeeID]; !ok {
			return
		}
		if _, ok := e.skillsByID[pair.SkillID]; !ok {
			return
		}
		skillsByEmployee[pair.EmployeeID] = append(skillsByEmployee[pair.EmployeeID], pair.SkillID)
	}
	for pair := range current {
		collect(pair)
	}
	if proj != nil {
		for pair := range proj.Levels {
			collect(pair)
		}
	}

	kpis := KPISet{}
	var allCurrent, allForecast []scorePoint
	categoryCurrent := map[string][]scorePoint{}
	categoryForecast := map[string][]scorePoint{}
	rows := make([]EmployeeRow, 0, len(skillsByEmployee))

	for _, employee := range e.snap.Employees {
		if !e.isActive(employee) {
			continue
		}
		departing := proj != nil && !proj.ActiveSet[employee.ID]

		row := EmployeeRow{
			EmployeeID: employee.ID,
			Name:       employee.Name,
			Department: employee.Department,
			Departing:  departing,
		}
		if proj != nil {
			row.PlannedMeasures = proj.PlannedByEmployee[employee.ID]
			row.CompletingMeasures = proj.CompletingByEmployee[employee.ID]
		}

		var currentPoints, forecastPoints []scorePoint
		for _, skillID := range skillsByEmployee[employee.ID] {
			pair := Pair{employee.ID, skillID}
			target := e.EffectiveTarget(employee.ID, skillID)
			hasTarget := target > 0
			categoryID := e.categoryOf(skillID)

			level, assessed := current[pair]
			if !assessed {
				// Pair created by a scheduled measure; implicit current
				// level 0 for delta purposes, excluded from current
				// averages.
				level = LevelNone
			}
			currentScore := Fulfillment(level, target)
			if assessed {
				point := scorePoint{value: currentScore, hasTarget: hasTarget}
				currentPoints = append(currentPoints, point)
				allCurrent = append(allCurrent, point)
				if categoryID != "" {
					categoryCurrent[categoryID] = append(categoryCurrent[categoryID], point)
				}
				if hasTarget && level < target {
					kpis.CurrentDeficits++
				}
				if level > 0 {
					kpis.CurrentXP += level
				}
			}

			forecastScore := currentScore
			if proj != nil {
				projected := proj.Levels[pair]
				forecastScore = Fulfillment(projected, target)
				if !departing {
					point := scorePoint{value: forecastScore, hasTarget: hasTarget}
					forecastPoints = append(forecastPoints, point)
					allForecast = append(allForecast, point)
					if categoryID != "" {
						categoryForecast[categoryID] = append(categoryForecast[categoryID], point)
					}
					if hasTarget && projected < target {
						kpis.ForecastDeficits++
					}
					if projected > 0 {
						kpis.ForecastXP += projected
					}
				}
			}

			row.Skills = append(row.Skills, SkillScore{
				SkillID:             skillID,
				SkillName:           e.skillsByID[skillID].Name,
				Level:               level,
				Target:              target,
				CurrentFulfillment:  currentScore,
				ForecastFulfillment: forecastScore,
			})
		}

		// Worst-served skills first.
		sort.Slice(row.Skills, func(i, j int) bool {
			a, b := row.Skills[i], row.Skills[j]
			if a.CurrentFulfillment != b.CurrentFulfillment {
				return a.CurrentFulfillment < b.CurrentFulfillment
			}
			if a.SkillName != b.SkillName {
				return a.SkillName < b.SkillName
			}
			return a.SkillID < b.SkillID
		})

		row.CurrentAvg = averageFulfillment(currentPoints)
		if proj != nil && !departing {
			row.ForecastAvg = averageFulfillment(forecastPoints)
		}
		if row.CurrentAvg != nil && row.ForecastAvg != nil {
			delta := *row.ForecastAvg - *row.CurrentAvg
			row.Delta = &delta
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})

	kpis.CurrentAvg = averageFulfillment(allCurrent)
	if proj != nil {
		kpis.ForecastAvg = averageFulfillment(allForecast)
		kpis.DeficitDelta = kpis.ForecastDeficits - kpis.CurrentDeficits
		kpis.XPDelta = kpis.ForecastXP - kpis.CurrentXP
		kpis.Departures = len(proj.Departures)
		kpis.PlannedMeasures = proj.PlannedTotal
		kpis.CompletingMeasures = proj.CompletingTotal
	}
	if kpis.CurrentAvg != nil && kpis.ForecastAvg != nil {
		delta := *kpis.ForecastAvg - *kpis.CurrentAvg
		kpis.AvgDelta = &delta
	}

	bars := make([]CategoryBar, 0, len(e.snap.Categories))
	for _, category := range e.snap.Categories {
		bar := CategoryBar{
			CategoryID: category.ID,
			Name:       category.Name,
			CurrentAvg: averageFulfillment(categoryCurrent[category.ID]),
		}
		if proj != nil {
			bar.ForecastAvg = averageFulfillment(categoryForecast[category.ID])
		}
		bars = append(bars, bar)
	}
	sort.Slice(bars, func(i, j int) bool {
		if bars[i].Name != bars[j].Name {
			return bars[i].Name < bars[j].Name
		}
		return bars[i].CategoryID < bars[j].CategoryID
	})

	return Report{
		GeneratedAt: e.now,
		Instant:     instant,
		KPIs:        kpis,
		Employees:   rows,
		Categories:  bars,
	}
}

func (e *Engine) categoryOf(skillID string) string {
	skill, ok := e.skillsByID[skillID]
	if !ok {
		return ""
	}
	sub, ok := e.subCatsByID[skill.SubCategoryID]
	if !ok {
		return ""
	}
	return sub.CategoryID
}
