// Package alert classifies a basin's cycle result into a colour-coded
// severity and formats the accompanying message.
package alert

import (
	"fmt"
	"sort"
	"time"

	"github.com/hidroalerta/floodcore/internal/domain"
)

// HistoryCapacity is the rolling alert history's maximum size before it is
// trimmed back to HistoryRetain entries.
const HistoryCapacity = 1000

// HistoryRetain is how many of the most recent alerts survive a trim.
const HistoryRetain = 500

// Classify applies the first-match-wins threshold rule and returns the
// resulting level. Red, orange and yellow also escalate on intensity or
// basin mean precipitation alone, independent of flow.
func Classify(flowCMS, precipMM, intensityMMH float64, thresholds domain.Thresholds) domain.AlertLevel {
	switch {
	case flowCMS >= thresholds.Red || intensityMMH >= 60 || precipMM >= 100:
		return domain.AlertRed
	case flowCMS >= thresholds.Orange || intensityMMH >= 30 || precipMM >= 50:
		return domain.AlertOrange
	case flowCMS >= thresholds.Yellow || intensityMMH >= 15 || precipMM >= 20:
		return domain.AlertYellow
	default:
		return domain.AlertGreen
	}
}

// BuildAlert classifies a basin result and returns the alert record. Green
// classifications are not meant to be emitted by callers (see AppendTo),
// but BuildAlert itself always returns a fully-populated record so callers
// can inspect the level before deciding.
func BuildAlert(basinID string, flowCMS, precipMM, intensityMMH float64, thresholds domain.Thresholds, timestamp time.Time) domain.Alert {
	level := Classify(flowCMS, precipMM, intensityMMH, thresholds)
	return domain.Alert{
		BasinID:      basinID,
		Level:        level,
		Message:      message(basinID, level, flowCMS, precipMM, intensityMMH),
		FlowCMS:      flowCMS,
		PrecipMM:     precipMM,
		IntensityMMH: intensityMMH,
		Timestamp:    timestamp,
	}
}

func message(basinID string, level domain.AlertLevel, flowCMS, precipMM, intensityMMH float64) string {
	if level == domain.AlertGreen {
		return fmt.Sprintf("%s: no significant flood risk (Q=%.1f m3/s, P=%.1fmm, I=%.1fmm/h)", basinID, flowCMS, precipMM, intensityMMH)
	}
	return fmt.Sprintf("%s: %s alert (Q=%.1f m3/s, P=%.1fmm, I=%.1fmm/h)", basinID, level, flowCMS, precipMM, intensityMMH)
}

// AppendTo appends a non-green alert to the rolling history in
// chronological order, trimming to the most recent HistoryRetain entries
// once HistoryCapacity is exceeded. Green classifications are never
// appended.
func AppendTo(history []domain.Alert, a domain.Alert) []domain.Alert {
	if a.Level == domain.AlertGreen {
		return history
	}

	out := append(history, a)
	if len(out) > HistoryCapacity {
		out = append([]domain.Alert(nil), out[len(out)-HistoryRetain:]...)
	}

	return out
}

// OrderBySeverity returns a copy of history ordered by severity (red
// before orange before yellow), stable within a severity — the order a
// published snapshot's active alert list is required to carry.
func OrderBySeverity(history []domain.Alert) []domain.Alert {
	out := append([]domain.Alert(nil), history...)
	sort.SliceStable(out, func(i, j int) bool {
		return domain.SeverityRank(out[i].Level) < domain.SeverityRank(out[j].Level)
	})
	return out
}
