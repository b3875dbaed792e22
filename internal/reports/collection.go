package reports

import (
	"encoding/json"
	"sort"

	"report_manager/internal/models"
)

// DayReports holds every report one user filed for a single date, in
// report-index order. It is always a list internally, even for a single
// report; the single-vs-array distinction exists only on the wire.
type DayReports []models.DailyReport

// Legacy clients store a lone report as a bare object and several as an
// array. Accept both shapes on input and emit the bare object back for
// single-report days.
func (d *DayReports) UnmarshalJSON(data []byte) error {
	var list []models.DailyReport
	if err := json.Unmarshal(data, &list); err == nil {
		*d = list
		return nil
	}
	var single models.DailyReport
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*d = DayReports{single}
	return nil
}

func (d DayReports) MarshalJSON() ([]byte, error) {
	if len(d) == 1 {
		return json.Marshal(d[0])
	}
	return json.Marshal([]models.DailyReport(d))
}

// UserCollection maps date strings (YYYY-MM-DD) to that day's reports.
// A date with no reports has no key at all, never an empty list.
type UserCollection map[string]DayReports

// Collection maps user IDs to their report collections.
type Collection map[uint]UserCollection

// Group nests flat rows into per-user, per-date lists ordered by report
// index. The result is never nil so an empty input serializes as {}.
func Group(rows []models.DailyReport) Collection {
	c := Collection{}
	for _, row := range rows {
		uc, ok := c[row.UserID]
		if !ok {
			uc = UserCollection{}
			c[row.UserID] = uc
		}
		uc[row.ReportDate] = append(uc[row.ReportDate], row)
	}
	for _, uc := range c {
		for date := range uc {
			day := uc[date]
			sort.SliceStable(day, func(i, j int) bool {
				return day[i].ReportIndex < day[j].ReportIndex
			})
		}
	}
	return c
}

// Merge copies other's users into c. Collections fetched per user never
// share a user key, so overwrite is fine.
func (c Collection) Merge(other Collection) {
	for userID, uc := range other {
		c[userID] = uc
	}
}

// EffectiveStatus classifies a day by its most recently created report
// (highest index). Unknown or missing statuses fall back to pending so
// rows written before the status field existed cannot break aggregation.
func EffectiveStatus(day DayReports) models.ReportStatus {
	if len(day) == 0 {
		return models.ReportPending
	}
	switch s := models.ReportStatus(day[len(day)-1].Status); s {
	case models.ReportCompleted, models.ReportPending, models.ReportOverdue:
		return s
	}
	return models.ReportPending
}

// EffectiveProject returns the project name of a day's most recently
// created report, or "" for an empty day.
func EffectiveProject(day DayReports) string {
	if len(day) == 0 {
		return ""
	}
	return day[len(day)-1].Project
}

// IsDayReviewed reports whether every report of the day has been
// reviewed. One unreviewed report makes the whole day pending.
func IsDayReviewed(day DayReports) bool {
	if len(day) == 0 {
		return false
	}
	for _, r := range day {
		if !r.AdminReviewed {
			return false
		}
	}
	return true
}

// Stats are derived counts over one user's collection, recomputed on
// demand and never stored.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// ComputeStats classifies every date key via its effective status. Dates
// absent from the collection contribute nothing.
func ComputeStats(uc UserCollection) Stats {
	var s Stats
	for _, day := range uc {
		if len(day) == 0 {
			continue
		}
		s.Total++
		switch EffectiveStatus(day) {
		case models.ReportCompleted:
			s.Completed++
		case models.ReportOverdue:
			s.Overdue++
		default:
			s.Pending++
		}
	}
	return s
}
