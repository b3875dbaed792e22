package calendar

import "report_manager/internal/reports"

// ActionType tags what clicking a day does. Modeling this as explicit
// dialog state keeps the selection flow out of the rendering layer.
type ActionType string

const (
	ActionNone         ActionType = "none"
	ActionCreate       ActionType = "create"
	ActionOpen         ActionType = "open"
	ActionSelectReport ActionType = "select_report"
	ActionSelectOwner  ActionType = "select_owner"
)

// DayAction is the resolved click target for one calendar cell.
type DayAction struct {
	Type        ActionType `json:"type"`
	Date        string     `json:"date,omitempty"`
	OwnerID     uint       `json:"owner_id,omitempty"`
	ReportIndex int        `json:"report_index,omitempty"`
	ReportCount int        `json:"report_count,omitempty"`
	Owners      []uint     `json:"owners,omitempty"`
}

// Viewer identifies who is clicking.
type Viewer struct {
	UserID  uint
	IsAdmin bool
}

// ResolveDayClick decides what a click on cell does.
//
// Empty days open report creation only for a non-admin viewer on a date
// no later than today; admins are read/feedback-only and future dates
// never allow creation. A day with one report opens it directly; one
// owner with several reports goes through report selection; several
// owners go through owner selection first.
func ResolveDayClick(cell DayCell, col reports.Collection, viewer Viewer, today string) DayAction {
	if cell.Day == 0 {
		return DayAction{Type: ActionNone}
	}

	if len(cell.ReportOwners) == 0 {
		if viewer.IsAdmin || cell.DateString > today {
			return DayAction{Type: ActionNone, Date: cell.DateString}
		}
		return DayAction{Type: ActionCreate, Date: cell.DateString, OwnerID: viewer.UserID}
	}

	if len(cell.ReportOwners) > 1 {
		return DayAction{
			Type:   ActionSelectOwner,
			Date:   cell.DateString,
			Owners: cell.ReportOwners,
		}
	}

	owner := cell.ReportOwners[0]
	day := col[owner][cell.DateString]
	if len(day) > 1 {
		return DayAction{
			Type:        ActionSelectReport,
			Date:        cell.DateString,
			OwnerID:     owner,
			ReportCount: len(day),
		}
	}
	action := DayAction{Type: ActionOpen, Date: cell.DateString, OwnerID: owner}
	if len(day) == 1 {
		action.ReportIndex = day[0].ReportIndex
	}
	return action
}

// AnnotateActions fills in every cell's resolved click action.
func AnnotateActions(grid *MonthGrid, col reports.Collection, viewer Viewer, today string) {
	for wi := range grid.Weeks {
		for ci := range grid.Weeks[wi] {
			cell := &grid.Weeks[wi][ci]
			if cell.Day == 0 {
				continue
			}
			action := ResolveDayClick(*cell, col, viewer, today)
			cell.Action = &action
		}
	}
}
