package calendar

import (
	"sort"
	"time"

	"report_manager/internal/reports"
)

// ViewMode selects whose reports a calendar cell counts: only the
// viewer's own (personal) or every user in the collection (team).
type ViewMode string

const (
	ViewPersonal ViewMode = "personal"
	ViewTeam     ViewMode = "team"
)

// DayCell is one cell of the month grid. Day 0 marks a padding cell
// before the 1st or after the last day of the month.
type DayCell struct {
	Day           int        `json:"day"`
	DateString    string     `json:"date,omitempty"`
	HasReport     bool       `json:"has_report"`
	ReportOwners  []uint     `json:"report_owners,omitempty"`
	IsReviewed    bool       `json:"is_reviewed"`
	ReviewedCount int        `json:"reviewed_count"`
	TotalCount    int        `json:"total_count"`
	Action        *DayAction `json:"action,omitempty"`
}

type MonthGrid struct {
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Weeks [][]DayCell `json:"weeks"`
}

// BuildMonthGrid lays the month out as full weeks starting on Sunday,
// padded with empty cells, and derives per-day report presence,
// ownership and review state from the collection.
func BuildMonthGrid(col reports.Collection, year int, month time.Month, view ViewMode, viewerID uint) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	offset := int(first.Weekday())
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()

	cells := make([]DayCell, 0, offset+daysInMonth+6)
	for i := 0; i < offset; i++ {
		cells = append(cells, DayCell{})
	}

	for day := 1; day <= daysInMonth; day++ {
		date := reports.FormatDate(time.Date(year, month, day, 0, 0, 0, 0, time.Local))
		cell := DayCell{Day: day, DateString: date}
		for userID, uc := range col {
			if view == ViewPersonal && userID != viewerID {
				continue
			}
			dayReports := uc[date]
			if len(dayReports) == 0 {
				continue
			}
			cell.ReportOwners = append(cell.ReportOwners, userID)
			cell.TotalCount += len(dayReports)
			for _, r := range dayReports {
				if r.AdminReviewed {
					cell.ReviewedCount++
				}
			}
		}
		sort.Slice(cell.ReportOwners, func(i, j int) bool {
			return cell.ReportOwners[i] < cell.ReportOwners[j]
		})
		cell.HasReport = cell.TotalCount > 0
		cell.IsReviewed = cell.TotalCount > 0 && cell.ReviewedCount == cell.TotalCount
		cells = append(cells, cell)
	}

	for len(cells)%7 != 0 {
		cells = append(cells, DayCell{})
	}

	grid := MonthGrid{Year: year, Month: int(month)}
	for i := 0; i < len(cells); i += 7 {
		grid.Weeks = append(grid.Weeks, cells[i:i+7])
	}
	return grid
}
