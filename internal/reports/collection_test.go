package reports

import (
	"encoding/json"
	"testing"

	"report_manager/internal/models"
)

func report(userID uint, date string, index int, project, status string, reviewed bool) models.DailyReport {
	return models.DailyReport{
		UserID:        userID,
		ReportDate:    date,
		ReportIndex:   index,
		Project:       project,
		Status:        status,
		AdminReviewed: reviewed,
	}
}

func TestGroup_OrdersByIndex(t *testing.T) {
	rows := []models.DailyReport{
		report(1, "2024-05-01", 2, "C", "pending", false),
		report(1, "2024-05-01", 0, "A", "completed", false),
		report(1, "2024-05-01", 1, "B", "completed", false),
	}

	col := Group(rows)
	day := col[1]["2024-05-01"]
	if len(day) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(day))
	}
	for i, want := range []string{"A", "B", "C"} {
		if day[i].Project != want {
			t.Errorf("position %d: expected project %s, got %s", i, want, day[i].Project)
		}
	}
}

func TestGroup_EmptyInputIsEmptyObject(t *testing.T) {
	col := Group(nil)
	if col == nil {
		t.Fatal("expected non-nil collection")
	}
	data, err := json.Marshal(col)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("expected {}, got %s", data)
	}
}

func TestEffectiveStatus_LastElementWins(t *testing.T) {
	day := DayReports{
		report(1, "2024-05-01", 0, "Alpha", "completed", false),
		report(1, "2024-05-01", 1, "Beta", "overdue", false),
		report(1, "2024-05-01", 2, "Gamma", "pending", false),
	}
	if got := EffectiveStatus(day); got != models.ReportPending {
		t.Errorf("expected pending, got %s", got)
	}
	if got := EffectiveProject(day); got != "Gamma" {
		t.Errorf("expected Gamma, got %s", got)
	}
}

func TestEffectiveStatus_Fallbacks(t *testing.T) {
	if got := EffectiveStatus(nil); got != models.ReportPending {
		t.Errorf("empty day: expected pending, got %s", got)
	}
	day := DayReports{report(1, "2024-05-01", 0, "", "something_unknown", false)}
	if got := EffectiveStatus(day); got != models.ReportPending {
		t.Errorf("unknown status: expected pending, got %s", got)
	}
	if got := EffectiveProject(nil); got != "" {
		t.Errorf("empty day: expected empty project, got %q", got)
	}
}

func TestIsDayReviewed_RequiresEveryReport(t *testing.T) {
	day := DayReports{
		report(1, "2024-05-01", 0, "A", "completed", true),
		report(1, "2024-05-01", 1, "A", "completed", false),
		report(1, "2024-05-01", 2, "A", "completed", true),
	}
	if IsDayReviewed(day) {
		t.Error("one unreviewed report out of three must make the day unreviewed")
	}

	day[1].AdminReviewed = true
	if !IsDayReviewed(day) {
		t.Error("all reports reviewed must make the day reviewed")
	}

	if IsDayReviewed(nil) {
		t.Error("an empty day is never reviewed")
	}
}

func TestComputeStats_ClassifiesPerDate(t *testing.T) {
	uc := UserCollection{
		"2024-05-01": {
			report(1, "2024-05-01", 0, "Alpha", "completed", false),
			report(1, "2024-05-01", 1, "Beta", "pending", false),
		},
		"2024-05-02": {report(1, "2024-05-02", 0, "Alpha", "completed", false)},
		"2024-05-03": {report(1, "2024-05-03", 0, "Alpha", "overdue", false)},
		"2024-05-04": {},
	}

	stats := ComputeStats(uc)
	if stats.Total != 3 {
		t.Errorf("expected total 3, got %d", stats.Total)
	}
	if stats.Completed != 1 || stats.Pending != 1 || stats.Overdue != 1 {
		t.Errorf("unexpected breakdown: %+v", stats)
	}
}

// Two same-day reports that disagree: the second one decides the day.
func TestMultiReportDayScenario(t *testing.T) {
	rows := []models.DailyReport{
		report(1, "2024-05-01", 0, "Alpha", "completed", false),
		report(1, "2024-05-01", 1, "Beta", "pending", false),
	}
	col := Group(rows)
	day := col[1]["2024-05-01"]

	if got := EffectiveProject(day); got != "Beta" {
		t.Errorf("expected Beta, got %s", got)
	}
	if got := EffectiveStatus(day); got != models.ReportPending {
		t.Errorf("expected pending, got %s", got)
	}
	if len(day) != 2 {
		t.Errorf("expected 2 reports, got %d", len(day))
	}
	reviewed := 0
	for _, r := range day {
		if r.AdminReviewed {
			reviewed++
		}
	}
	if reviewed != 0 {
		t.Errorf("expected 0 reviewed, got %d", reviewed)
	}
}

func TestDayReports_UnmarshalSingleAndArray(t *testing.T) {
	var fromSingle DayReports
	if err := json.Unmarshal([]byte(`{"user_id":1,"date":"2024-05-01","report_index":0,"project":"Alpha"}`), &fromSingle); err != nil {
		t.Fatalf("single object: %v", err)
	}
	if len(fromSingle) != 1 || fromSingle[0].Project != "Alpha" {
		t.Errorf("single object: got %+v", fromSingle)
	}

	var fromArray DayReports
	if err := json.Unmarshal([]byte(`[{"project":"Alpha"},{"project":"Beta"}]`), &fromArray); err != nil {
		t.Fatalf("array: %v", err)
	}
	if len(fromArray) != 2 {
		t.Errorf("array: expected 2 elements, got %d", len(fromArray))
	}
}

func TestDayReports_MarshalSingleAsObject(t *testing.T) {
	single := DayReports{report(1, "2024-05-01", 0, "Alpha", "completed", false)}
	data, err := json.Marshal(single)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if data[0] != '{' {
		t.Errorf("single-report day must marshal as an object, got %s", data)
	}

	double := DayReports{
		report(1, "2024-05-01", 0, "Alpha", "completed", false),
		report(1, "2024-05-01", 1, "Beta", "pending", false),
	}
	data, err = json.Marshal(double)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if data[0] != '[' {
		t.Errorf("multi-report day must marshal as an array, got %s", data)
	}
}
