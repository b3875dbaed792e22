package reports

import (
	"fmt"
	"time"

	"report_manager/internal/apperrors"
)

const dateLayout = "2006-01-02"

// FormatDate renders t as YYYY-MM-DD from its local calendar fields.
// Going through UTC shifts dates across midnight on non-UTC hosts.
func FormatDate(t time.Time) string {
	year, month, day := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// FormatDateJa renders a YYYY-MM-DD date string for the activity feed,
// e.g. "2024年5月1日". An unparseable input is returned as is.
func FormatDateJa(date string) string {
	t, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return date
	}
	return t.Format("2006年1月2日")
}

// ValidateDate checks that date is a well-formed YYYY-MM-DD string.
func ValidateDate(date string) error {
	if _, err := time.ParseInLocation(dateLayout, date, time.Local); err != nil {
		return fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, date)
	}
	return nil
}
