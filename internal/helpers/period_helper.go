package helpers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/unations/tax-engine/internal/constants"
)

// PeriodBounds returns the half-open [start, end) interval in UTC for a filing
// period label: monthly "2025-03", quarterly "2025-Q1", annual "2025".
func PeriodBounds(returnType, period string) (time.Time, time.Time, error) {
	period = strings.TrimSpace(strings.ToUpper(period))
	switch returnType {
	case constants.ReturnTypeMonthly:
		start, err := time.Parse("2006-01", period)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("monthly period must look like 2025-03: %w", err)
		}
		return start, start.AddDate(0, 1, 0), nil
	case constants.ReturnTypeQuarterly:
		parts := strings.Split(period, "-Q")
		if len(parts) != 2 {
			return time.Time{}, time.Time{}, fmt.Errorf("quarterly period must look like 2025-Q1, got %q", period)
		}
		year, err := strconv.Atoi(parts[0])
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid year in period %q: %w", period, err)
		}
		quarter, err := strconv.Atoi(parts[1])
		if err != nil || quarter < 1 || quarter > 4 {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid quarter in period %q", period)
		}
		start := time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 3, 0), nil
	case constants.ReturnTypeAnnual:
		year, err := strconv.Atoi(period)
		if err != nil || year < 1900 {
			return time.Time{}, time.Time{}, fmt.Errorf("annual period must be a year, got %q", period)
		}
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unsupported return type %q", returnType)
	}
}

// DueDate applies the filing offset of the return type to the period end.
func DueDate(returnType string, endDate time.Time) (time.Time, error) {
	switch returnType {
	case constants.ReturnTypeMonthly:
		return endDate.AddDate(0, 0, constants.MonthlyDueOffsetDays), nil
	case constants.ReturnTypeQuarterly:
		return endDate.AddDate(0, 0, constants.QuarterlyDueOffsetDays), nil
	case constants.ReturnTypeAnnual:
		return endDate.AddDate(0, 0, constants.AnnualDueOffsetDays), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported return type %q", returnType)
	}
}

// IsValidReturnType checks the return type against the supported filing frequencies.
func IsValidReturnType(returnType string) bool {
	switch returnType {
	case constants.ReturnTypeMonthly, constants.ReturnTypeQuarterly, constants.ReturnTypeAnnual:
		return true
	default:
		return false
	}
}
