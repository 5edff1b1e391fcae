package transformer

import (
	"fmt"
	"time"

	"github.com/Jagbo/zenrent-sub000/internal/dateutils"
	"github.com/Jagbo/zenrent-sub000/internal/models"
)

// checkPeriod parses the period bounds of the input data and appends
// structural errors for unparseable dates or an inverted range. ok is false
// when the payload cannot be built.
func checkPeriod(data *models.FinancialData, errors *[]models.ValidationIssue) (start, end time.Time, ok bool) {
	start, errStart := dateutils.ParseISO(data.StartDate)
	if errStart != nil {
		*errors = append(*errors, models.ValidationIssue{
			Field:   "startDate",
			Message: fmt.Sprintf("Start date (%s) is not a valid YYYY-MM-DD date", data.StartDate),
			Code:    "DATE_FORMAT_ERROR",
		})
	}
	end, errEnd := dateutils.ParseISO(data.EndDate)
	if errEnd != nil {
		*errors = append(*errors, models.ValidationIssue{
			Field:   "endDate",
			Message: fmt.Sprintf("End date (%s) is not a valid YYYY-MM-DD date", data.EndDate),
			Code:    "DATE_FORMAT_ERROR",
		})
	}
	if errStart != nil || errEnd != nil {
		return start, end, false
	}
	if start.After(end) {
		*errors = append(*errors, models.ValidationIssue{
			Field:   "dateRange",
			Message: fmt.Sprintf("Start date (%s) must be before or equal to end date (%s)", data.StartDate, data.EndDate),
			Code:    "INVALID_DATE_RANGE",
		})
		return start, end, false
	}
	return start, end, true
}
