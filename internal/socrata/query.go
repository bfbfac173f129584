package socrata

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Query holds SoQL query parameters for a Socrata dataset request.
// Zero values mean "not set" and are omitted from the request.
type Query struct {
	Limit  int
	Offset int
	Where  string
	Order  string
	Select string
	Custom map[string]string
}

// Values converts the query into URL parameters ($limit, $offset, ...)
func (q Query) Values() url.Values {
	params := url.Values{}

	if q.Limit > 0 {
		params.Set("$limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		params.Set("$offset", strconv.Itoa(q.Offset))
	}
	if q.Where != "" {
		params.Set("$where", q.Where)
	}
	if q.Order != "" {
		params.Set("$order", q.Order)
	}
	if q.Select != "" {
		params.Set("$select", q.Select)
	}
	for key, value := range q.Custom {
		params.Set(key, value)
	}

	return params
}

// CombineWhere joins non-empty WHERE conditions with AND
func CombineWhere(conditions ...string) string {
	parts := make([]string, 0, len(conditions))
	for _, c := range conditions {
		if strings.TrimSpace(c) != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " AND ")
}

// ByZipcodes builds a WHERE clause matching any of the given zipcodes
func ByZipcodes(zipcodes []string) string {
	return inClause("zipcode", zipcodes)
}

// ByBreeds builds a WHERE clause matching any of the given breed names
func ByBreeds(breeds []string) string {
	return inClause("breedname", breeds)
}

// ByGender builds a WHERE clause for animal gender ('M' or 'F')
func ByGender(gender string) string {
	return fmt.Sprintf("animalgender = '%s'", gender)
}

// IssuedBetween builds a WHERE clause for a license-issued date range.
// Dates are YYYY-MM-DD; the range is inclusive over whole days.
func IssuedBetween(startDate, endDate string) string {
	return fmt.Sprintf("licenseissueddate between '%sT00:00:00.000' and '%sT23:59:59.999'",
		startDate, endDate)
}

// ExpiringWithin builds a WHERE clause for licenses expiring within the
// given number of days from now
func ExpiringWithin(days int, now time.Time) string {
	future := now.AddDate(0, 0, days).Format("2006-01-02")
	return fmt.Sprintf("licenseexpireddate <= '%sT23:59:59.999'", future)
}

func inClause(field string, values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		// Single quotes double up inside SoQL string literals
		quoted[i] = strings.ReplaceAll(strings.TrimSpace(v), "'", "''")
	}
	return fmt.Sprintf("%s in ('%s')", field, strings.Join(quoted, "', '"))
}
