package analytics

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Filter carries the validated, normalized constraints for listing and
// aggregation queries. Construct it with NewFilter; a zero Filter matches
// everything.
type Filter struct {
	DateFrom string
	DateTo   string
	TargetID string
	PageURL  string
}

// NewFilter normalizes raw, untrusted request input into a Filter.
// Date strings that do not strictly round-trip through YYYY-MM-DD are
// dropped without error; substring filters are kept verbatim and escaped
// at clause-build time.
func NewFilter(dateFrom, dateTo, targetID, pageURL string) Filter {
	f := Filter{
		TargetID: strings.TrimSpace(targetID),
		PageURL:  strings.TrimSpace(pageURL),
	}
	if validDate(dateFrom) {
		f.DateFrom = dateFrom
	}
	if validDate(dateTo) {
		f.DateTo = dateTo
	}
	return f
}

// validDate accepts only strings that parse as YYYY-MM-DD and format back
// to the identical string. Lenient inputs such as "2024-2-1" or rollover
// dates like "2024-02-30" are rejected.
func validDate(s string) bool {
	if s == "" {
		return false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return false
	}
	return t.Format(dateLayout) == s
}

// Where builds the SQL predicate for the filter: an ordered clause list
// joined with AND plus the matching bind arguments. Values are always
// bound, never interpolated. An empty filter yields ("", nil), i.e.
// match-all.
func (f Filter) Where() (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if f.DateFrom != "" {
		clauses = append(clauses, "time::date >= ?")
		args = append(args, f.DateFrom)
	}
	if f.DateTo != "" {
		clauses = append(clauses, "time::date <= ?")
		args = append(args, f.DateTo)
	}
	if f.TargetID != "" {
		clauses = append(clauses, `target_id LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(f.TargetID)+"%")
	}
	if f.PageURL != "" {
		clauses = append(clauses, `page_url LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(f.PageURL)+"%")
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return strings.Join(clauses, " AND "), args
}

// escapeLike neutralizes LIKE pattern metacharacters so user input is
// matched literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
