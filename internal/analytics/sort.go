package analytics

// SortColumn is the closed set of columns the listing may be ordered by.
// Anything outside the set falls back to SortByTime at the parse boundary.
type SortColumn int

const (
	SortByTime SortColumn = iota
	SortByTargetID
	SortByUserEmail
	SortByUserGroup
	SortByOperatingSystem
)

// SortDirection restricts ordering to the two SQL directions.
type SortDirection int

const (
	SortDescending SortDirection = iota
	SortAscending
)

// ParseSortColumn maps a request parameter onto the allow-list. Unknown or
// empty values default to time.
func ParseSortColumn(s string) SortColumn {
	switch s {
	case "time":
		return SortByTime
	case "target_id":
		return SortByTargetID
	case "user_email":
		return SortByUserEmail
	case "user_group":
		return SortByUserGroup
	case "operating_system":
		return SortByOperatingSystem
	default:
		return SortByTime
	}
}

// ParseSortDirection maps a request parameter onto asc/desc, defaulting to
// descending.
func ParseSortDirection(s string) SortDirection {
	switch s {
	case "asc", "ASC":
		return SortAscending
	default:
		return SortDescending
	}
}

// Column returns the SQL column name for the sort key. The receiver is a
// closed enum, so interpolating the result into ORDER BY is safe.
func (c SortColumn) Column() string {
	switch c {
	case SortByTargetID:
		return "target_id"
	case SortByUserEmail:
		return "user_email"
	case SortByUserGroup:
		return "user_group"
	case SortByOperatingSystem:
		return "operating_system"
	default:
		return "time"
	}
}

func (d SortDirection) SQL() string {
	if d == SortAscending {
		return "ASC"
	}
	return "DESC"
}
