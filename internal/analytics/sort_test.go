package analytics

import "testing"

func TestParseSortColumn(t *testing.T) {
	cases := []struct {
		input string
		want  SortColumn
	}{
		{"time", SortByTime},
		{"target_id", SortByTargetID},
		{"user_email", SortByUserEmail},
		{"user_group", SortByUserGroup},
		{"operating_system", SortByOperatingSystem},
		{"", SortByTime},
		{"id; DROP TABLE copy_events", SortByTime},
		{"TIME", SortByTime},
	}

	for _, tc := range cases {
		if got := ParseSortColumn(tc.input); got != tc.want {
			t.Errorf("ParseSortColumn(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestParseSortDirection(t *testing.T) {
	if got := ParseSortDirection("asc"); got != SortAscending {
		t.Errorf("ParseSortDirection(asc) = %v, want ascending", got)
	}
	if got := ParseSortDirection("desc"); got != SortDescending {
		t.Errorf("ParseSortDirection(desc) = %v, want descending", got)
	}
	if got := ParseSortDirection("sideways"); got != SortDescending {
		t.Errorf("ParseSortDirection(sideways) = %v, want descending default", got)
	}
}

func TestSortColumnSQLFragments(t *testing.T) {
	for _, col := range []SortColumn{
		SortByTime, SortByTargetID, SortByUserEmail, SortByUserGroup, SortByOperatingSystem,
	} {
		if col.Column() == "" {
			t.Errorf("column %v produced empty SQL fragment", col)
		}
	}
	if SortAscending.SQL() != "ASC" || SortDescending.SQL() != "DESC" {
		t.Errorf("unexpected direction fragments: %q %q",
			SortAscending.SQL(), SortDescending.SQL())
	}
}
