package nameutil

import (
	"testing"
)

func TestTaskName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"list_issues", "ListIssues"},
		{"print-reads", "PrintReads"},
		{"HaplotypeCaller", "HaplotypeCaller"},
		{"countReads", "CountReads"},
		{"mark duplicates spark", "MarkDuplicatesSpark"},
		{"__weird..name__", "WeirdName"},
		{"2pass", "Task2pass"},
		{"", ""},
		{"---", ""},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := TaskName(tc.input); got != tc.want {
				t.Errorf("TaskName(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestFixtureFileName(t *testing.T) {
	if got := FixtureFileName("PrintReads"); got != "PrintReadsTest.json" {
		t.Errorf("FixtureFileName = %q", got)
	}
}
