package nameutil

import (
	"strings"
	"unicode"
)

// TaskName converts a tool name into a workflow task identifier: words split
// on any non-alphanumeric rune are capitalised and joined ("print_reads" →
// "PrintReads"). Existing inner capitals are kept. A leading digit gets a
// "Task" prefix so the result is a valid identifier.
func TaskName(toolName string) string {
	var b strings.Builder
	upper := true
	for _, r := range toolName {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}

	name := b.String()
	if name != "" && unicode.IsDigit([]rune(name)[0]) {
		name = "Task" + name
	}
	return name
}

// FixtureFileName is the file a task's fixture is written to.
func FixtureFileName(taskName string) string {
	return taskName + "Test.json"
}
