package tagformat

import (
	"regexp"
	"strings"
)

// placeholderPattern matches angle-bracket placeholder remnants the model
// sometimes copies out of its instructions, e.g. "<insert option here>".
var placeholderPattern = regexp.MustCompile(`<[^<>\n]*>`)

// Normalize rewrites raw model output into line-delimited tag form by
// surrounding every recognized tag token with newlines, so that tags start
// their own line even when the model emitted them inline. Re-running
// Normalize on its own output changes nothing that the parser can see: blank
// lines are skipped during scanning, so block boundaries and field contents
// are stable.
func Normalize(raw string, schema Schema) string {
	for _, f := range schema.Fields {
		raw = strings.ReplaceAll(raw, f.Tag, "\n"+f.Tag+"\n")
	}
	return strings.ReplaceAll(raw, TagEnd, "\n"+TagEnd+"\n")
}

// NormalizeMathDelimiters converts LaTeX display and inline delimiters to the
// dollar forms the UI's math renderer expects.
func NormalizeMathDelimiters(s string) string {
	s = strings.ReplaceAll(s, `\[`, "$$")
	s = strings.ReplaceAll(s, `\]`, "$$")
	s = strings.ReplaceAll(s, `\(`, "$")
	s = strings.ReplaceAll(s, `\)`, "$")
	return s
}

// CleanFieldValue applies the per-field repairs: math delimiter conversion,
// placeholder stripping, and whitespace collapsing. Line structure within a
// field survives; blank lines and runs of spaces do not.
func CleanFieldValue(s string) string {
	s = NormalizeMathDelimiters(s)
	s = placeholderPattern.ReplaceAllString(s, "")

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		collapsed := strings.Join(strings.Fields(line), " ")
		if collapsed != "" {
			lines = append(lines, collapsed)
		}
	}

	return strings.Join(lines, "\n")
}
