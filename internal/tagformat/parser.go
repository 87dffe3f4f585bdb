package tagformat

import "strings"

// Record is one parsed block, keyed by opening tag. Repeated fields hold one
// entry per tag occurrence.
type Record map[string][]string

// First returns the first captured value for tag, or "".
func (r Record) First(tag string) string {
	if vals := r[tag]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// Parse extracts records from raw model output according to schema. It never
// fails: unparseable input yields an empty result, and malformed records are
// dropped by the typed wrappers rather than erroring the whole batch.
//
// The scan is a small state machine over normalized lines. A line that is
// exactly a recognized opening tag starts capture for that field; subsequent
// lines accumulate until the next tag line, at which point the previous
// field's text is committed if non-empty.
func Parse(raw string, schema Schema) []Record {
	fieldByTag := make(map[string]Field, len(schema.Fields))
	for _, f := range schema.Fields {
		fieldByTag[f.Tag] = f
	}

	var (
		records   []Record
		current   = Record{}
		capture   Field
		capturing bool
		buf       []string
	)

	commit := func() {
		if !capturing {
			return
		}
		if value := CleanFieldValue(strings.Join(buf, "\n")); value != "" {
			current[capture.Tag] = append(current[capture.Tag], value)
		}
		buf = nil
		capturing = false
	}

	flush := func() {
		if len(current) > 0 {
			records = append(records, current)
			current = Record{}
		}
	}

	complete := func() bool {
		for _, f := range schema.Fields {
			if len(current[f.Tag]) == 0 {
				return false
			}
		}
		return true
	}

	for _, line := range strings.Split(Normalize(raw, schema), "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == TagEnd {
			commit()
			flush()
			continue
		}

		if f, ok := fieldByTag[trimmed]; ok {
			commit()

			switch {
			case schema.FlushWhenComplete && complete():
				// The model ran several records together without [END];
				// commit the finished one instead of losing it.
				flush()
			case !f.Repeated && len(current[f.Tag]) > 0:
				// Duplicate single-value tag: start a fresh record rather
				// than clobbering captured text.
				flush()
			}

			capture = f
			capturing = true
			continue
		}

		if capturing {
			buf = append(buf, line)
		}
		// Anything before the first tag is preamble chatter; drop it.
	}

	commit()
	flush()

	return records
}
