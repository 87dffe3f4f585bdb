package tagformat

import (
	"fmt"
	"math/rand"
	"strings"
)

// OptionCount is the fixed number of options every question carries after
// post-processing.
const OptionCount = 4

// Question is one multiple-choice item recovered from model output.
type Question struct {
	Question    string   `json:"question"`
	Answer      string   `json:"answer"`
	Options     []string `json:"options"`
	Explanation string   `json:"explanation,omitempty"`
}

// ParseQuestions extracts question records from raw model output. Records
// missing the question or answer text are dropped; the remainder are repaired
// to exactly OptionCount options with the answer always present.
func ParseQuestions(raw string) []Question {
	var out []Question

	for _, rec := range Parse(raw, QuestionSchema) {
		q := Question{
			Question:    rec.First(TagQuestion),
			Answer:      rec.First(TagAnswer),
			Options:     rec[TagOption],
			Explanation: rec.First(TagExplanation),
		}

		if q.Question == "" || q.Answer == "" {
			continue
		}

		out = append(out, repairOptions(q))
	}

	return out
}

// repairOptions enforces the option-set invariants: the answer is always a
// member by value equality after whitespace normalization, the set has
// exactly OptionCount entries, and the order is shuffled so the answer does
// not sit in a predictable position.
func repairOptions(q Question) Question {
	options := make([]string, 0, OptionCount)
	options = append(options, q.Options...)

	if !containsNormalized(options, q.Answer) {
		// Add the answer as an extra option; never overwrite one of the
		// model's real distractors.
		options = append(options, q.Answer)
	}

	if len(options) > OptionCount {
		options = truncateKeepingAnswer(options, q.Answer)
	}

	for len(options) < OptionCount {
		options = append(options, fmt.Sprintf("Option %d", len(options)+1))
	}

	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	q.Options = options
	return q
}

// truncateKeepingAnswer trims the option set down to OptionCount without ever
// dropping the answer itself.
func truncateKeepingAnswer(options []string, answer string) []string {
	kept := make([]string, 0, OptionCount)

	for _, opt := range options {
		if equalNormalized(opt, answer) {
			continue
		}
		if len(kept) < OptionCount-1 {
			kept = append(kept, opt)
		}
	}

	return append(kept, answer)
}

func containsNormalized(options []string, answer string) bool {
	for _, opt := range options {
		if equalNormalized(opt, answer) {
			return true
		}
	}
	return false
}

func equalNormalized(a, b string) bool {
	return normalizeSpace(a) == normalizeSpace(b)
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
