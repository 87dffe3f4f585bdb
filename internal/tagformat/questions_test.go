package tagformat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseQuestions_DropsRecordsMissingQuestionOrAnswer(t *testing.T) {
	raw := `[QUESTION]
Complete question
[ANSWER]
Right
[OPTION]
Wrong
[END]
[QUESTION]
No answer here
[OPTION]
Something
[END]`

	questions := ParseQuestions(raw)
	require.Len(t, questions, 1)
	require.Equal(t, "Complete question", questions[0].Question)
}

func TestParseQuestions_AlwaysFourOptionsWithAnswer(t *testing.T) {
	raw := `[QUESTION]
Q
[ANSWER]
Right
[OPTION]
Wrong one
[END]`

	questions := ParseQuestions(raw)
	require.Len(t, questions, 1)

	q := questions[0]
	require.Len(t, q.Options, OptionCount)
	require.Contains(t, q.Options, "Right")
	require.Contains(t, q.Options, "Wrong one")
}

func TestParseQuestions_AnswerAddedWhenMissingFromOptions(t *testing.T) {
	raw := `[QUESTION]
Q
[ANSWER]
Right
[OPTION]
A
[OPTION]
B
[OPTION]
C
[OPTION]
D
[END]`

	questions := ParseQuestions(raw)
	require.Len(t, questions, 1)

	q := questions[0]
	require.Len(t, q.Options, OptionCount)
	require.Contains(t, q.Options, "Right")
}

func TestParseQuestions_NoOptionsAtAllGetsPadding(t *testing.T) {
	raw := `[QUESTION]
Q
[ANSWER]
Right
[END]`

	questions := ParseQuestions(raw)
	require.Len(t, questions, 1)

	q := questions[0]
	require.Len(t, q.Options, OptionCount)
	require.Contains(t, q.Options, "Right")

	padded := 0
	for _, opt := range q.Options {
		if opt != "Right" {
			require.Regexp(t, `^Option \d$`, opt)
			padded++
		}
	}
	require.Equal(t, OptionCount-1, padded)
}

func TestRepairOptions_AnswerMembershipIgnoresWhitespace(t *testing.T) {
	q := repairOptions(Question{
		Question: "Q",
		Answer:   "The  Right   Answer",
		Options:  []string{"The Right Answer", "B", "C", "D"},
	})

	// The normalized-equal option counts as the answer, so nothing is added.
	require.Len(t, q.Options, OptionCount)
	require.ElementsMatch(t, []string{"The Right Answer", "B", "C", "D"}, q.Options)
}

func TestRepairOptions_TruncationKeepsAnswer(t *testing.T) {
	q := repairOptions(Question{
		Question: "Q",
		Answer:   "Right",
		Options:  []string{"A", "B", "C", "D", "E", "Right"},
	})

	require.Len(t, q.Options, OptionCount)
	require.Contains(t, q.Options, "Right")
}

func TestRepairOptions_ExactSetSurvivesUntouched(t *testing.T) {
	q := repairOptions(Question{
		Question: "Q",
		Answer:   "Right",
		Options:  []string{"Right", "B", "C", "D"},
	})

	require.ElementsMatch(t, []string{"Right", "B", "C", "D"}, q.Options)
}
