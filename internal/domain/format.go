package domain

import "fmt"

// TutorResponseFormat selects which output-tag template is injected into the
// tutor system prompt. The closed set matches the quick-prompt catalog.
type TutorResponseFormat string

const (
	FormatStandard   TutorResponseFormat = "standard"
	FormatComparison TutorResponseFormat = "comparison"
	FormatMnemonic   TutorResponseFormat = "mnemonic"
	FormatSteps      TutorResponseFormat = "steps"
	FormatExample    TutorResponseFormat = "example"
	FormatSimplify   TutorResponseFormat = "simplify"
	FormatKeyPoints  TutorResponseFormat = "keyPoints"
	FormatAnalogy    TutorResponseFormat = "analogy"
	FormatMistakes   TutorResponseFormat = "mistakes"
	FormatMathSolver TutorResponseFormat = "mathSolver"
)

// ParseTutorResponseFormat validates a wire value against the closed set.
// An empty value maps to FormatStandard.
func ParseTutorResponseFormat(value string) (TutorResponseFormat, error) {
	if value == "" {
		return FormatStandard, nil
	}

	switch f := TutorResponseFormat(value); f {
	case FormatStandard, FormatComparison, FormatMnemonic, FormatSteps,
		FormatExample, FormatSimplify, FormatKeyPoints, FormatAnalogy,
		FormatMistakes, FormatMathSolver:
		return f, nil
	default:
		return FormatStandard, fmt.Errorf("unknown response format: %q", value)
	}
}
