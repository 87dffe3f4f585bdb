package domain

import (
	"fmt"
	"strings"
)

// Prompt-size cap so oversized pasted notes cannot blow out the request body.
const maxPromptContentRunes = 12000

const (
	summarySystem = "You are a study assistant who writes clear, well-structured revision summaries. " +
		"Use short paragraphs and bullet points. Use $...$ for inline math and $$...$$ for display math."

	questionsSystem = "You are an educator who writes multiple-choice quiz questions. " +
		"Respond ONLY in the tagged format you are given; never add commentary outside the tags."

	flashcardsSystem = "You are an educator who writes atomic, unambiguous flashcards for active recall. " +
		"Respond ONLY in the tagged format you are given; never add commentary outside the tags."

	topicGuideSystem = "You are a study assistant who writes concise topic guides: what the topic is, " +
		"why it matters, the core ideas, and common pitfalls. Use $...$ for inline math."

	tutorSystemBase = "You are a patient, encouraging tutor. Answer the student's question directly, " +
		"keep explanations tight, and prefer concrete examples. Use $...$ for inline math and $$...$$ for display math."

	visionSystem = "You are a study assistant analyzing an image of study material - notes, a textbook page, " +
		"a diagram, or a problem. Describe what matters and answer the student's question about it."
)

const questionTagTemplate = `Format every question exactly like this, with each tag on its own line:
[QUESTION]
the question text
[ANSWER]
the correct answer
[OPTION]
the correct answer
[OPTION]
a plausible distractor
[OPTION]
a plausible distractor
[OPTION]
a plausible distractor
[EXPLANATION]
one or two sentences explaining the answer
[END]

Every question must have exactly 4 options, one of which matches the answer text exactly.`

const flashcardTagTemplate = `Format every card exactly like this, with each tag on its own line:
[FRONT]
the prompt side
[BACK]
the answer side
[END]

Keep fronts to a single question or cue. Keep backs short and factual.`

func buildSummaryPrompt(content string) string {
	return "Summarize the following study material for exam revision. Cover every major idea; " +
		"do not invent material that is not present.\n\nStudy material:\n" +
		sanitizeForPrompt(content, maxPromptContentRunes)
}

func buildQuestionsPrompt(content string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create exactly %d multiple-choice questions from the study material below.\n\n", count)
	b.WriteString(questionTagTemplate)
	b.WriteString("\n\nStudy material:\n")
	b.WriteString(sanitizeForPrompt(content, maxPromptContentRunes))
	return b.String()
}

func buildFlashcardsPrompt(content string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create %d flashcards from the study material below.\n\n", count)
	b.WriteString(flashcardTagTemplate)
	b.WriteString("\n\nStudy material:\n")
	b.WriteString(sanitizeForPrompt(content, maxPromptContentRunes))
	return b.String()
}

func buildTopicGuidePrompt(topic string) string {
	return "Write a study guide for the topic: " + sanitizeForPrompt(topic, 200)
}

func buildTopicQuestionsPrompt(topic string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create exactly %d multiple-choice questions testing understanding of the topic: %s\n\n",
		count, sanitizeForPrompt(topic, 200))
	b.WriteString(questionTagTemplate)
	return b.String()
}

func buildTopicFlashcardsPrompt(topic string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create %d flashcards covering the essentials of the topic: %s\n\n",
		count, sanitizeForPrompt(topic, 200))
	b.WriteString(flashcardTagTemplate)
	return b.String()
}

func buildConvertPrompt(text string) string {
	return "Convert the following notes into flashcards. Only make cards for information worth memorizing.\n\n" +
		flashcardTagTemplate + "\n\nNotes:\n" + sanitizeForPrompt(text, maxPromptContentRunes)
}

func buildVisionPrompt(prompt string) string {
	if strings.TrimSpace(prompt) == "" {
		return "Explain the study material shown in this image."
	}
	return sanitizeForPrompt(prompt, 2000)
}

// tutorSystemPrompt appends the output-tag template for the selected response
// format to the base tutor instructions.
func tutorSystemPrompt(format TutorResponseFormat) string {
	addendum := formatAddendum(format)
	if addendum == "" {
		return tutorSystemBase
	}
	return tutorSystemBase + "\n\n" + addendum
}

func formatAddendum(format TutorResponseFormat) string {
	switch format {
	case FormatComparison:
		return "Structure your reply as a comparison. Start it with [COMPARISON] on its own line, " +
			"then contrast the items point by point, ending with when to use each."
	case FormatMnemonic:
		return "Help the student memorize this. Start your reply with [MNEMONIC] on its own line, " +
			"give a memorable mnemonic or memory hook, then briefly explain why it works."
	case FormatSteps:
		return "Explain as a numbered sequence. Put [STEP] on its own line before each step."
	case FormatExample:
		return "Teach through a worked example. Start your reply with [EXAMPLE] on its own line, " +
			"then walk through one concrete example end to end."
	case FormatSimplify:
		return "Explain this as simply as possible. Start your reply with [SIMPLE] on its own line " +
			"and avoid jargon entirely; assume no prior knowledge."
	case FormatKeyPoints:
		return "Reply with the essentials only. Start with [KEYPOINTS] on its own line, " +
			"then give a short bullet list of the points that matter most."
	case FormatAnalogy:
		return "Explain through an analogy. Start your reply with [ANALOGY] on its own line, " +
			"map each part of the analogy to the real concept, and note where the analogy breaks down."
	case FormatMistakes:
		return "Focus on what goes wrong. Put [MISTAKE] on its own line before each common mistake, " +
			"then explain how to avoid it."
	case FormatMathSolver:
		return "Solve the problem step by step. Put [MATHSTEP] on its own line before each step, " +
			"and finish with [SOLUTION] on its own line followed by the final answer."
	default:
		return ""
	}
}

// sanitizeForPrompt collapses whitespace and truncates input destined for a
// prompt, so a single pasted document cannot dominate the context window.
func sanitizeForPrompt(input string, limit int) string {
	collapsed := strings.Join(strings.Fields(strings.TrimSpace(input)), " ")
	if limit <= 0 {
		return collapsed
	}

	runes := []rune(collapsed)
	if len(runes) <= limit {
		return collapsed
	}
	if limit > 3 {
		return string(runes[:limit-3]) + "..."
	}
	return string(runes[:limit])
}
