// Package quickprompt holds the fixed catalog of labeled tutor prompts shown
// while the user types, and the keyword matching that promotes relevant
// entries to the front.
package quickprompt

import (
	"strings"

	"github.com/studysnap/aicore/internal/domain"
)

// MaxPrompts caps how many quick prompts are returned.
const MaxPrompts = 12

// catalog is the full prompt set in default display order.
var catalog = []domain.QuickPrompt{
	{ID: "explain", Label: "Explain this", Icon: "lightbulb",
		Template: "Explain this in a way that makes it click: ", Format: domain.FormatStandard},
	{ID: "simplify", Label: "Explain simply", Icon: "sparkles",
		Template: "Explain this as simply as you can: ", Format: domain.FormatSimplify},
	{ID: "steps", Label: "Step by step", Icon: "list.number",
		Template: "Walk me through this step by step: ", Format: domain.FormatSteps},
	{ID: "example", Label: "Show an example", Icon: "doc.text",
		Template: "Show me a worked example of: ", Format: domain.FormatExample},
	{ID: "compare", Label: "Compare", Icon: "arrow.left.arrow.right",
		Template: "Compare and contrast: ", Format: domain.FormatComparison},
	{ID: "mnemonic", Label: "Help me remember", Icon: "brain",
		Template: "Give me a way to remember: ", Format: domain.FormatMnemonic},
	{ID: "keypoints", Label: "Key points", Icon: "list.bullet",
		Template: "What are the key points of: ", Format: domain.FormatKeyPoints},
	{ID: "analogy", Label: "Give me an analogy", Icon: "link",
		Template: "Explain with an analogy: ", Format: domain.FormatAnalogy},
	{ID: "mistakes", Label: "Common mistakes", Icon: "exclamationmark.triangle",
		Template: "What mistakes do people make with: ", Format: domain.FormatMistakes},
	{ID: "solve", Label: "Solve this problem", Icon: "function",
		Template: "Solve this step by step: ", Format: domain.FormatMathSolver},
	{ID: "quiz", Label: "Quiz me", Icon: "questionmark.circle",
		Template: "Ask me a practice question about: ", Format: domain.FormatStandard},
	{ID: "recap", Label: "Quick recap", Icon: "clock.arrow.circlepath",
		Template: "Give me a quick recap of: ", Format: domain.FormatKeyPoints},
}

// keywordPromotions maps input keywords to the catalog entries they promote,
// checked in order.
var keywordPromotions = []struct {
	keywords []string
	ids      []string
}{
	{keywords: []string{"why", "how"}, ids: []string{"explain", "steps"}},
	{keywords: []string{"remember", "memorize", "memorise", "forget"}, ids: []string{"mnemonic"}},
	{keywords: []string{"compare", "vs", "versus", "difference"}, ids: []string{"compare"}},
	{keywords: []string{"mistake", "error", "wrong"}, ids: []string{"mistakes"}},
	{keywords: []string{"solve", "calculate", "equation"}, ids: []string{"solve"}},
	{keywords: []string{"example"}, ids: []string{"example"}},
	{keywords: []string{"simple", "simply", "confused", "eli5"}, ids: []string{"simplify"}},
	{keywords: []string{"summary", "summarize", "summarise", "key point"}, ids: []string{"keypoints", "recap"}},
	{keywords: []string{"analogy", "like what"}, ids: []string{"analogy"}},
	{keywords: []string{"step"}, ids: []string{"steps"}},
	{keywords: []string{"quiz", "test me", "practice"}, ids: []string{"quiz"}},
}

// Select returns up to MaxPrompts quick prompts for the given partial input.
// With empty input the catalog comes back in default order; otherwise entries
// matching keywords in the input (and, weaker, in recent history) are
// promoted to the front, with the rest following in catalog order. Pure
// function, no I/O.
func Select(partialInput string, recentHistory []string) []domain.QuickPrompt {
	input := strings.ToLower(strings.TrimSpace(partialInput))
	if input == "" {
		return truncate(catalog)
	}

	promoted := matchIDs(input)

	// History promotions rank after input promotions, newest first.
	for i := len(recentHistory) - 1; i >= 0; i-- {
		promoted = append(promoted, matchIDs(strings.ToLower(recentHistory[i]))...)
	}

	byID := make(map[string]domain.QuickPrompt, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	seen := make(map[string]bool, len(catalog))
	out := make([]domain.QuickPrompt, 0, len(catalog))

	for _, id := range promoted {
		if !seen[id] {
			seen[id] = true
			out = append(out, byID[id])
		}
	}
	for _, p := range catalog {
		if !seen[p.ID] {
			seen[p.ID] = true
			out = append(out, p)
		}
	}

	return truncate(out)
}

func matchIDs(text string) []string {
	var ids []string
	for _, rule := range keywordPromotions {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				ids = append(ids, rule.ids...)
				break
			}
		}
	}
	return ids
}

func truncate(prompts []domain.QuickPrompt) []domain.QuickPrompt {
	if len(prompts) <= MaxPrompts {
		out := make([]domain.QuickPrompt, len(prompts))
		copy(out, prompts)
		return out
	}
	out := make([]domain.QuickPrompt, MaxPrompts)
	copy(out, prompts[:MaxPrompts])
	return out
}
