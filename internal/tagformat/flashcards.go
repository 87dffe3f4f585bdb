package tagformat

import "strings"

// Flashcard is a front/back study card recovered from model output.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// ParseFlashcards extracts flashcard records from raw model output. Records
// with an empty front or back after trimming are dropped.
func ParseFlashcards(raw string) []Flashcard {
	var out []Flashcard

	for _, rec := range Parse(raw, FlashcardSchema) {
		card := Flashcard{
			Front: strings.TrimSpace(rec.First(TagFront)),
			Back:  strings.TrimSpace(rec.First(TagBack)),
		}

		if card.Front == "" || card.Back == "" {
			continue
		}

		out = append(out, card)
	}

	return out
}

// LimitFlashcards caps a batch at max cards. A non-positive max leaves the
// batch untouched.
func LimitFlashcards(cards []Flashcard, max int) []Flashcard {
	if max <= 0 || len(cards) <= max {
		return cards
	}
	return cards[:max]
}
