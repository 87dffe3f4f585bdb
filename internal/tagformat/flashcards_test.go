package tagformat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFlashcards_DropsEmptySides(t *testing.T) {
	raw := `[FRONT]
Term
[BACK]
Definition
[END]
[FRONT]
Orphan front
[BACK]
[END]`

	cards := ParseFlashcards(raw)
	require.Len(t, cards, 1)
	require.Equal(t, "Term", cards[0].Front)
	require.Equal(t, "Definition", cards[0].Back)
}

func TestLimitFlashcards(t *testing.T) {
	cards := []Flashcard{
		{Front: "A", Back: "1"},
		{Front: "B", Back: "2"},
		{Front: "C", Back: "3"},
	}

	require.Len(t, LimitFlashcards(cards, 2), 2)
	require.Len(t, LimitFlashcards(cards, 5), 3)
	require.Len(t, LimitFlashcards(cards, 0), 3)
	require.Len(t, LimitFlashcards(cards, -1), 3)
}
