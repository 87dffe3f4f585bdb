// Package tagformat parses the delimited tag grammar that generation prompts
// ask the model to emit. The grammar is deliberately loose - tags are plain
// bracketed tokens on their own line - so the parser is tolerant: it repairs
// inline tags, missing terminators, and malformed records instead of failing.
package tagformat

// Structural tags. Matching is exact and case-sensitive, and a tag only
// counts when it stands on its own line after normalization.
const (
	TagQuestion    = "[QUESTION]"
	TagAnswer      = "[ANSWER]"
	TagOption      = "[OPTION]"
	TagExplanation = "[EXPLANATION]"
	TagFront       = "[FRONT]"
	TagBack        = "[BACK]"

	// TagEnd terminates a record. Blocks without it are flushed at
	// end-of-input, since models routinely omit the trailing terminator.
	TagEnd = "[END]"
)

// DisplayTags group tutor chat output for rendering. They are an open set and
// carry no structural meaning for parsing.
var DisplayTags = []string{
	"[MATHSTEP]",
	"[SOLUTION]",
	"[TIP]",
	"[SKILL]",
	"[KEYPOINTS]",
	"[COMPARISON]",
	"[MNEMONIC]",
	"[STEP]",
	"[EXAMPLE]",
	"[ANALOGY]",
	"[MISTAKE]",
	"[SIMPLE]",
}

// Field is one recognized opening tag within a schema.
type Field struct {
	Tag string

	// Repeated fields collect one value per tag occurrence ([OPTION]);
	// non-repeated fields hold a single value per record.
	Repeated bool
}

// Schema describes the record grammar for one tagged block type.
type Schema struct {
	Fields []Field

	// FlushWhenComplete commits a record as soon as every field holds text,
	// tolerating models that run several records together without [END].
	FlushWhenComplete bool
}

// QuestionSchema matches multiple-choice question blocks.
var QuestionSchema = Schema{
	Fields: []Field{
		{Tag: TagQuestion},
		{Tag: TagAnswer},
		{Tag: TagOption, Repeated: true},
		{Tag: TagExplanation},
	},
}

// FlashcardSchema matches front/back flashcard blocks.
var FlashcardSchema = Schema{
	Fields: []Field{
		{Tag: TagFront},
		{Tag: TagBack},
	},
	FlushWhenComplete: true,
}
