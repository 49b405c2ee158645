package constants

// Category identifies the heuristic that produced a suggestion.
type Category string

const (
	Length     Category = "Length"
	Question   Category = "Question"
	CTA        Category = "CTA"
	Emoji      Category = "Emoji"
	Formatting Category = "Formatting"
)

var categoryGlyphs = map[Category]string{
	Question:   "❓",
	CTA:        "📢",
	Emoji:      "😊",
	Formatting: "📝",
}

// Glyph returns the leading glyph for a category. Length has two glyphs
// depending on direction, so callers pick those explicitly.
func Glyph(c Category) string {
	return categoryGlyphs[c]
}
