// Package suggest produces engagement suggestions for extracted post text.
package suggest

import (
	"strings"

	"github.com/joseph-ayodele/content-analyzer/constants"
)

const (
	minWords = 50
	maxWords = 500
)

var (
	ctaWords    = []string{"please", "share", "comment", "follow", "subscribe"}
	emojiGlyphs = []string{"😀", "❤️", "👍", "🎉", "✨"}
)

// Suggestion is one heuristic's verdict on the text.
type Suggestion struct {
	Category constants.Category
	Positive bool
	Message  string
}

// Suggest returns 3 to 5 messages in fixed rule order. It is pure.
func Suggest(text string) []string {
	all := Analyze(text)
	out := make([]string, len(all))
	for i, s := range all {
		out[i] = s.Message
	}
	return out
}

// Analyze is Suggest with each message's category and polarity attached.
func Analyze(text string) []Suggestion {
	out := make([]Suggestion, 0, 5)

	words := len(strings.Fields(text))
	switch {
	case words < minWords:
		out = append(out, Suggestion{constants.Length, false,
			"💡 Consider adding more detailed information to increase engagement"})
	case words > maxWords:
		out = append(out, Suggestion{constants.Length, false,
			"✂️ Try breaking long content into shorter, digestible sections"})
	}

	out = append(out, rule(constants.Question, strings.Contains(text, "?"),
		"Good! Questions encourage audience interaction",
		"Consider adding a question to prompt comments"))

	out = append(out, rule(constants.CTA, containsAny(strings.ToLower(text), ctaWords),
		"Strong CTA detected - great for driving engagement!",
		"Add a clear call-to-action (CTA) to guide your audience"))

	out = append(out, rule(constants.Emoji, containsAny(text, emojiGlyphs),
		"Emojis detected - great for visual interest!",
		"Consider adding emojis to make content more visually appealing"))

	formatted := strings.Contains(text, "\n") || strings.Count(text, ".") > 3
	out = append(out, rule(constants.Formatting, formatted,
		"Good formatting detected - easy to read",
		"Try using line breaks and shorter paragraphs for better readability"))

	return out
}

func rule(c constants.Category, ok bool, positive, prompt string) Suggestion {
	msg := prompt
	if ok {
		msg = positive
	}
	return Suggestion{Category: c, Positive: ok, Message: constants.Glyph(c) + " " + msg}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
