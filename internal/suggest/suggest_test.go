package suggest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/content-analyzer/constants"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestShortPlainTextGetsAllPrompts(t *testing.T) {
	got := Suggest("Just a short caption with nothing else")
	assert.Equal(t, []string{
		"💡 Consider adding more detailed information to increase engagement",
		"❓ Consider adding a question to prompt comments",
		"📢 Add a clear call-to-action (CTA) to guide your audience",
		"😊 Consider adding emojis to make content more visually appealing",
		"📝 Try using line breaks and shorter paragraphs for better readability",
	}, got)
}

func TestEngagingMediumTextGetsAcknowledgements(t *testing.T) {
	text := "What do you think? Please tell us 🎉\n" + words(60)
	got := Analyze(text)
	require.Len(t, got, 4)
	for _, s := range got {
		assert.True(t, s.Positive, s.Message)
	}
	assert.Equal(t, []string{
		"❓ Good! Questions encourage audience interaction",
		"📢 Strong CTA detected - great for driving engagement!",
		"😊 Emojis detected - great for visual interest!",
		"📝 Good formatting detected - easy to read",
	}, Suggest(text))
}

func TestLengthBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  string
	}{
		{"49 words", 49, "💡 Consider adding more detailed information to increase engagement"},
		{"50 words", 50, ""},
		{"500 words", 500, ""},
		{"501 words", 501, "✂️ Try breaking long content into shorter, digestible sections"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(words(tt.words))
			if tt.want == "" {
				assert.Len(t, got, 4)
				assert.NotEqual(t, constants.Length, got[0].Category)
				return
			}
			require.Len(t, got, 5)
			assert.Equal(t, constants.Length, got[0].Category)
			assert.Equal(t, tt.want, got[0].Message)
		})
	}
}

func TestCTAIsCaseInsensitiveSubstring(t *testing.T) {
	for _, text := range []string{"SHARE this", "Followers welcome", "subscribed", "Comment below"} {
		got := Analyze(text)
		assert.True(t, got[2].Positive, text)
	}
}

func TestFormattingByPeriods(t *testing.T) {
	assert.False(t, Analyze("a. b. c.")[4].Positive)
	assert.True(t, Analyze("a. b. c. d.")[4].Positive)
	assert.True(t, Analyze("line one\nline two")[4].Positive)
}

func TestEmptyText(t *testing.T) {
	got := Suggest("")
	assert.Len(t, got, 5)
}

func TestSuggestIsPure(t *testing.T) {
	text := "Follow us! ❤️ Any questions?"
	assert.Equal(t, Suggest(text), Suggest(text))
}
