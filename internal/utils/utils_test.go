package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	id, ok := ParseID(" 42 ")
	assert.True(t, ok)
	assert.EqualValues(t, 42, id)

	for _, bad := range []string{"", "0", "-3", "abc", "1.5"} {
		_, ok := ParseID(bad)
		assert.False(t, ok, bad)
	}
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	out := string(RenderMarkdown("**hope** <script>alert(1)</script>"))
	assert.Contains(t, out, "<strong>hope</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestRenderMarkdownEnhancesLinksAndImages(t *testing.T) {
	out := string(RenderMarkdown("[site](https://example.com) ![pic](https://example.com/a.png)"))
	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, `loading="lazy"`)
	assert.Contains(t, out, ImageFallbackPath)
	assert.False(t, strings.Contains(out, "<body>"))
}

func TestEnhanceHTMLContentEmpty(t *testing.T) {
	assert.Equal(t, "", string(EnhanceHTMLContent("")))
}

func TestAvatarChoices(t *testing.T) {
	assert.True(t, IsAvatarChoice("default-avatar.png"))
	assert.False(t, IsAvatarChoice("../../etc/passwd"))
	assert.Equal(t, 2, GetDaysSinceJoined(time.Now().Add(-49*time.Hour)))
}
