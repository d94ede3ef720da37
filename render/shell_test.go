package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreh/linkshare/config"
	"github.com/coreh/linkshare/content"
)

func TestBackgroundRules(t *testing.T) {
	style := content.ResolvedStyle{
		Dark:                config.DarkAuto,
		Background:          "/bg.jpg",
		BackgroundColor:     "#f8fafc",
		BackgroundColorDark: "#0f172a",
	}

	css := backgroundRules(style)
	assert.Contains(t, css, `background-color:#f8fafc;background-image:url("/bg.jpg")`)
	assert.Contains(t, css, "@media (prefers-color-scheme: dark){body{background-color:#0f172a}}")

	style.Background = ""
	assert.Equal(t, "body{background-color:#f8fafc}@media (prefers-color-scheme: dark){body{background-color:#0f172a}}", backgroundRules(style))

	style.Dark = config.DarkOn
	assert.Equal(t, "body{background-color:#0f172a}", backgroundRules(style))

	style.Dark = config.DarkOff
	style.Background = "/bg.jpg"
	assert.NotContains(t, backgroundRules(style), "@media")
}
