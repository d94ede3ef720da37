package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinifyCSS(t *testing.T) {
	out, err := MinifyCSS("body {\n  color: red;\n}\n")
	require.NoError(t, err)
	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, "body{")
	assert.Contains(t, out, "color:")
}

func TestMinifyCSSEmpty(t *testing.T) {
	out, err := MinifyCSS("   ")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMinifyJS(t *testing.T) {
	out, err := MinifyJS("if (true) {\n  document.title = 'x';\n}\n")
	require.NoError(t, err)
	assert.NotContains(t, out, "\n")
	assert.Contains(t, out, "document.title")
}

func TestMinifyJSSyntaxError(t *testing.T) {
	_, err := MinifyJS("function (")
	assert.Error(t, err)
}
