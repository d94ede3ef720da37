package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coreh/linkshare/config"
	"github.com/coreh/linkshare/logging"
)

// writeFile creates root/rel with body, making parent folders as needed.
func writeFile(t *testing.T, root, rel, body string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
}

func scanTree(t *testing.T, root string) *ScanResult {
	t.Helper()
	res, err := Scan(context.Background(), root, testDefaults, logging.Discard())
	require.NoError(t, err)
	return res
}

var testDefaults = DefaultsFunc(func(theme string) config.ThemeDefaults {
	switch theme {
	case "paper":
		return config.ThemeDefaults{
			Color:               "rose",
			Dark:                config.DarkOff,
			Font:                "Lora",
			BackgroundColor:     "#fffaf0",
			BackgroundColorDark: "#1c1917",
		}
	default:
		return config.BuiltinDefaults
	}
})
