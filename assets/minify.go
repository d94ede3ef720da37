// Package assets minifies the stylesheets and inline scripts emitted into pages.
package assets

import (
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/pkg/errors"
)

var engines = []api.Engine{
	{Name: api.EngineChrome, Version: "100"},
	{Name: api.EngineFirefox, Version: "100"},
	{Name: api.EngineSafari, Version: "15"},
	{Name: api.EngineEdge, Version: "100"},
}

// MinifyCSS returns source with whitespace and redundant syntax removed.
func MinifyCSS(source string) (string, error) {
	return transform(source, api.LoaderCSS)
}

// MinifyJS minifies a standalone script.
func MinifyJS(source string) (string, error) {
	return transform(source, api.LoaderJS)
}

func transform(source string, loader api.Loader) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}

	result := api.Transform(source, api.TransformOptions{
		Loader:            loader,
		MinifyWhitespace:  true,
		MinifyIdentifiers: loader == api.LoaderJS,
		MinifySyntax:      true,
		Engines:           engines,
	})

	if len(result.Errors) > 0 {
		msg := result.Errors[0]
		if msg.Location != nil {
			return "", errors.Errorf("%d:%d: %s", msg.Location.Line, msg.Location.Column, msg.Text)
		}
		return "", errors.New(msg.Text)
	}

	return strings.TrimSpace(string(result.Code)), nil
}
