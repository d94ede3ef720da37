package config

// config/toml.go

import (
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// SectionFile is the name of the per-folder section config.
const SectionFile = "config.toml"

// ThemeFileName is the name of a theme's metadata file.
const ThemeFileName = "theme.toml"

type ItemType string

const (
	ItemLink  ItemType = "link"
	ItemText  ItemType = "text"
	ItemImage ItemType = "image"
	ItemFile  ItemType = "file"
	ItemVideo ItemType = "video"
	ItemAudio ItemType = "audio"
	ItemCode  ItemType = "code"
	ItemEmbed ItemType = "embed"
)

// ItemTypes is the closed set of item types a theme can provide templates for.
var ItemTypes = []ItemType{ItemLink, ItemText, ItemImage, ItemFile, ItemVideo, ItemAudio, ItemCode, ItemEmbed}

func (t ItemType) Valid() bool {
	for _, known := range ItemTypes {
		if t == known {
			return true
		}
	}
	return false
}

type SectionConfig struct {
	Title               string       `toml:"title"`
	Description         string       `toml:"description"`
	Password            string       `toml:"password"`
	Theme               string       `toml:"theme"`
	Dark                any          `toml:"dark"`
	Color               string       `toml:"color"`
	Background          string       `toml:"background"`
	BackgroundColor     string       `toml:"background_color"`
	BackgroundColorDark string       `toml:"background_color_dark"`
	Logo                string       `toml:"logo"`
	Font                string       `toml:"font"`
	AccentColor         string       `toml:"accent_color"`
	Locale              string       `toml:"locale"`
	Inherit             *bool        `toml:"inherit"`
	Hidden              bool         `toml:"hidden"`
	CDN                 CDNConfig    `toml:"cdn"`
	Items               []ItemConfig `toml:"items"`
}

// Inherits reports whether style flows down from the parent. Defaults to true.
func (c *SectionConfig) Inherits() bool {
	return c.Inherit == nil || *c.Inherit
}

// CDNConfig holds per-field overrides; empty values defer to the inherited config.
type CDNConfig struct {
	JS             string `toml:"js"`
	Fonts          string `toml:"fonts"`
	FontWeights    []int  `toml:"font_weights"`
	HighlightLight string `toml:"highlight_light"`
	HighlightDark  string `toml:"highlight_dark"`
}

type ItemConfig struct {
	Title       string   `toml:"title"`
	Type        ItemType `toml:"type"`
	URL         string   `toml:"url"`
	Description string   `toml:"description"`
	Icon        string   `toml:"icon"`
	Content     string   `toml:"content"`
	File        string   `toml:"file"`
	Filename    string   `toml:"filename"`
	Language    string   `toml:"language"`
	Height      int      `toml:"height"`
	Class       string   `toml:"class"`
}

// Kind returns the item type, defaulting to link.
func (i ItemConfig) Kind() ItemType {
	if i.Type == "" {
		return ItemLink
	}
	return ItemType(strings.ToLower(string(i.Type)))
}

// ParseSection decodes a config.toml document.
func ParseSection(data []byte) (*SectionConfig, error) {
	var cfg SectionConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decoding section config")
	}
	if cfg.Dark != nil {
		if _, ok := ParseDarkMode(cfg.Dark); !ok {
			return nil, errors.Errorf("invalid dark value %v: want true, false or \"auto\"", cfg.Dark)
		}
	}
	return &cfg, nil
}

type ThemeFile struct {
	Name        string            `toml:"name"`
	Description string            `toml:"description"`
	Author      string            `toml:"author"`
	Version     string            `toml:"version"`
	Defaults    ThemeDefaultsFile `toml:"defaults"`
	Variables   map[string]string `toml:"variables"`
	Body        BodyOptions       `toml:"body"`
	Assets      []ThemeAsset      `toml:"assets"`
}

type ThemeDefaultsFile struct {
	Color               string `toml:"color"`
	Dark                any    `toml:"dark"`
	Font                string `toml:"font"`
	BackgroundColor     string `toml:"background_color"`
	BackgroundColorDark string `toml:"background_color_dark"`
}

type BodyOptions struct {
	Class string `toml:"class"`
	Style string `toml:"style"`
}

// ThemeAsset is an extra stylesheet or script a theme wants on every page.
type ThemeAsset struct {
	Src      string `toml:"src"`
	Kind     string `toml:"kind"`     // "script" or "style"
	Position string `toml:"position"` // "head" or "body"
	Defer    bool   `toml:"defer"`
	Module   bool   `toml:"module"`
}

// IsScript reports whether the asset should be emitted as a script tag.
func (a ThemeAsset) IsScript() bool {
	if a.Kind != "" {
		return a.Kind == "script"
	}
	return strings.HasSuffix(strings.ToLower(a.Src), ".js")
}

// InBody reports whether the asset belongs at the end of the body.
func (a ThemeAsset) InBody() bool {
	return a.Position == "body"
}

// ThemeDefaults are a theme's built-in style values after coercion.
type ThemeDefaults struct {
	Color               string
	Dark                DarkMode
	Font                string
	BackgroundColor     string
	BackgroundColorDark string
}

// BuiltinDefaults apply when a theme is unknown or leaves a default unset.
var BuiltinDefaults = ThemeDefaults{
	Color:               "indigo",
	Dark:                DarkAuto,
	Font:                "Inter",
	BackgroundColor:     "#f8fafc",
	BackgroundColorDark: "#0f172a",
}

// Resolve coerces the file defaults, filling gaps from BuiltinDefaults.
func (d ThemeDefaultsFile) Resolve() ThemeDefaults {
	out := BuiltinDefaults
	if d.Color != "" {
		out.Color = d.Color
	}
	if mode, ok := ParseDarkMode(d.Dark); ok {
		out.Dark = mode
	}
	if d.Font != "" {
		out.Font = d.Font
	}
	if d.BackgroundColor != "" {
		out.BackgroundColor = d.BackgroundColor
	}
	if d.BackgroundColorDark != "" {
		out.BackgroundColorDark = d.BackgroundColorDark
	}
	return out
}

// ParseTheme decodes a theme.toml document.
func ParseTheme(data []byte) (*ThemeFile, error) {
	var tf ThemeFile
	if err := toml.Unmarshal(data, &tf); err != nil {
		return nil, errors.Wrap(err, "decoding theme config")
	}
	return &tf, nil
}
