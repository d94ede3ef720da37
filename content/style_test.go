package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreh/linkshare/config"
)

func boolPtr(b bool) *bool { return &b }

func rootStyle() ResolvedStyle {
	return ResolveStyle(&config.SectionConfig{
		Color:       "emerald",
		Dark:        true,
		Font:        "Inter Tight",
		Logo:        "logo.svg",
		Background:  "bg.jpg",
		AccentColor: "#ff0066",
		Locale:      "pt-BR",
		CDN:         config.CDNConfig{Fonts: "bunny"},
	}, nil, "/", testDefaults)
}

func TestResolveStyleRootStartsFromThemeDefaults(t *testing.T) {
	s := ResolveStyle(&config.SectionConfig{}, nil, "/", testDefaults)

	assert.Equal(t, DefaultTheme, s.Theme)
	assert.Equal(t, "indigo", s.Color)
	assert.Equal(t, config.DarkAuto, s.Dark)
	assert.Equal(t, "#6366f1", s.AccentColor)
	assert.Equal(t, DefaultLocale, s.Locale)
	assert.Equal(t, DefaultCDN(), s.CDN)
	assert.Empty(t, s.Logo)
}

func TestResolveStyleEmptyChildEqualsParent(t *testing.T) {
	parent := rootStyle()
	child := ResolveStyle(&config.SectionConfig{}, &parent, "/child", testDefaults)
	assert.Equal(t, parent, child)
}

func TestResolveStyleThemeChangeResets(t *testing.T) {
	parent := rootStyle()
	child := ResolveStyle(&config.SectionConfig{Theme: "paper"}, &parent, "/child", testDefaults)

	assert.Equal(t, "paper", child.Theme)
	assert.Equal(t, "rose", child.Color)
	assert.Equal(t, config.DarkOff, child.Dark)
	assert.Equal(t, "Lora", child.Font)
	assert.Equal(t, "#fffaf0", child.BackgroundColor)
	assert.Equal(t, "#1c1917", child.BackgroundColorDark)
	assert.Equal(t, "#f43f5e", child.AccentColor)
	assert.Equal(t, DefaultLocale, child.Locale)
	assert.Equal(t, DefaultCDN(), child.CDN)
	assert.Empty(t, child.Logo)
	assert.Empty(t, child.Background)
}

func TestResolveStyleSameThemeIsNotAChange(t *testing.T) {
	parent := rootStyle()
	child := ResolveStyle(&config.SectionConfig{Theme: DefaultTheme}, &parent, "/child", testDefaults)
	assert.Equal(t, parent, child)
}

func TestResolveStyleSingleOverrideKeepsRest(t *testing.T) {
	parent := rootStyle()
	child := ResolveStyle(&config.SectionConfig{Dark: "auto"}, &parent, "/child", testDefaults)

	assert.Equal(t, config.DarkAuto, child.Dark)
	assert.Equal(t, parent.Color, child.Color)
	assert.Equal(t, parent.AccentColor, child.AccentColor)
	assert.Equal(t, parent.Logo, child.Logo)
}

func TestResolveStyleInheritFalse(t *testing.T) {
	parent := rootStyle()
	child := ResolveStyle(&config.SectionConfig{Inherit: boolPtr(false)}, &parent, "/child", testDefaults)

	assert.Equal(t, DefaultTheme, child.Theme)
	assert.Equal(t, "indigo", child.Color)
	assert.Equal(t, config.DarkAuto, child.Dark)
	assert.Empty(t, child.Logo, "logo is not inherited without inherit")
	assert.Empty(t, child.Background, "background is not inherited without inherit")
	assert.Equal(t, DefaultLocale, child.Locale)

	withLogo := ResolveStyle(&config.SectionConfig{Inherit: boolPtr(false), Logo: "me.png"}, &parent, "/child", testDefaults)
	assert.Equal(t, "/child/me.png", withLogo.Logo)
}

func TestResolveStyleAccentFollowsColorOverride(t *testing.T) {
	parent := rootStyle()

	child := ResolveStyle(&config.SectionConfig{Color: "sky"}, &parent, "/c", testDefaults)
	assert.Equal(t, "#0ea5e9", child.AccentColor)

	explicit := ResolveStyle(&config.SectionConfig{Color: "sky", AccentColor: "#123456"}, &parent, "/c", testDefaults)
	assert.Equal(t, "#123456", explicit.AccentColor)

	unknown := ResolveStyle(&config.SectionConfig{Color: "chartreuse"}, &parent, "/c", testDefaults)
	assert.Equal(t, parent.AccentColor, unknown.AccentColor)
}

func TestResolveStyleCDNMergesPerField(t *testing.T) {
	parent := rootStyle()
	child := ResolveStyle(&config.SectionConfig{CDN: config.CDNConfig{
		HighlightDark: "monokai",
		FontWeights:   []int{300},
	}}, &parent, "/c", testDefaults)

	assert.Equal(t, "bunny", child.CDN.Fonts)
	assert.Equal(t, "jsdelivr", child.CDN.JS)
	assert.Equal(t, "github", child.CDN.HighlightLight)
	assert.Equal(t, "monokai", child.CDN.HighlightDark)
	assert.Equal(t, []int{300}, child.CDN.FontWeights)
}

func TestResolveStyleRefsResolveAgainstDeclaringSection(t *testing.T) {
	parent := ResolveStyle(&config.SectionConfig{Logo: "img/logo.png"}, nil, "/work", testDefaults)
	assert.Equal(t, "/work/img/logo.png", parent.Logo)

	child := ResolveStyle(&config.SectionConfig{}, &parent, "/work/projects", testDefaults)
	assert.Equal(t, "/work/img/logo.png", child.Logo)
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		section, ref, want string
	}{
		{"/", "logo.png", "/logo.png"},
		{"/work", "files/cv.pdf", "/work/files/cv.pdf"},
		{"/work", "../../etc/passwd", "/work/etc/passwd"},
		{"/work", "/shared/a.png", "/shared/a.png"},
		{"/work", "https://example.com/a.png", "https://example.com/a.png"},
		{"/work", "//cdn.example.com/a.png", "//cdn.example.com/a.png"},
		{"/work", "data:image/png;base64,AA", "data:image/png;base64,AA"},
		{"/work", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, JoinURL(tt.section, tt.ref), "JoinURL(%q, %q)", tt.section, tt.ref)
	}
}

func TestAccentShades(t *testing.T) {
	indigo, _ := Palette("indigo")
	assert.Equal(t, indigo, AccentShades("#6366f1"))
	assert.Equal(t, indigo, AccentShades("indigo"))
	assert.Equal(t, indigo, AccentShades("not-a-color"))

	custom := AccentShades("#808080")
	assert.Equal(t, "#808080", custom[5])
	assert.Equal(t, "#f2f2f2", custom[0])
	assert.Equal(t, "#202020", custom[10])

	short := AccentShades("#fff")
	assert.Equal(t, "#ffffff", short[5])
}
