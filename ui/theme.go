package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// overlayTheme wraps the default theme with a custom font size and a
// translucent background. Opacity is applied to the background colors only,
// so transcript text stays readable over shared screen content when the
// desktop shell marks the window transparent.
type overlayTheme struct {
	baseFontSize float32
	alpha        uint8
	baseTheme    fyne.Theme
}

// newOverlayTheme creates the theme for the given font size, opacity
// (0..1) and variant.
func newOverlayTheme(baseFontSize int, opacity float64, isDark bool) fyne.Theme {
	var base fyne.Theme
	if isDark {
		base = theme.DarkTheme()
	} else {
		base = theme.LightTheme()
	}

	if opacity < 0.2 {
		opacity = 0.2
	}
	if opacity > 1 {
		opacity = 1
	}

	return &overlayTheme{
		baseFontSize: float32(baseFontSize),
		alpha:        uint8(opacity * 255),
		baseTheme:    base,
	}
}

func (t *overlayTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground, theme.ColorNameInputBackground, theme.ColorNameMenuBackground:
		return t.withAlpha(t.baseTheme.Color(name, variant))
	}
	return t.baseTheme.Color(name, variant)
}

// withAlpha replaces the color's alpha with the configured opacity.
func (t *overlayTheme) withAlpha(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: t.alpha,
	}
}

func (t *overlayTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.baseTheme.Font(style)
}

func (t *overlayTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.baseTheme.Icon(name)
}

func (t *overlayTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return t.baseFontSize
	case theme.SizeNameHeadingText:
		return t.baseFontSize * 1.5
	case theme.SizeNameSubHeadingText:
		return t.baseFontSize * 1.2
	case theme.SizeNameCaptionText:
		return t.baseFontSize * 0.85
	default:
		return t.baseTheme.Size(name)
	}
}
