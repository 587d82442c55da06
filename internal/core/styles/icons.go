package styles

// Glyphs used by the terminal timeline.
var (
	GlyphToday     = "│"
	GlyphTodayHead = "▼"
	GlyphEllipsis  = "…"
	GlyphScrollbar = "━"
	GlyphThumb     = "█"
)
