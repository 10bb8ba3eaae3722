// Package assets holds static game content: glyphs and level lore.
package assets

// Glyphs for things drawn on top of tiles.
const (
	GlyphTarget    = "🧙"
	GlyphRune      = "📜"
	GlyphPatrol    = "💂"
	GlyphIdle      = "🧍"
	GlyphChase     = "👹"
	GlyphSearch    = "🔦"
	GlyphBoss      = "🗿"
	GlyphBossAlert = "👺"
	GlyphCaught    = "💀"
)
