package render

import (
	"github.com/gdamore/tcell/v2"

	"runeguard/internal/guard"
)

// LevelTiles holds the glyphs and colours used to draw one level's terrain.
// Walls are emoji and carry their own colour; floors are a plain dot so the
// vision-cone tint on the background stays readable.
type LevelTiles struct {
	Wall    string
	Floor   string
	FloorFG tcell.Color
}

// TileThemes maps level number to its tile set. Index 0 is the fallback.
var TileThemes = [6]LevelTiles{
	{Wall: "🧱", Floor: ".", FloorFG: tcell.ColorDimGray},
	// Whispering Courtyards
	{Wall: "🧱", Floor: ".", FloorFG: tcell.ColorDarkKhaki},
	// Hall of Mirrors
	{Wall: "🪞", Floor: ".", FloorFG: tcell.ColorLightSteelBlue},
	// Sunken Stacks
	{Wall: "📚", Floor: ".", FloorFG: tcell.ColorCadetBlue},
	// Vault of Echoes
	{Wall: "🪨", Floor: ".", FloorFG: tcell.ColorSlateGray},
	// Sanctum of the Last Script
	{Wall: "🏛", Floor: ".", FloorFG: tcell.ColorGoldenrod},
}

// ThemeFor returns the tile set for level n, reusing the last one past the end.
func ThemeFor(n int) LevelTiles {
	switch {
	case n <= 0:
		return TileThemes[0]
	case n >= len(TileThemes):
		return TileThemes[len(TileThemes)-1]
	}
	return TileThemes[n]
}

// Background tints for cells inside a guard's vision cone.
var coneColors = map[guard.StateKind]tcell.Color{
	guard.Patrol: tcell.NewRGBColor(40, 40, 70),
	guard.Idle:   tcell.NewRGBColor(40, 40, 70),
	guard.Search: tcell.NewRGBColor(80, 70, 20),
	guard.Chase:  tcell.NewRGBColor(90, 25, 25),
	guard.Boss:   tcell.NewRGBColor(70, 20, 80),
}

// stateColors is the HUD colour for each guard state.
var stateColors = map[guard.StateKind]tcell.Color{
	guard.Patrol: tcell.ColorSilver,
	guard.Idle:   tcell.ColorGray,
	guard.Search: tcell.ColorYellow,
	guard.Chase:  tcell.ColorRed,
	guard.Boss:   tcell.ColorFuchsia,
}
