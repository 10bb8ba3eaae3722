package assets

// LevelLore holds the lines shown when a level is cleared (index 0 unused).
var LevelLore = [6][]string{
	{},
	{ // Level 1
		"Level I: Whispering Courtyards",
		"The first fragment of the script comes loose from the stone.",
		"It hums like a bell at first light.",
	},
	{ // Level 2
		"Level II: Hall of Mirrors",
		"The glyphs show memories you had put away.",
		"Somebody is watching from the other side of the glass.",
	},
	{ // Level 3
		"Level III: Sunken Stacks",
		"Lines of script wind between the shelves like rivers.",
		"A watcher walks the aisles.",
	},
	{ // Level 4
		"Level IV: Vault of Echoes",
		"Read the signs aloud and they answer.",
		"Every footstep lands twice.",
	},
	{ // Level 5
		"Level V: Sanctum of the Last Script",
		"The sentinel has kept the final rune for longer than anyone remembers.",
		"Walk softly. The past looks back.",
	},
}

// FallbackLore is used past the last written level.
var FallbackLore = []string{"An old script, half-remembered."}

// Ending is shown once every level is cleared. The score line is appended by
// the caller.
var Ending = []string{
	"You have recovered the lost scripts.",
	"The past watches kindly on those who go looking for it.",
}

// Lore returns the lines for level n (1-based).
func Lore(n int) []string {
	if n <= 0 || n >= len(LevelLore) {
		return FallbackLore
	}
	return LevelLore[n]
}
