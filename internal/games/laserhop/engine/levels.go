package engine

// Level is a hand-authored campaign layout.
type Level struct {
	ID    int
	Name  string
	Board Board
}

// builtinLevels is the stock campaign. Cell characters:
// '.' blue, 'G' green, '+' gray, 'X' red.
var builtinLevels = []Level{
	{
		ID:   1,
		Name: "Corridors",
		Board: MustParseBoard(
			"......",
			".GG+G.",
			".+XXG.",
			".GXX+.",
			".+XXG.",
			".GXX+.",
			".+XXG.",
			".G+GG.",
			"......",
		),
	},
	{
		ID:   2,
		Name: "Fortress",
		Board: MustParseBoard(
			"......",
			".+XX+.",
			".XXXX.",
			".XGGX.",
			".GGGX.",
			".XXXG.",
			".+XX+.",
			".G++G.",
			"......",
		),
	},
	{
		ID:   3,
		Name: "Gauntlet",
		Board: MustParseBoard(
			"X....X",
			".+XX+.",
			"XXXXX.",
			".XGGX.",
			".GGGX.",
			"XXXXG.",
			".+XX+.",
			".GX+G.",
			"X....X",
		),
	},
}

// BuiltinLevels returns a copy of the stock campaign.
func BuiltinLevels() []Level {
	out := make([]Level, len(builtinLevels))
	copy(out, builtinLevels)
	return out
}
