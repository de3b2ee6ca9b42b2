package titlematch

import "strings"

// SpecialCase is a hand-curated patch for one known problem title.
// Detect receives the normalized canonical title; when it returns true every
// entry of Spellings is added to the variation table for that link.
//
// Possessive cases patch apostrophe spellings and are applied ahead of the
// generic "s Game" apostrophe rule. All other cases are applied after it.
type SpecialCase struct {
	Name       string
	Detect     func(normalized string) bool
	Spellings  []string
	Possessive bool
}

// DefaultSpecialCases are the curated title patches. They are intentionally
// literal and do not generalize to other titles.
//
//nolint:gochecknoglobals // Static lookup table of curated titles
var DefaultSpecialCases = []SpecialCase{
	{
		Name:       "enders-game",
		Detect:     containsAll("ender", "game"),
		Possessive: true,
		Spellings: []string{
			"Ender's Game",
			"Ender’s Game",
			"Enders Game",
		},
	},
	{
		Name:   "lion-witch-wardrobe",
		Detect: containsAll("lion", "witch", "wardrobe"),
		Spellings: []string{
			"The Lion, the Witch and the Wardrobe",
			"the lion, the witch and the wardrobe",
			"Lion, the Witch and the Wardrobe",
			"The Lion the Witch and the Wardrobe",
		},
	},
}

// containsAll returns a detector that fires when every fragment occurs in the title.
func containsAll(fragments ...string) func(string) bool {
	return func(normalized string) bool {
		for _, f := range fragments {
			if !strings.Contains(normalized, f) {
				return false
			}
		}
		return true
	}
}
