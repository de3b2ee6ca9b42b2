package titlematch

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "Atomic Habits", "atomic habits"},
		{"trim", "  Dune  ", "dune"},
		{"curly apostrophe", "Ender’s Game", "ender's game"},
		{"left curly quote", "Ender‘s Game", "ender's game"},
		{"backtick", "Ender`s Game", "ender's game"},
		{"em dash", "A—B", "a-b"},
		{"en dash", "1984–2001", "1984-2001"},
		{"collapse whitespace", "The   Lord\tof \n the Rings", "the lord of the rings"},
		{"comma spacing tight", "Lion,the Witch", "lion, the witch"},
		{"comma spacing wide", "Lion,    the Witch", "lion, the witch"},
		{"keeps punctuation", "Hello, World!", "hello, world!"},
		{"empty", "", ""},
		{"only spaces", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Ender’s Game",
		"The Lion, the Witch and the Wardrobe",
		"  A — B –  C  ",
		"trailing comma,",
		"comma ,  spaced ,list",
		"Hello,\n\nWorld",
		"`quoted`",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalize_Equivalences(t *testing.T) {
	pairs := [][2]string{
		{"Ender's Game", "ENDER’S GAME"},
		{"A—B", "a-b"},
		{"the  hobbit", "The Hobbit"},
	}

	for _, p := range pairs {
		if Normalize(p[0]) != Normalize(p[1]) {
			t.Errorf("Normalize(%q) = %q, Normalize(%q) = %q, want equal",
				p[0], Normalize(p[0]), p[1], Normalize(p[1]))
		}
	}
}
