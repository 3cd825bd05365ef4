package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "The Futur", "the-futur"},
		{"already slug", "the-futur", "the-futur"},
		{"punctuation stripped", "AJ&Smart", "ajsmart"},
		{"colon and spaces", "Abstract: The Art of Design", "abstract-the-art-of-design"},
		{"plus stripped", "Envato Tuts+", "envato-tuts"},
		{"surrounding whitespace", "  Kevin Powell  ", "kevin-powell"},
		{"inner whitespace run", "School  of   Motion", "school-of-motion"},
		{"mixed case digits", "Ducky 3D", "ducky-3d"},
		{"existing hyphens collapse", "a--b---c", "a-b-c"},
		{"only punctuation", "!!!", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Make(tt.input)
			if got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMake_Idempotent(t *testing.T) {
	inputs := []string{
		"The Futur",
		"AJ&Smart",
		"  Weird -- Name!  ",
		"Abstract: The Art of Design",
		"",
	}
	for _, in := range inputs {
		once := Make(in)
		twice := Make(once)
		if once != twice {
			t.Errorf("Make not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
