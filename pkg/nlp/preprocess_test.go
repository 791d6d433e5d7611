package nlp

import "testing"

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Set Stevia To Half A Box", "set stevia to half a box"},
		{"strips punctuation", "add 10 packs, of paper-wrap!", "add 10 packs of paperwrap"},
		{"trims whitespace", "   subtract two bags   ", "subtract two bags"},
		{"only punctuation becomes empty", "?!.,;:", ""},
		{"empty stays empty", "", ""},
		{"keeps digits and underscores", "set item_2 to 5", "set item_2 to 5"},
		{"unicode letters survive", "añadir café", "añadir café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preprocess(tt.input); got != tt.want {
				t.Errorf("Preprocess(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPreprocessIsIdempotent(t *testing.T) {
	inputs := []string{"Set Stevia to 0.5 boxes!", "  ADD 10 packs  ", "plain text"}
	for _, in := range inputs {
		once := Preprocess(in)
		twice := Preprocess(once)
		if once != twice {
			t.Errorf("Preprocess not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSanitize(t *testing.T) {
	got := Sanitize(`say <b>"hello"</b> & 'bye'`)
	want := "say bhello/b  bye"
	if got != want {
		t.Errorf("Sanitize() = %q, want %q", got, want)
	}
}
