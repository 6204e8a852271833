package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"leading and trailing spaces", "  Aula Magna  ", "Aula Magna"},
		{"internal whitespace collapsed", "Aula   \t  Magna", "Aula Magna"},
		{"already normalized", "Laboratorio 2", "Laboratorio 2"},
		{"unicode preserved", "  Fisica  Avanzata  ", "Fisica Avanzata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.expected {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Matematica Applicata", "matematica_applicata"},
		{"  Storia dell'Arte  ", "storia_dell_arte"},
		{"", ""},
		{"___", ""},
	}

	for _, tt := range tests {
		got := SanitizeLabel(tt.input)
		if got != tt.expected {
			t.Errorf("SanitizeLabel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSanitizeCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Aula B-12", "AULA-B-12"},
		{"  lab 3 ", "LAB-3"},
		{"--a--", "A"},
		{"", ""},
	}

	for _, tt := range tests {
		got := SanitizeCode(tt.input)
		if got != tt.expected {
			t.Errorf("SanitizeCode(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSanitizeSlice(t *testing.T) {
	got := SanitizeSlice([]string{" Fisica ", "fisica", "", "Chimica"}, SanitizeLabel)

	want := []string{"fisica", "chimica"}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
