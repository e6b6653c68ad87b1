package textutil

import (
	"math"
	"testing"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"John Smith", "Jon Smith", 1},
		{"Smith", "smith", 1},
		{"Müller", "Muller", 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"|"+tt.b, func(t *testing.T) {
			if got := EditDistance(tt.a, tt.b); got != tt.want {
				t.Errorf("EditDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarityIdentical(t *testing.T) {
	for _, s := range []string{"", "a", "John Smith", "Ærøskøbing"} {
		if got := Similarity(s, s); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestSimilarityKnownValues(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"dropped letter", "John Smith", "Jon Smith", 0.9},
		{"one empty", "abc", "", 0},
		{"completely different", "abc", "xyz", 0},
		{"case sensitive", "ab", "AB", 0},
		{"runes not bytes", "Müller", "Muller", 1 - 1.0/6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"John Smith", "Jon Smith"},
		{"Catherine", "Katharine"},
		{"", "x"},
		{"Anne-Marie", "Annemarie"},
	}
	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity not symmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
		}
		if ab < 0 || ab > 1 {
			t.Errorf("Similarity(%q, %q) = %v out of range", p[0], p[1], ab)
		}
	}
}
