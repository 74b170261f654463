package vector

import (
	"errors"
	"math"
	"strings"
	"testing"
)

const tolerance = 1e-6

func loadFixture(t *testing.T, opts ...LoadOption) *Space {
	t.Helper()
	s, err := Read(strings.NewReader(fixtureText+"void 0 0\n"), "fixture", opts...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSimilarity_kingQueen(t *testing.T) {
	s := loadFixture(t)
	got, err := s.Similarity("king", "queen")
	if err != nil {
		t.Fatal(err)
	}
	want := 0.9 / math.Sqrt(0.82)
	if math.Abs(got-want) > tolerance {
		t.Errorf("Similarity(king, queen) = %v, want %v", got, want)
	}
	again, _ := s.Similarity("king", "queen")
	if again != got {
		t.Errorf("similarity not reproducible: %v then %v", got, again)
	}
}

func TestSimilarity_properties(t *testing.T) {
	for _, cacheSize := range []int{0, 2, 100} {
		s := loadFixture(t, WithCacheSize(cacheSize))
		tokens := []string{"king", "queen", "crown", "laugh"}
		for _, a := range tokens {
			self, err := s.Similarity(a, a)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(self-1) > tolerance {
				t.Errorf("cache=%d: Similarity(%s, %s) = %v, want 1", cacheSize, a, a, self)
			}
			for _, b := range tokens {
				ab, _ := s.Similarity(a, b)
				ba, _ := s.Similarity(b, a)
				if ab != ba {
					t.Errorf("cache=%d: Similarity not symmetric for %s/%s: %v vs %v", cacheSize, a, b, ab, ba)
				}
				if ab < -1 || ab > 1 {
					t.Errorf("cache=%d: Similarity(%s, %s) = %v out of range", cacheSize, a, b, ab)
				}
				d, err := s.Distance(a, b)
				if err != nil {
					t.Fatal(err)
				}
				if d != 1-ab {
					t.Errorf("cache=%d: Distance(%s, %s) = %v, want exactly %v", cacheSize, a, b, d, 1-ab)
				}
			}
		}
	}
}

func TestSimilarity_orthogonalAndOpposite(t *testing.T) {
	s, err := Read(strings.NewReader("x 1 0\ny 0 1\nneg -2 0\n"), "axes")
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Similarity("x", "y"); got != 0 {
		t.Errorf("orthogonal similarity = %v, want 0", got)
	}
	if got, _ := s.Similarity("x", "neg"); got != -1 {
		t.Errorf("opposite similarity = %v, want -1", got)
	}
	if got, _ := s.Distance("x", "neg"); got != 2 {
		t.Errorf("opposite distance = %v, want 2", got)
	}
}

func TestSimilarity_zeroVector(t *testing.T) {
	s := loadFixture(t)
	got, err := s.Similarity("void", "king")
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("zero vector similarity = %v, want 0", got)
	}
}

func TestSimilarity_unknownToken(t *testing.T) {
	s := loadFixture(t)
	tests := []struct {
		a, b    string
		missing string
	}{
		{"king", "prince", "prince"},
		{"prince", "king", "prince"},
		{"prince", "duke", "prince"},
	}
	for _, tt := range tests {
		_, err := s.Similarity(tt.a, tt.b)
		var unknown *UnknownTokenError
		if !errors.As(err, &unknown) {
			t.Fatalf("Similarity(%s, %s): expected *UnknownTokenError, got %v", tt.a, tt.b, err)
		}
		if unknown.Token != tt.missing {
			t.Errorf("Similarity(%s, %s): missing token = %q, want %q", tt.a, tt.b, unknown.Token, tt.missing)
		}
		if _, err := s.Distance(tt.a, tt.b); !errors.As(err, &unknown) {
			t.Errorf("Distance(%s, %s): expected *UnknownTokenError, got %v", tt.a, tt.b, err)
		}
	}
}

func TestUnitCache_bounded(t *testing.T) {
	s := loadFixture(t, WithCacheSize(2))
	for _, tok := range []string{"king", "queen", "crown", "laugh"} {
		if _, err := s.Similarity(tok, tok); err != nil {
			t.Fatal(err)
		}
	}
	if n := s.units.len(); n != 2 {
		t.Errorf("cache holds %d unit vectors, want 2", n)
	}
	if s := loadFixture(t); s.units != nil {
		t.Error("cache should be disabled by default")
	}
}
