package models

import (
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"", KindSimilarity, false},
		{"similarity", KindSimilarity, false},
		{" Distance ", KindDistance, false},
		{"dist", KindDistance, false},
		{"analogy", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPair_Label(t *testing.T) {
	if got := (Pair{A: "king", B: "crown"}).Label(); got != "king and crown" {
		t.Errorf("default label = %q", got)
	}
	if got := (Pair{A: "king", B: "queen", Description: "king and queen!"}).Label(); got != "king and queen!" {
		t.Errorf("description label = %q", got)
	}
}

func TestPair_Validate(t *testing.T) {
	tests := []struct {
		name     string
		pair     Pair
		wantErr  bool
		wantKind Kind
	}{
		{"missing token", Pair{A: "king"}, true, ""},
		{"defaults kind", Pair{A: "king", B: "queen"}, false, KindSimilarity},
		{"keeps distance", Pair{A: "king", B: "queen", Kind: "DISTANCE"}, false, KindDistance},
		{"rejects unknown kind", Pair{A: "king", B: "queen", Kind: "cosine"}, true, "cosine"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pair.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.pair.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", tt.pair.Kind, tt.wantKind)
			}
		})
	}
}

func TestRun_Failed(t *testing.T) {
	run := &Run{Results: []*Result{
		{Value: 0.5},
		{Error: "unknown token \"prince\""},
		{Value: 0.1},
	}}
	if got := run.Failed(); got != 1 {
		t.Errorf("Failed() = %d, want 1", got)
	}
}
