// Package models defines the data passed between query evaluation, output, and the run journal.
package models

import (
	"fmt"
	"strings"
)

// Kind selects which score a Pair asks for.
type Kind string

const (
	// KindSimilarity is cosine similarity, in [-1, 1].
	KindSimilarity Kind = "similarity"
	// KindDistance is cosine distance, 1 - similarity.
	KindDistance Kind = "distance"
)

// ParseKind converts user input to a Kind. Empty input means KindSimilarity.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "similarity", "sim":
		return KindSimilarity, nil
	case "distance", "dist":
		return KindDistance, nil
	default:
		return "", fmt.Errorf("unknown query kind %q (supported: similarity, distance)", s)
	}
}

// Pair is one query: two tokens and the score to compute between them.
type Pair struct {
	A           string `json:"a" yaml:"a"`
	B           string `json:"b" yaml:"b"`
	Kind        Kind   `json:"kind" yaml:"kind,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Label returns the description printed next to the score, "<A> and <B>" when none is set.
func (p Pair) Label() string {
	if p.Description != "" {
		return p.Description
	}
	return p.A + " and " + p.B
}

// Validate checks both tokens are set and normalizes Kind.
func (p *Pair) Validate() error {
	if p.A == "" || p.B == "" {
		return fmt.Errorf("pair needs two tokens, got %q and %q", p.A, p.B)
	}
	kind, err := ParseKind(string(p.Kind))
	if err != nil {
		return err
	}
	p.Kind = kind
	return nil
}
