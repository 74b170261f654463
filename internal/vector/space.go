// Package vector loads word-embedding files into an immutable Space and
// answers cosine similarity and distance queries over it.
package vector

// Format identifies the on-disk layout of a vector file.
type Format string

const (
	// FormatAuto picks binary for a ".bin" extension and text otherwise.
	FormatAuto Format = "auto"
	// FormatText is one "<token> <f1> ... <fN>" entry per line, with an optional "<count> <dim>" header.
	FormatText Format = "text"
	// FormatBinary is the word2vec binary layout: text header, then token + little-endian float32s.
	FormatBinary Format = "binary"
)

// Stats describes how a Space was loaded.
type Stats struct {
	Path       string `json:"path"`
	Format     Format `json:"format"`
	HasHeader  bool   `json:"has_header"`
	Declared   int    `json:"declared,omitempty"` // vocab size from the header
	Entries    int    `json:"entries"`            // entries read, duplicates included
	Duplicates int    `json:"duplicates"`
}

// Space maps tokens to fixed-length vectors. It is read-only once Load returns
// and safe for concurrent queries.
type Space struct {
	dim     int
	tokens  []string
	index   map[string]int
	vectors [][]float32
	stats   Stats
	units   *unitCache
}

// Len returns the number of distinct tokens.
func (s *Space) Len() int {
	return len(s.tokens)
}

// Dim returns the vector dimension shared by every entry.
func (s *Space) Dim() int {
	return s.dim
}

// Contains reports whether token has a vector.
func (s *Space) Contains(token string) bool {
	_, ok := s.index[token]
	return ok
}

// Vector returns a copy of the vector for token.
func (s *Space) Vector(token string) ([]float32, error) {
	i, ok := s.index[token]
	if !ok {
		return nil, &UnknownTokenError{Token: token}
	}
	out := make([]float32, s.dim)
	copy(out, s.vectors[i])
	return out, nil
}

// Tokens returns the tokens in file order.
func (s *Space) Tokens() []string {
	return append([]string(nil), s.tokens...)
}

// Stats returns load statistics.
func (s *Space) Stats() Stats {
	return s.stats
}

// add appends token unless it is already present. It reports whether the
// token was new; the first occurrence of a token wins.
func (s *Space) add(token string, vec []float32) bool {
	if _, ok := s.index[token]; ok {
		return false
	}
	s.index[token] = len(s.tokens)
	s.tokens = append(s.tokens, token)
	s.vectors = append(s.vectors, vec)
	return true
}
