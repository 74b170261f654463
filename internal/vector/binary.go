package vector

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
)

func readBinary(r *bufio.Reader, s *Space, o *loadOptions) error {
	name := s.stats.Path
	header, err := r.ReadString('\n')
	if err != nil && !isEOF(err) {
		return &LoadError{Path: name, Err: err}
	}
	count, dim, ok := parseHeader(strings.Fields(header))
	if !ok {
		return &LoadError{Path: name, Line: 1, Err: fmt.Errorf("%w: %q", ErrBadHeader, strings.TrimSpace(header))}
	}
	if err := s.setHeader(count, dim); err != nil {
		return &LoadError{Path: name, Line: 1, Err: err}
	}

	n := count
	if o.limit > 0 && o.limit < n {
		n = o.limit
	}
	buf := make([]byte, 4*dim)
	for i := 1; i <= n; i++ {
		token, err := readToken(r)
		if err != nil {
			if isEOF(err) {
				err = fmt.Errorf("%w: declared %d, read %d", ErrTruncated, count, s.stats.Entries)
			}
			return &LoadError{Path: name, Line: i, Err: err}
		}
		if token == "" {
			return &LoadError{Path: name, Line: i, Err: fmt.Errorf("%w: empty token", ErrMalformedLine)}
		}
		if _, err := io.ReadFull(r, buf); err != nil {
			if isEOF(err) {
				err = fmt.Errorf("%w: vector for %q cut short", ErrTruncated, token)
			}
			return &LoadError{Path: name, Line: i, Err: err}
		}
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*j:]))
			if !finite(float64(vec[j])) {
				return &LoadError{Path: name, Line: i, Err: fmt.Errorf("%w: component %d of %q is not finite", ErrMalformedLine, j, token)}
			}
		}
		s.insert(token, vec, o)
	}
	return nil
}

// readToken reads bytes up to the next space. Newlines left between a vector
// and the following token are skipped.
func readToken(r *bufio.Reader) (string, error) {
	var b []byte
	for {
		c, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		if c == ' ' {
			return string(b), nil
		}
		if c == '\n' && len(b) == 0 {
			continue
		}
		if len(b) == maxLineBytes {
			return "", fmt.Errorf("%w: token longer than %d bytes", ErrMalformedLine, maxLineBytes)
		}
		b = append(b, c)
	}
}
