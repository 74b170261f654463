package vector

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
)

type entry struct {
	token string
	vec   []float32
}

// encodeBinary writes entries in the word2vec binary layout, with the
// newline separator the reference tool emits after each vector.
func encodeBinary(t *testing.T, declared, dim int, entries []entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d %d\n", declared, dim)
	for _, e := range entries {
		buf.WriteString(e.token)
		buf.WriteByte(' ')
		for _, v := range e.vec {
			if err := binary.Write(&buf, binary.LittleEndian, math.Float32bits(v)); err != nil {
				t.Fatal(err)
			}
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

var binaryEntries = []entry{
	{"king", []float32{1, 0}},
	{"queen", []float32{0.9, 0.1}},
	{"crown", []float32{0.7, 0.7}},
	{"laugh", []float32{-0.2, 1}},
}

func TestLoad_binaryMatchesText(t *testing.T) {
	dir := t.TempDir()
	binPath := filepath.Join(dir, "vectors.bin")
	if err := os.WriteFile(binPath, encodeBinary(t, 4, 2, binaryEntries), 0600); err != nil {
		t.Fatal(err)
	}
	bin, err := Load(binPath)
	if err != nil {
		t.Fatal(err)
	}
	if bin.Stats().Format != FormatBinary {
		t.Errorf("format = %q, want binary", bin.Stats().Format)
	}
	text := loadFixture(t)
	for _, a := range []string{"king", "queen", "crown", "laugh"} {
		for _, b := range []string{"king", "queen", "crown", "laugh"} {
			want, _ := text.Similarity(a, b)
			got, err := bin.Similarity(a, b)
			if err != nil {
				t.Fatal(err)
			}
			if got != want {
				t.Errorf("binary Similarity(%s, %s) = %v, text gives %v", a, b, got, want)
			}
		}
	}
}

func TestRead_binaryLimitAndTruncation(t *testing.T) {
	data := encodeBinary(t, 4, 2, binaryEntries)

	s, err := Read(bytes.NewReader(data), "limited.bin", WithFormat(FormatBinary), WithLimit(3))
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 3 || s.Contains("laugh") {
		t.Errorf("limit ignored: Len=%d", s.Len())
	}

	// Claim five entries but provide four.
	short := encodeBinary(t, 5, 2, binaryEntries)
	_, err = Read(bytes.NewReader(short), "short.bin", WithFormat(FormatBinary))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) || !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected truncated LoadError, got %v", err)
	}
	if loadErr.Line != 5 {
		t.Errorf("Line = %d, want 5", loadErr.Line)
	}

	// Cut the last vector in half.
	cut := data[:len(data)-6]
	if _, err := Read(bytes.NewReader(cut), "cut.bin", WithFormat(FormatBinary)); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated for cut vector, got %v", err)
	}
}

func TestRead_binaryBadHeader(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"not a header", "king 1 0\n", ErrBadHeader},
		{"huge dimension", "1 4611686018427387904\nking ", ErrBadHeader},
		{"dimension above limit", fmt.Sprintf("1 %d\nking ", maxDimension+1), ErrBadHeader},
		{"dimension overflows int", "1 99999999999999999999999\nking ", ErrBadHeader},
		{"huge count with tiny input", "4611686018427387904 2\nking ", ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(bytes.NewReader([]byte(tt.data)), "bad.bin", WithFormat(FormatBinary))
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected *LoadError, got %v", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error %v does not wrap %v", err, tt.wantErr)
			}
		})
	}
}

func TestRead_binaryNonFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	for name, vec := range map[string][]float32{"NaN": {nan, 0}, "Inf": {1, inf}} {
		t.Run(name, func(t *testing.T) {
			data := encodeBinary(t, 2, 2, []entry{{"king", []float32{1, 0}}, {"queen", vec}})
			_, err := Read(bytes.NewReader(data), "bad.bin", WithFormat(FormatBinary))
			var loadErr *LoadError
			if !errors.As(err, &loadErr) || !errors.Is(err, ErrMalformedLine) {
				t.Fatalf("expected malformed LoadError, got %v", err)
			}
			if loadErr.Line != 2 {
				t.Errorf("Line = %d, want 2", loadErr.Line)
			}
		})
	}
}
