package trace

import (
	"fmt"
	"io"
	"os"
	"strconv"
)

// A RandomStream replays victim indices from a pregenerated random number
// file. The stream wraps around when exhausted, so every simulation over the
// same file is reproducible.
type RandomStream struct {
	values []int
	ofs    int
}

// LoadRandomStream reads a random file from path. The first non-comment line
// is the value count; each following line holds one value.
func LoadRandomStream(path string) (*RandomStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open random file: %w", err)
	}
	defer f.Close()

	return ParseRandomStream(f)
}

// ParseRandomStream parses the random file format from r.
func ParseRandomStream(r io.Reader) (*RandomStream, error) {
	lines := newLineScanner(r)

	count, err := lines.nextInt()
	if err != nil {
		return nil, fmt.Errorf("read random value count: %w", err)
	}

	values := make([]int, 0, count)

	for {
		line, ok := lines.next()
		if !ok {
			break
		}

		v, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("malformed random value %q", line)
		}

		values = append(values, v)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("random file holds no values")
	}

	return &RandomStream{values: values}, nil
}

// NewRandomStream creates a stream over the given values.
func NewRandomStream(values []int) *RandomStream {
	return &RandomStream{values: values}
}

// NextInRange returns the next value modulo n. Negative source values are
// folded to their absolute value before the modulo.
func (s *RandomStream) NextInRange(n int) int {
	if s.ofs >= len(s.values) {
		s.ofs = 0
	}

	v := s.values[s.ofs]
	s.ofs++

	if v < 0 {
		v = -v
	}

	return v % n
}
