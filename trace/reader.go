// Package trace reads the simulator's two input files: the process and
// instruction trace, and the pregenerated random number file. Lines starting
// with '#' and blank lines are comments everywhere.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/pagesim/vm"
)

// LoadInput reads the process definitions and the instruction trace from
// path.
func LoadInput(path string) ([]*vm.Process, []vm.Instruction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	return ParseInput(f)
}

// ParseInput parses the input format from r. The format is the process
// count, then per process a VMA count followed by one
// "start end writeProtect fileMapped" line per VMA, then any number of
// "op value" instruction lines.
func ParseInput(r io.Reader) ([]*vm.Process, []vm.Instruction, error) {
	lines := newLineScanner(r)

	numProcs, err := lines.nextInt()
	if err != nil {
		return nil, nil, fmt.Errorf("read process count: %w", err)
	}

	procs := make([]*vm.Process, 0, numProcs)

	for pid := 0; pid < numProcs; pid++ {
		numVMAs, err := lines.nextInt()
		if err != nil {
			return nil, nil, fmt.Errorf(
				"read VMA count of process %d: %w", pid, err)
		}

		proc := vm.NewProcess(pid)

		for i := 0; i < numVMAs; i++ {
			fields, err := lines.nextFields(4)
			if err != nil {
				return nil, nil, fmt.Errorf(
					"read VMA %d of process %d: %w", i, pid, err)
			}

			proc.AddVMA(fields[0], fields[1], fields[2] != 0, fields[3] != 0)
		}

		procs = append(procs, proc)
	}

	instructions, err := parseInstructions(lines)
	if err != nil {
		return nil, nil, err
	}

	return procs, instructions, nil
}

func parseInstructions(lines *lineScanner) ([]vm.Instruction, error) {
	var instructions []vm.Instruction

	for {
		line, ok := lines.next()
		if !ok {
			return instructions, nil
		}

		fields := strings.Fields(line)
		if len(fields) != 2 || len(fields[0]) != 1 {
			return nil, fmt.Errorf("malformed instruction line %q", line)
		}

		value, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("malformed instruction line %q", line)
		}

		instructions = append(instructions, vm.Instruction{
			Op:    fields[0][0],
			Value: value,
		})
	}
}

// lineScanner yields non-comment, non-blank lines.
type lineScanner struct {
	s *bufio.Scanner
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{s: bufio.NewScanner(r)}
}

func (l *lineScanner) next() (string, bool) {
	for l.s.Scan() {
		line := strings.TrimSpace(l.s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		return line, true
	}

	return "", false
}

func (l *lineScanner) nextInt() (int, error) {
	fields, err := l.nextFields(1)
	if err != nil {
		return 0, err
	}

	return fields[0], nil
}

func (l *lineScanner) nextFields(n int) ([]int, error) {
	line, ok := l.next()
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}

	fields := strings.Fields(line)
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d fields in line %q", n, line)
	}

	values := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, fmt.Errorf("non-numeric field %q in line %q",
				fields[i], line)
		}

		values[i] = v
	}

	return values, nil
}
