package instance

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/linebalance/pkg/errors"
)

// Section names recognised by ParseALB, compared after lowercasing.
const (
	sectionTasks      = "number of tasks"
	sectionCycleTime  = "cycle time"
	sectionTaskTimes  = "task times"
	sectionPrecedence = "precedence relations"
	sectionForward    = "setup times forward"
	sectionBackward   = "setup times backward"
	sectionOptimum    = "optimal salbp-1 value"
	sectionEnd        = "end"
)

// ReadALB reads an instance file. The instance is named after the file stem.
func ReadALB(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "instance file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ParseALB(f, Stem(path))
}

// Stem returns the file name of path without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseALB parses the sectioned instance format from r.
//
// Data sections before "<number of tasks>" are rejected because the matrices
// are not allocated yet. Unknown sections and "<end>" are skipped. Malformed
// lines are reported as INVALID_INPUT with their 1-based line number.
func ParseALB(r io.Reader, name string, opts ...ReadOption) (*Instance, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read instance %s", name)
	}

	p := &albParser{lines: lines, opts: newReadOptions(opts)}
	inst, err := p.parse(name)
	if err != nil {
		return nil, err
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

type albParser struct {
	lines []string
	pos   int
	opts  readOptions

	inst        *Instance
	seenCycle   bool
	seenForward bool
	seenBack    bool
}

func (p *albParser) parse(name string) (*Instance, error) {
	cycleTime := 0
	var optimum *int
	for p.pos < len(p.lines) {
		section := sectionName(p.lines[p.pos])
		p.pos++
		if section == "" {
			continue
		}

		var err error
		switch section {
		case sectionTasks:
			var n int
			if n, err = p.scalar(section); err == nil {
				if msg := p.opts.taskCountProblem(n); msg != "" {
					return nil, p.errorf(p.pos, "%s", msg)
				}
				p.inst = New(name, n, 0)
			}
		case sectionCycleTime:
			cycleTime, err = p.scalar(section)
			p.seenCycle = true
		case sectionTaskTimes:
			err = p.block(section, p.taskTime)
		case sectionPrecedence:
			err = p.block(section, p.precedence)
		case sectionForward:
			p.seenForward = true
			err = p.block(section, func(line int, s string) error { return p.setup(line, s, p.inst.SF) })
		case sectionBackward:
			p.seenBack = true
			err = p.block(section, func(line int, s string) error { return p.setup(line, s, p.inst.SB) })
		case sectionOptimum:
			var v int
			if v, err = p.scalar(section); err == nil {
				optimum = &v
			}
		}
		if err != nil {
			return nil, err
		}
	}

	if p.inst == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "instance %s: missing <%s> section", name, sectionTasks)
	}
	if !p.seenCycle {
		return nil, errors.New(errors.ErrCodeInvalidInput, "instance %s: missing <%s> section", name, sectionCycleTime)
	}
	p.inst.C = cycleTime
	p.inst.Optimum = optimum
	p.inst.Directed = p.seenForward && p.seenBack
	return p.inst, nil
}

// sectionName returns the lowercased name of a "<name>" header line, or "".
func sectionName(line string) string {
	line = strings.TrimSpace(line)
	if len(line) < 2 || line[0] != '<' || line[len(line)-1] != '>' {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
}

func (p *albParser) skipBlank() {
	for p.pos < len(p.lines) && strings.TrimSpace(p.lines[p.pos]) == "" {
		p.pos++
	}
}

// scalar reads the single integer following a header.
func (p *albParser) scalar(section string) (int, error) {
	p.skipBlank()
	if p.pos >= len(p.lines) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "<%s>: unexpected end of input", section)
	}
	line := p.pos + 1
	v, err := strconv.Atoi(strings.TrimSpace(p.lines[p.pos]))
	if err != nil {
		return 0, p.wrap(line, err, "<%s>: expected integer", section)
	}
	p.pos++
	return v, nil
}

// block feeds every line of a data block to fn. The block ends at the first
// blank line or at the next section header.
func (p *albParser) block(section string, fn func(line int, s string) error) error {
	if p.inst == nil {
		return p.errorf(p.pos, "<%s> appears before <%s>", section, sectionTasks)
	}
	p.skipBlank()
	for p.pos < len(p.lines) {
		s := strings.TrimSpace(p.lines[p.pos])
		if s == "" || sectionName(s) != "" {
			return nil
		}
		if err := fn(p.pos+1, s); err != nil {
			return err
		}
		p.pos++
	}
	return nil
}

func (p *albParser) taskTime(line int, s string) error {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return p.errorf(line, "task time line %q: want \"<task> <time>\"", s)
	}
	id, err := p.taskID(line, fields[0])
	if err != nil {
		return err
	}
	v, err := strconv.Atoi(fields[1])
	if err != nil {
		return p.wrap(line, err, "task %d time", id+1)
	}
	p.inst.T[id] = v
	return nil
}

func (p *albParser) precedence(line int, s string) error {
	i, j, err := p.pair(line, s)
	if err != nil {
		return err
	}
	p.inst.D.Set(i, j, true)
	return nil
}

func (p *albParser) setup(line int, s string, m Matrix[int]) error {
	pair, value, ok := strings.Cut(s, ":")
	if !ok {
		return p.errorf(line, "setup line %q: want \"<i>,<j>:<value>\"", s)
	}
	i, j, err := p.pair(line, pair)
	if err != nil {
		return err
	}
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return p.wrap(line, err, "setup %d,%d value", i+1, j+1)
	}
	m.Set(i, j, v)
	return nil
}

func (p *albParser) pair(line int, s string) (int, int, error) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, p.errorf(line, "pair %q: want \"<i>,<j>\"", s)
	}
	i, err := p.taskID(line, a)
	if err != nil {
		return 0, 0, err
	}
	j, err := p.taskID(line, b)
	if err != nil {
		return 0, 0, err
	}
	return i, j, nil
}

// taskID converts a 1-based id from the file into a 0-based index.
func (p *albParser) taskID(line int, s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, p.wrap(line, err, "task id %q", s)
	}
	if id < 1 || id > p.inst.N {
		return 0, p.errorf(line, "task id %d out of range [1,%d]", id, p.inst.N)
	}
	return id - 1, nil
}

func (p *albParser) errorf(line int, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidInput, "line %d: %s", line, fmt.Sprintf(format, args...))
}

func (p *albParser) wrap(line int, cause error, format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeInvalidInput, cause, "line %d: %s", line, fmt.Sprintf(format, args...))
}
