package instance

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/linebalance/pkg/errors"
)

const sampleALB = `<number of tasks>
4

<cycle time>
10

<order strength>
0,5

<task times>
1 5
2 3
3 4
4 2

<precedence relations>
1,2
1,3
3,4

<setup times forward>
1,2:1
2,3:2
3,4:1

<setup times backward>
2,1:3
4,1:2

<optimal SALBP-1 value>
2

<end>
`

func TestParseALB(t *testing.T) {
	inst, err := ParseALB(strings.NewReader(sampleALB), "sample")
	if err != nil {
		t.Fatalf("ParseALB() error: %v", err)
	}

	if inst.Name != "sample" {
		t.Errorf("Name = %q, want %q", inst.Name, "sample")
	}
	if inst.N != 4 || inst.C != 10 {
		t.Errorf("N, C = %d, %d, want 4, 10", inst.N, inst.C)
	}
	wantT := []int{5, 3, 4, 2}
	for i, v := range wantT {
		if inst.T[i] != v {
			t.Errorf("T[%d] = %d, want %d", i, inst.T[i], v)
		}
	}
	if !inst.D.At(0, 1) || !inst.D.At(0, 2) || !inst.D.At(2, 3) {
		t.Error("missing precedence edges")
	}
	if inst.D.At(1, 0) || inst.D.At(0, 3) {
		t.Error("unexpected precedence edges")
	}
	if got := inst.SF.At(1, 2); got != 2 {
		t.Errorf("SF[1][2] = %d, want 2", got)
	}
	if got := inst.SB.At(3, 0); got != 2 {
		t.Errorf("SB[3][0] = %d, want 2", got)
	}
	if inst.Optimum == nil || *inst.Optimum != 2 {
		t.Errorf("Optimum = %v, want 2", inst.Optimum)
	}
	if !inst.Directed {
		t.Error("Directed = false, want true when both setup sections are present")
	}
	if len(inst.Edges()) != 3 {
		t.Errorf("Edges() = %v, want 3 edges", inst.Edges())
	}
}

func TestParseALBDirectedFlag(t *testing.T) {
	tests := []struct {
		name     string
		sections string
		want     bool
	}{
		{"no setups", "", false},
		{"forward only", "<setup times forward>\n1,2:1\n", false},
		{"backward only", "<setup times backward>\n2,1:1\n", false},
		{"both", "<setup times forward>\n1,2:1\n\n<setup times backward>\n2,1:1\n", true},
		{"both empty", "<setup times forward>\n\n<setup times backward>\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "<number of tasks>\n2\n<cycle time>\n5\n<task times>\n1 1\n2 1\n\n" + tt.sections + "<end>\n"
			inst, err := ParseALB(strings.NewReader(src), "x")
			if err != nil {
				t.Fatalf("ParseALB() error: %v", err)
			}
			if inst.Directed != tt.want {
				t.Errorf("Directed = %v, want %v", inst.Directed, tt.want)
			}
		})
	}
}

func TestParseALBErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{"empty", "", errors.ErrCodeInvalidInput},
		{"missing cycle time", "<number of tasks>\n1\n<task times>\n1 1\n", errors.ErrCodeInvalidInput},
		{"bad task count", "<number of tasks>\nabc\n", errors.ErrCodeInvalidInput},
		{"negative task count", "<number of tasks>\n-1\n<cycle time>\n3\n", errors.ErrCodeInvalidInput},
		{"times before count", "<task times>\n1 1\n<number of tasks>\n1\n<cycle time>\n3\n", errors.ErrCodeInvalidInput},
		{"id out of range", "<number of tasks>\n1\n<cycle time>\n3\n<task times>\n2 1\n", errors.ErrCodeInvalidInput},
		{"bad precedence", "<number of tasks>\n2\n<cycle time>\n3\n<precedence relations>\n1;2\n", errors.ErrCodeInvalidInput},
		{"bad setup", "<number of tasks>\n2\n<cycle time>\n3\n<setup times forward>\n1,2=4\n", errors.ErrCodeInvalidInput},
		{"negative time", "<number of tasks>\n1\n<cycle time>\n3\n<task times>\n1 -4\n", errors.ErrCodeInvalidInput},
		{"zero cycle time", "<number of tasks>\n1\n<cycle time>\n0\n", errors.ErrCodeInvalidCapacity},
		{"truncated scalar", "<number of tasks>\n", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseALB(strings.NewReader(tt.src), "bad")
			if err == nil {
				t.Fatal("ParseALB() should fail")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestParseALBReportsLine(t *testing.T) {
	src := "<number of tasks>\n2\n<cycle time>\n3\n<task times>\n1 1\n2 x\n"
	_, err := ParseALB(strings.NewReader(src), "bad")
	if err == nil {
		t.Fatal("ParseALB() should fail")
	}
	if !strings.Contains(err.Error(), "line 7") {
		t.Errorf("error %q should mention line 7", err)
	}
}

func TestParseALBZeroTasks(t *testing.T) {
	inst, err := ParseALB(strings.NewReader("<number of tasks>\n0\n<cycle time>\n7\n<end>\n"), "empty")
	if err != nil {
		t.Fatalf("ParseALB() error: %v", err)
	}
	if inst.N != 0 || inst.C != 7 {
		t.Errorf("N, C = %d, %d, want 0, 7", inst.N, inst.C)
	}
}

func TestParseALBMaxTasks(t *testing.T) {
	// A header alone must be rejected before n×n matrices are allocated.
	src := "<number of tasks>\n1048576\n<cycle time>\n10\n"
	_, err := ParseALB(strings.NewReader(src), "huge", WithMaxTasks(100))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("ParseALB() = %v, want INVALID_INPUT", err)
	}
	if !strings.Contains(err.Error(), "limit of 100") {
		t.Errorf("error %q should name the limit", err)
	}

	inst, err := ParseALB(strings.NewReader("<number of tasks>\n2\n<cycle time>\n5\n<task times>\n1 1\n2 1\n"), "ok", WithMaxTasks(2))
	if err != nil {
		t.Fatalf("ParseALB() at the limit error: %v", err)
	}
	if inst.N != 2 {
		t.Errorf("N = %d, want 2", inst.N)
	}
}

func TestReadALB(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toy.alb")
	if err := os.WriteFile(path, []byte(sampleALB), 0o644); err != nil {
		t.Fatal(err)
	}

	inst, err := ReadALB(path)
	if err != nil {
		t.Fatalf("ReadALB() error: %v", err)
	}
	if inst.Name != "toy" {
		t.Errorf("Name = %q, want %q", inst.Name, "toy")
	}

	_, err = ReadALB(filepath.Join(dir, "missing.alb"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestStem(t *testing.T) {
	tests := map[string]string{
		"a/b/HAHN.alb":  "HAHN",
		"toy.json":      "toy",
		"noext":         "noext",
		"dir/x.tar.alb": "x.tar",
	}
	for in, want := range tests {
		if got := Stem(in); got != want {
			t.Errorf("Stem(%q) = %q, want %q", in, got, want)
		}
	}
}
