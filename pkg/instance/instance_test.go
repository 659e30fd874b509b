package instance

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/linebalance/pkg/errors"
)

func TestMatrix(t *testing.T) {
	m := NewMatrix[int](3)
	m.Set(1, 2, 7)

	if m.N() != 3 {
		t.Errorf("N() = %d, want 3", m.N())
	}
	if m.At(1, 2) != 7 {
		t.Errorf("At(1,2) = %d, want 7", m.At(1, 2))
	}
	if row := m.Row(1); len(row) != 3 || row[2] != 7 {
		t.Errorf("Row(1) = %v", row)
	}

	alias := m
	alias.Set(0, 0, 1)
	if m.At(0, 0) != 1 {
		t.Error("copies of a Matrix should share storage")
	}

	clone := m.Clone()
	clone.Set(0, 0, 9)
	if m.At(0, 0) != 1 {
		t.Error("Clone() should not share storage")
	}
}

func TestMatrixFromRows(t *testing.T) {
	m, err := MatrixFromRows([][]bool{{false, true}, {false, false}})
	if err != nil {
		t.Fatalf("MatrixFromRows() error: %v", err)
	}
	if !m.At(0, 1) || m.At(1, 0) {
		t.Error("unexpected entries")
	}

	if _, err := MatrixFromRows([][]int{{1, 2}, {3}}); err == nil {
		t.Error("ragged rows should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Instance)
		code   errors.Code
	}{
		{"valid", func(*Instance) {}, ""},
		{"zero capacity", func(i *Instance) { i.C = 0 }, errors.ErrCodeInvalidCapacity},
		{"negative capacity", func(i *Instance) { i.C = -3 }, errors.ErrCodeInvalidCapacity},
		{"short times", func(i *Instance) { i.T = i.T[:1] }, errors.ErrCodeInvalidInput},
		{"negative time", func(i *Instance) { i.T[0] = -1 }, errors.ErrCodeInvalidInput},
		{"negative forward setup", func(i *Instance) { i.SF.Set(0, 1, -1) }, errors.ErrCodeInvalidInput},
		{"negative backward setup", func(i *Instance) { i.SB.Set(1, 0, -1) }, errors.ErrCodeInvalidInput},
		{"wrong matrix size", func(i *Instance) { i.SB = NewMatrix[int](3) }, errors.ErrCodeInvalidInput},
		{"negative optimum", func(i *Instance) { i.SetOptimum(-1) }, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := New("v", 2, 10)
			inst.T[0], inst.T[1] = 4, 4
			tt.mutate(inst)

			err := inst.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestValidateNil(t *testing.T) {
	var inst *Instance
	if err := inst.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Validate() on nil = %v, want INVALID_INPUT", err)
	}
}

func TestTotalTime(t *testing.T) {
	inst := New("t", 3, 10)
	copy(inst.T, []int{1, 2, 3})
	if got := inst.TotalTime(); got != 6 {
		t.Errorf("TotalTime() = %d, want 6", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	src, err := ParseALB(strings.NewReader(sampleALB), "sample")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(src, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}

	if !bytes.Equal(src.Fingerprint(), got.Fingerprint()) {
		t.Error("round trip changed the instance data")
	}
	if got.Name != "sample" {
		t.Errorf("Name = %q, want sample", got.Name)
	}
}

func TestReadJSONDefaultsAndErrors(t *testing.T) {
	inst, err := DecodeJSON([]byte(`{"n":3,"c":10,"times":[5,5,5]}`))
	if err != nil {
		t.Fatalf("DecodeJSON() error: %v", err)
	}
	if inst.SF.N() != 3 || inst.SB.N() != 3 {
		t.Error("omitted setup matrices should default to zero n×n matrices")
	}

	bad := []string{
		`{"n":2,"c":10,"times":[1]}`,
		`{"n":2,"c":10,"times":[1,1],"precedence":[[0,2]]}`,
		`{"n":2,"c":10,"times":[1,1],"setup_forward":[[0,1]]}`,
		`{"n":1,"c":10,"times":[1],"unknown":true}`,
		`not json`,
	}
	for _, src := range bad {
		if _, err := DecodeJSON([]byte(src)); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("DecodeJSON(%s) = %v, want INVALID_INPUT", src, err)
		}
	}

	if _, err := DecodeJSON([]byte(`{"n":1,"c":0,"times":[1]}`)); !errors.Is(err, errors.ErrCodeInvalidCapacity) {
		t.Errorf("zero capacity = %v, want INVALID_CAPACITY", err)
	}
}

func TestDecodeJSONRejectsBeforeAllocating(t *testing.T) {
	// Both documents would need n×n matrices of 2^40 cells if allocated.
	tests := []struct {
		name string
		src  string
		opts []ReadOption
	}{
		{"times mismatch", `{"n":1048576,"c":1,"times":[]}`, nil},
		{"over limit", `{"n":1048576,"c":1,"times":[]}`, []ReadOption{WithMaxTasks(100)}},
		{"negative", `{"n":-1,"c":1,"times":[]}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeJSON([]byte(tt.src), tt.opts...); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("DecodeJSON() = %v, want INVALID_INPUT", err)
			}
		})
	}

	inst, err := DecodeJSON([]byte(`{"n":2,"c":10,"times":[1,1]}`), WithMaxTasks(2))
	if err != nil {
		t.Fatalf("DecodeJSON() at the limit error: %v", err)
	}
	if inst.N != 2 {
		t.Errorf("N = %d, want 2", inst.N)
	}
}

func TestFingerprintIgnoresName(t *testing.T) {
	a := New("a", 2, 10)
	b := New("b", 2, 10)
	if !bytes.Equal(a.Fingerprint(), b.Fingerprint()) {
		t.Error("fingerprint should not depend on the name")
	}
	b.T[0] = 1
	if bytes.Equal(a.Fingerprint(), b.Fingerprint()) {
		t.Error("fingerprint should depend on task times")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	albPath := filepath.Join(dir, "one.alb")
	if err := os.WriteFile(albPath, []byte(sampleALB), 0o644); err != nil {
		t.Fatal(err)
	}
	jsonPath := filepath.Join(dir, "two.json")
	if err := os.WriteFile(jsonPath, []byte(`{"n":1,"c":4,"times":[2]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := Load(albPath)
	if err != nil || a.N != 4 {
		t.Fatalf("Load(alb) = %v, %v", a, err)
	}
	b, err := Load(jsonPath)
	if err != nil || b.N != 1 {
		t.Fatalf("Load(json) = %v, %v", b, err)
	}
	if b.Name != "two" {
		t.Errorf("Name = %q, want file stem", b.Name)
	}
}
