package instance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/linebalance/pkg/errors"
)

// document is the JSON wire form of an Instance. Edges and setup entries are
// 0-based. Setup matrices are written as nested rows.
type document struct {
	Name          string   `json:"name,omitempty"`
	N             int      `json:"n"`
	C             int      `json:"c"`
	Times         []int    `json:"times"`
	Precedence    [][2]int `json:"precedence,omitempty"`
	SetupForward  [][]int  `json:"setup_forward,omitempty"`
	SetupBackward [][]int  `json:"setup_backward,omitempty"`
	Optimum       *int     `json:"optimum,omitempty"`
	Directed      bool     `json:"directed"`
}

func toDocument(inst *Instance) document {
	doc := document{
		Name:       inst.Name,
		N:          inst.N,
		C:          inst.C,
		Times:      append([]int{}, inst.T...),
		Precedence: inst.Edges(),
		Optimum:    inst.Optimum,
		Directed:   inst.Directed,
	}
	if inst.N > 0 {
		doc.SetupForward = inst.SF.Rows()
		doc.SetupBackward = inst.SB.Rows()
	}
	return doc
}

// WriteJSON encodes an instance as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(inst *Instance, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(inst)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes an instance to a JSON file at path.
func ExportJSON(inst *Instance, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(inst, f)
}

// ReadJSON decodes an instance from r.
//
// The input must be a JSON object:
//
//	{
//	  "name": "toy",
//	  "n": 3,
//	  "c": 10,
//	  "times": [5, 5, 5],
//	  "precedence": [[0, 1]],
//	  "setup_forward": [[0,1,1],[1,0,1],[1,1,0]],
//	  "directed": false
//	}
//
// Omitted setup matrices default to all zeros. The decoded instance is
// validated before it is returned. See [WithMaxTasks] for bounding the
// task count of untrusted input.
func ReadJSON(r io.Reader, opts ...ReadOption) (*Instance, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode instance")
	}
	return fromDocument(doc, newReadOptions(opts))
}

// DecodeJSON decodes an instance from an in-memory JSON value.
func DecodeJSON(data []byte, opts ...ReadOption) (*Instance, error) {
	return ReadJSON(bytes.NewReader(data), opts...)
}

// fromDocument converts the wire form into a validated Instance.
func fromDocument(doc document, o readOptions) (*Instance, error) {
	if msg := o.taskCountProblem(doc.N); msg != "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s", msg)
	}
	if len(doc.Times) != doc.N {
		return nil, errors.New(errors.ErrCodeInvalidInput, "times has %d entries, want %d", len(doc.Times), doc.N)
	}
	inst := New(doc.Name, doc.N, doc.C)
	copy(inst.T, doc.Times)

	for _, e := range doc.Precedence {
		if e[0] < 0 || e[0] >= doc.N || e[1] < 0 || e[1] >= doc.N {
			return nil, errors.New(errors.ErrCodeInvalidInput, "precedence edge %v out of range [0,%d)", e, doc.N)
		}
		inst.D.Set(e[0], e[1], true)
	}

	var err error
	if doc.SetupForward != nil {
		if inst.SF, err = MatrixFromRows(doc.SetupForward); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "setup_forward")
		}
	}
	if doc.SetupBackward != nil {
		if inst.SB, err = MatrixFromRows(doc.SetupBackward); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "setup_backward")
		}
	}
	inst.Optimum = doc.Optimum
	inst.Directed = doc.Directed

	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// ImportJSON reads a JSON instance file at path. When the document carries no
// name, the file stem is used.
func ImportJSON(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "instance file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	inst, err := ReadJSON(f)
	if err != nil {
		return nil, err
	}
	if inst.Name == "" {
		inst.Name = Stem(path)
	}
	return inst, nil
}

// Load reads an instance file, choosing the decoder by extension: ".json"
// files use [ImportJSON], everything else is parsed as the sectioned format.
func Load(path string) (*Instance, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ImportJSON(path)
	}
	return ReadALB(path)
}
