// Package store archives solve runs.
//
// A [RunRecord] captures the instance identity, the options, the bounds and
// the chosen solution of one pipeline run. Backends implement [Store]:
// [MemoryStore] for the default server and tests, [MongoStore] for a
// persistent archive shared by the CLI and the server.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/linebalance/pkg/bounds"
	"github.com/matzehuels/linebalance/pkg/pipeline"
)

// ErrNotFound is returned by Get for unknown run IDs.
var ErrNotFound = errors.New("run not found")

// DefaultListLimit caps List when the filter sets no limit.
const DefaultListLimit = 50

// RunRecord is one archived pipeline run.
type RunRecord struct {
	ID           string `json:"id" bson:"_id"`
	Instance     string `json:"instance" bson:"instance"`
	InstanceHash string `json:"instance_hash" bson:"instance_hash"`
	N            int    `json:"n" bson:"n"`
	C            int    `json:"c" bson:"c"`
	Optimum      *int   `json:"optimum,omitempty" bson:"optimum,omitempty"`

	Seed       uint64 `json:"seed" bson:"seed"`
	Iterations int    `json:"iterations" bson:"iterations"`
	Workers    int    `json:"workers" bson:"workers"`
	OnlyLB     bool   `json:"only_lb" bson:"only_lb"`

	Bounds     bounds.LowerBounds `json:"bounds" bson:"bounds"`
	Best       int                `json:"best" bson:"best"`
	Stations   int                `json:"stations,omitempty" bson:"stations,omitempty"`
	Order      []int              `json:"order,omitempty" bson:"order,omitempty"`
	Assignment []int              `json:"assignment,omitempty" bson:"assignment,omitempty"`

	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	Duration  time.Duration `json:"duration_ns" bson:"duration_ns"`
}

// NewRecord builds a record for res with a fresh UUID. opts must have been
// validated by the run that produced res.
func NewRecord(res *pipeline.Result, opts pipeline.Options) *RunRecord {
	rec := &RunRecord{
		ID:           uuid.NewString(),
		Instance:     res.Name(),
		InstanceHash: res.InstanceHash,
		N:            res.Instance.N,
		C:            res.Instance.C,
		Optimum:      res.Instance.Optimum,
		Seed:         opts.Seed,
		Iterations:   opts.Iterations,
		Workers:      opts.Workers,
		OnlyLB:       opts.OnlyLB,
		Bounds:       res.Bounds,
		Best:         res.Bounds.Best(),
		CreatedAt:    time.Now().UTC(),
		Duration:     res.Stats.Total(),
	}
	if sol := res.Solution; sol != nil {
		rec.Stations = sol.Stations
		rec.Order = sol.Order
		rec.Assignment = sol.Assignment
	}
	return rec
}

// ListFilter selects records for List. Records are returned newest first.
type ListFilter struct {
	Instance string // exact instance name, empty for all
	Limit    int    // at most this many, DefaultListLimit when <= 0
}

func (f ListFilter) limit() int {
	if f.Limit <= 0 {
		return DefaultListLimit
	}
	return f.Limit
}

// Store persists run records.
type Store interface {
	Save(ctx context.Context, rec *RunRecord) error
	// Get returns ErrNotFound for unknown IDs.
	Get(ctx context.Context, id string) (*RunRecord, error)
	List(ctx context.Context, f ListFilter) ([]*RunRecord, error)
	Close(ctx context.Context) error
}

// ValidID reports whether id is a well-formed run ID.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}
