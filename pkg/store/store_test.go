package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/linebalance/pkg/instance"
	"github.com/matzehuels/linebalance/pkg/pipeline"
)

func record(name string) *RunRecord {
	return &RunRecord{ID: uuid.NewString(), Instance: name, CreatedAt: time.Now().UTC()}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	a := record("a")
	if err := s.Save(ctx, a); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, a.ID)
	if err != nil || got.Instance != "a" {
		t.Fatalf("Get = %+v, %v", got, err)
	}

	got.Instance = "mutated"
	again, _ := s.Get(ctx, a.ID)
	if again.Instance != "a" {
		t.Error("Get should return a copy")
	}

	if _, err := s.Get(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var ids []string
	for i := range 5 {
		rec := record(fmt.Sprintf("inst%d", i%2))
		ids = append(ids, rec.ID)
		if err := s.Save(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	all, _ := s.List(ctx, ListFilter{})
	if len(all) != 5 || all[0].ID != ids[4] {
		t.Errorf("List should return all records newest first")
	}

	limited, _ := s.List(ctx, ListFilter{Limit: 2})
	if len(limited) != 2 || limited[1].ID != ids[3] {
		t.Errorf("Limit not applied: %d records", len(limited))
	}

	odd, _ := s.List(ctx, ListFilter{Instance: "inst1"})
	if len(odd) != 2 || odd[0].ID != ids[3] || odd[1].ID != ids[1] {
		t.Errorf("Instance filter returned %d records", len(odd))
	}
}

func TestMemoryStoreReplace(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	rec := record("a")
	_ = s.Save(ctx, rec)
	rec.Stations = 9
	_ = s.Save(ctx, rec)

	all, _ := s.List(ctx, ListFilter{})
	if len(all) != 1 || all[0].Stations != 9 {
		t.Errorf("re-saving should replace, got %d records", len(all))
	}
}

func TestMemoryStoreResaveIsNewest(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a, b := record("a"), record("b")
	_ = s.Save(ctx, a)
	_ = s.Save(ctx, b)
	_ = s.Save(ctx, a)

	all, _ := s.List(ctx, ListFilter{})
	if len(all) != 2 {
		t.Fatalf("List() returned %d records, want 2", len(all))
	}
	if all[0].ID != a.ID || all[1].ID != b.ID {
		t.Errorf("List() order = [%s %s], want the re-saved record first", all[0].Instance, all[1].Instance)
	}
}

func TestNewRecord(t *testing.T) {
	inst := instance.New("toy", 3, 10)
	copy(inst.T, []int{5, 5, 5})
	inst.SetOptimum(2)

	opts := pipeline.Options{Instance: inst, Seed: 4, Iterations: 10}
	res, err := pipeline.NewRunner(nil, nil, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	rec := NewRecord(res, opts)
	if !ValidID(rec.ID) {
		t.Errorf("ID %q is not a UUID", rec.ID)
	}
	if rec.Instance != "toy" || rec.N != 3 || rec.C != 10 {
		t.Errorf("identity fields = %+v", rec)
	}
	if rec.Best != 2 || rec.Stations != 2 || len(rec.Order) != 3 {
		t.Errorf("result fields = %+v", rec)
	}
	if rec.Seed != 4 || rec.Iterations != 10 || rec.Workers != 1 {
		t.Errorf("option fields = %+v", rec)
	}
	if rec.Optimum == nil || *rec.Optimum != 2 {
		t.Error("optimum not copied")
	}
}

func TestValidID(t *testing.T) {
	if ValidID("not-a-uuid") {
		t.Error("ValidID accepted garbage")
	}
	if !ValidID(uuid.NewString()) {
		t.Error("ValidID rejected a UUID")
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("LINEBALANCE_MONGO_URI")
	if uri == "" {
		t.Skip("LINEBALANCE_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, MongoOptions{URI: uri, Database: "linebalance_test", Collection: "runs_" + uuid.NewString()[:8]})
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer func() {
		_ = s.coll.Drop(ctx)
		_ = s.Close(ctx)
	}()

	a := record("a")
	a.CreatedAt = a.CreatedAt.Add(-time.Minute).Truncate(time.Millisecond)
	b := record("b")
	b.CreatedAt = b.CreatedAt.Truncate(time.Millisecond)
	for _, r := range []*RunRecord{a, b} {
		if err := s.Save(ctx, r); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := s.Get(ctx, a.ID)
	if err != nil || got.Instance != "a" {
		t.Fatalf("Get = %+v, %v", got, err)
	}
	if _, err := s.Get(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: %v", err)
	}

	all, err := s.List(ctx, ListFilter{})
	if err != nil || len(all) != 2 || all[0].ID != b.ID {
		t.Errorf("List = %d records, %v", len(all), err)
	}
	onlyA, _ := s.List(ctx, ListFilter{Instance: "a"})
	if len(onlyA) != 1 {
		t.Errorf("filtered List = %d records", len(onlyA))
	}
}
