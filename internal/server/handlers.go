package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/linebalance/pkg/bounds"
	"github.com/matzehuels/linebalance/pkg/buildinfo"
	"github.com/matzehuels/linebalance/pkg/errors"
	"github.com/matzehuels/linebalance/pkg/heuristic"
	"github.com/matzehuels/linebalance/pkg/instance"
	"github.com/matzehuels/linebalance/pkg/pipeline"
	"github.com/matzehuels/linebalance/pkg/render"
	"github.com/matzehuels/linebalance/pkg/store"
)

// solveRequest carries exactly one of ALB and Instance.
type solveRequest struct {
	Name     string          `json:"name" validate:"omitempty,max=128"`
	ALB      string          `json:"alb" validate:"required_without=Instance"`
	Instance json.RawMessage `json:"instance" validate:"required_without=ALB"`

	Seed       uint64 `json:"seed"`
	Iterations int    `json:"iterations" validate:"gte=0"`
	Workers    int    `json:"workers" validate:"gte=0,lte=64"`
	OnlyLB     bool   `json:"only_lb"`
	// DOT adds the Graphviz source of the solution to the response.
	DOT bool `json:"dot"`
}

type solveResponse struct {
	RunID    string             `json:"run_id"`
	Instance string             `json:"instance"`
	N        int                `json:"n"`
	C        int                `json:"c"`
	Optimum  *int               `json:"optimum,omitempty"`
	Bounds   bounds.LowerBounds `json:"bounds"`
	Best     int                `json:"best"`
	Solution *heuristic.Result  `json:"solution,omitempty"`
	Loads    []stationLoad      `json:"loads,omitempty"`
	Cache    cacheInfo          `json:"cache"`
	Duration float64            `json:"duration_ms"`
	DOT      string             `json:"dot,omitempty"`
}

type stationLoad struct {
	Station int   `json:"station"`
	Tasks   []int `json:"tasks"`
	Load    int   `json:"load"`
	Idle    int   `json:"idle"`
}

type cacheInfo struct {
	Bounds bool `json:"bounds"`
	Solve  bool `json:"solve"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req solveRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if err := s.checkRequest(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	inst, err := decodeInstance(&req, s.cfg.MaxTasks)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	opts := pipeline.Options{
		Instance:   inst,
		Seed:       req.Seed,
		Iterations: req.Iterations,
		Workers:    req.Workers,
		OnlyLB:     req.OnlyLB,
	}
	if opts.Seed == 0 {
		opts.Seed = s.defaults.Seed
	}
	if opts.Iterations == 0 {
		opts.Iterations = s.defaults.Iterations
	}
	if opts.Workers == 0 {
		opts.Workers = s.defaults.Workers
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	release, err := s.acquire(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	res, err := s.runner.Execute(r.Context(), opts)
	release()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	rec := store.NewRecord(res, opts)
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.logger.Warn("archive run failed", "instance", res.Name(), "err", err)
		rec.ID = ""
	}

	resp := solveResponse{
		RunID:    rec.ID,
		Instance: res.Name(),
		N:        inst.N,
		C:        inst.C,
		Optimum:  inst.Optimum,
		Bounds:   res.Bounds,
		Best:     res.Bounds.Best(),
		Solution: res.Solution,
		Cache:    cacheInfo{Bounds: res.CacheInfo.BoundsHit, Solve: res.CacheInfo.SolveHit},
		Duration: float64(res.Stats.Total()) / float64(time.Millisecond),
	}
	if res.Solution != nil {
		for _, l := range heuristic.Loads(res.Problem, res.Solution) {
			resp.Loads = append(resp.Loads, stationLoad{Station: l.Station, Tasks: l.Tasks, Load: l.Load(), Idle: l.Idle})
		}
	}
	if req.DOT {
		resp.DOT = render.ToDOT(res.Problem, res.Solution, render.Options{Detailed: true})
	}
	writeJSON(w, http.StatusOK, resp)
}

// checkRequest applies struct validation and the limits that depend on the
// server configuration.
func (s *Server) checkRequest(req *solveRequest) error {
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.New(errors.ErrCodeInvalidInput, "%s: failed %q constraint", strings.ToLower(fe.Field()), fe.Tag())
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "validate request")
	}
	if req.ALB != "" && len(req.Instance) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "give either alb or instance, not both")
	}
	if req.Iterations > s.cfg.MaxIterations {
		return errors.New(errors.ErrCodeInvalidInput, "iterations must be <= %d (got %d)", s.cfg.MaxIterations, req.Iterations)
	}
	if req.Name != "" {
		if err := errors.ValidateInstanceName(req.Name); err != nil {
			return err
		}
	}
	return nil
}

func decodeInstance(req *solveRequest, maxTasks int) (*instance.Instance, error) {
	name := req.Name
	if name == "" {
		name = "request"
	}
	limit := instance.WithMaxTasks(maxTasks)
	if req.ALB != "" {
		return instance.ParseALB(strings.NewReader(req.ALB), name, limit)
	}
	inst, err := instance.DecodeJSON(req.Instance, limit)
	if err != nil {
		return nil, err
	}
	if req.Name != "" || inst.Name == "" {
		inst.Name = name
	}
	return inst, nil
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	f := store.ListFilter{Instance: r.URL.Query().Get("instance")}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 1000 {
			writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "limit must be an integer in [1,1000]"))
			return
		}
		f.Limit = n
	}

	runs, err := s.store.List(r.Context(), f)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if runs == nil {
		runs = []*store.RunRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !store.ValidID(id) {
		writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "malformed run id %q", id))
		return
	}
	rec, err := s.store.Get(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "run %s not found", id))
		return
	}
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// statusFor maps an error to an HTTP status. Rejected instances are 422,
// everything unclassified is a server error.
func statusFor(err error) int {
	switch {
	case errors.IsInstanceError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case stderrors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: errors.UserMessage(err)}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
