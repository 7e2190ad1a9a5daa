package trajectory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Genius6942/pathgen"
	"github.com/Genius6942/pathgen/bezier"
	"github.com/Genius6942/pathgen/catmull"
	"github.com/Genius6942/pathgen/profile"
	"github.com/Genius6942/pathgen/waypoint"
)

var (
	// ErrGeneratorPanic indicates a generator which panicked.
	ErrGeneratorPanic = errors.New("trajectory generator failed")
	// ErrNonFinite indicates a trajectory with NaN or infinite values.
	ErrNonFinite = errors.New("trajectory has non-finite values")
)

// Limits returns the velocity profiler limits of cfg.
func (cfg Config) Limits() profile.Limits {
	return profile.Limits{
		MaxVelocity:     cfg.MaxVelocity,
		MaxAcceleration: cfg.MaxAcceleration,
		K:               cfg.CurvatureFactor,
	}
}

// NewGenerator returns the run generator for the algorithm of cfg.
func NewGenerator(cfg Config) (Generator, error) {
	if err := cfg.Valid(); err != nil {
		return nil, err
	}
	switch cfg.Algorithm {
	case CatmullRom:
		return GeneratorFunc(func(run []waypoint.ControlPoint) ([]pathgen.GeneratedPoint, error) {
			return catmull.Generate(waypoint.Positions(run), cfg.DistanceBetween)
		}), nil
	case CatmullRomProfiled:
		return GeneratorFunc(func(run []waypoint.ControlPoint) ([]pathgen.GeneratedPoint, error) {
			return catmull.GenerateProfiled(waypoint.Positions(run), cfg.DistanceBetween, cfg.Limits())
		}), nil
	}
	return SplineGenerator{
		Step:         cfg.DistanceBetween,
		Limits:       cfg.Limits(),
		SmoothJoints: cfg.SmoothJoints,
	}, nil
}

// SplineGenerator creates sub-trajectories from cubic Bezier splines through
// the points of a run. Samples are spaced equally along the arc, and speeds
// are assigned by the velocity profiler.
type SplineGenerator struct {
	Step         float64        // distance between samples
	Limits       profile.Limits // velocity profile limits
	SmoothJoints bool           // align outgoing handles with incoming ones
}

// GenerateRun is part of interface Generator.
func (g SplineGenerator) GenerateRun(run []waypoint.ControlPoint) ([]pathgen.GeneratedPoint, error) {
	if len(run) < 2 {
		return nil, fmt.Errorf("%w: got %d", pathgen.ErrInsufficientPoints, len(run))
	}
	ctrl := ExpandRun(FillHandles(run))
	if g.SmoothJoints {
		ctrl = bezier.AlignOutgoing(ctrl)
	}
	spline, err := bezier.NewSpline(ctrl)
	if err != nil {
		return nil, err
	}
	samples, err := spline.SpaceInject(g.Step)
	if err != nil {
		return nil, err
	}
	profiled := make([]profile.Sample, len(samples))
	for i, s := range samples {
		profiled[i] = profile.Sample{Position: s.Position, U: s.U}
	}
	speeds := profile.Profile(profiled, spline, g.Limits)
	path := make([]pathgen.GeneratedPoint, len(samples))
	for i, s := range samples {
		path[i] = pathgen.GP(s.Position, speeds[i], i)
	}
	return path, nil
}

// GenerateE creates the trajectory for points with the settings of cfg.
// Missing or invalid numeric settings are replaced by defaults. Fewer than 2
// points result in an empty trajectory. A panicking generator is recovered
// and reported as ErrGeneratorPanic.
func GenerateE(points []waypoint.ControlPoint, cfg Config) ([]pathgen.GeneratedPoint, error) {
	cfg = cfg.Normalized()
	gen, err := NewGenerator(cfg)
	if err != nil {
		return nil, err
	}
	return generate(points, gen)
}

func generate(points []waypoint.ControlPoint, gen Generator) (path []pathgen.GeneratedPoint, err error) {
	defer func() {
		if r := recover(); r != nil {
			path, err = nil, fmt.Errorf("%w: %v", ErrGeneratorPanic, r)
		}
	}()
	if path, err = Build(points, gen); err != nil {
		return nil, err
	}
	if i := pathgen.Finite(path); i >= 0 {
		return nil, fmt.Errorf("%w at point #%d: %s", ErrNonFinite, i, path[i])
	}
	return path, nil
}

// Generate creates the trajectory for points with the settings of cfg. It
// never fails: if no trajectory can be created, the result is empty.
func Generate(points []waypoint.ControlPoint, cfg Config) []pathgen.GeneratedPoint {
	path, err := GenerateE(points, cfg)
	if err != nil {
		tracer().Errorf("cannot generate trajectory: %v", err)
		return []pathgen.GeneratedPoint{}
	}
	return path
}

// Recomputer regenerates a trajectory whenever the control points change,
// keeping the last good trajectory if regeneration fails. It is safe for
// concurrent use.
type Recomputer struct {
	mu   sync.Mutex
	cfg  Config
	last []pathgen.GeneratedPoint
}

// NewRecomputer creates a Recomputer for settings cfg, with an empty
// trajectory.
func NewRecomputer(cfg Config) *Recomputer {
	return &Recomputer{cfg: cfg, last: []pathgen.GeneratedPoint{}}
}

// SetConfig changes the settings for subsequent recomputations.
func (r *Recomputer) SetConfig(cfg Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg = cfg
}

// Recompute generates the trajectory for points. On success the result
// replaces the kept trajectory. On failure the error is returned together
// with the trajectory kept from before.
func (r *Recomputer) Recompute(points []waypoint.ControlPoint) ([]pathgen.GeneratedPoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	path, err := GenerateE(points, r.cfg)
	if err != nil {
		tracer().Errorf("recomputation failed, keeping %d points: %v", len(r.last), err)
		return r.copyLast(), err
	}
	r.last = path
	return r.copyLast(), nil
}

// Last returns a copy of the kept trajectory.
func (r *Recomputer) Last() []pathgen.GeneratedPoint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.copyLast()
}

func (r *Recomputer) copyLast() []pathgen.GeneratedPoint {
	return append([]pathgen.GeneratedPoint{}, r.last...)
}
