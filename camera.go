package tinsel

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var worldUp = r3.Vec{Y: 1}

// CameraConfig holds the camera controller's tuning. Distances are world
// units, rates are per second.
type CameraConfig struct {
	Ribbon Ribbon `toml:"ribbon" envPrefix:"RIBBON_"`

	// TransitionDelay is how long the camera holds still after entering
	// StateTree before the climb starts.
	TransitionDelay float64 `toml:"transition_delay" env:"TRANSITION_DELAY"`
	// MinVelocity and MaxVelocity bound the climb speed in t per second.
	MinVelocity float64 `toml:"min_velocity" env:"MIN_VELOCITY"`
	MaxVelocity float64 `toml:"max_velocity" env:"MAX_VELOCITY"`
	// VelocityRate is how fast the climb speed eases toward its target.
	VelocityRate float64 `toml:"velocity_rate" env:"VELOCITY_RATE"`
	// FollowRate eases position and look-at toward their per-frame targets.
	FollowRate float64 `toml:"follow_rate" env:"FOLLOW_RATE"`
	// ZoomRate eases the smoothed zoom toward the raw zoom input.
	ZoomRate float64 `toml:"zoom_rate" env:"ZOOM_RATE"`

	// ClimbDistance and ClimbLift offset the camera outward and upward from
	// the ribbon point while climbing. ClimbZoomFactor damps zoom mid-climb.
	ClimbDistance   float64 `toml:"climb_distance" env:"CLIMB_DISTANCE"`
	ClimbLift       float64 `toml:"climb_lift" env:"CLIMB_LIFT"`
	ClimbZoomFactor float64 `toml:"climb_zoom_factor" env:"CLIMB_ZOOM_FACTOR"`

	// TopLift and TopDistance place the camera above and in front of the
	// ribbon's top once the focal point is reached.
	TopLift     float64 `toml:"top_lift" env:"TOP_LIFT"`
	TopDistance float64 `toml:"top_distance" env:"TOP_DISTANCE"`

	// GalaxyDistance and FocusDistance are the orbit radii before zoom.
	GalaxyDistance float64 `toml:"galaxy_distance" env:"GALAXY_DISTANCE"`
	FocusDistance  float64 `toml:"focus_distance" env:"FOCUS_DISTANCE"`
	// MinDistance and MaxDistance clamp every zoom-adjusted orbit radius.
	MinDistance float64 `toml:"min_distance" env:"MIN_DISTANCE"`
	MaxDistance float64 `toml:"max_distance" env:"MAX_DISTANCE"`

	// HandRangeX and HandRangeY map a normalized hand position to world
	// space in galaxy hand-follow.
	HandRangeX float64 `toml:"hand_range_x" env:"HAND_RANGE_X"`
	HandRangeY float64 `toml:"hand_range_y" env:"HAND_RANGE_Y"`

	// MaxStep caps a single frame delta so a stalled frame cannot jump the
	// climb. Zero disables the cap.
	MaxStep float64 `toml:"max_step" env:"MAX_STEP"`
}

// DefaultCameraConfig returns the scene's camera tuning.
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Ribbon:          DefaultRibbon(),
		TransitionDelay: 2.0,
		MinVelocity:     0.05,
		MaxVelocity:     0.12,
		VelocityRate:    2.5,
		FollowRate:      2.5,
		ZoomRate:        5,
		ClimbDistance:   4.5,
		ClimbLift:       1.2,
		ClimbZoomFactor: 0.5,
		TopLift:         1.5,
		TopDistance:     7,
		GalaxyDistance:  20,
		FocusDistance:   9,
		MinDistance:     4,
		MaxDistance:     35,
		HandRangeX:      12,
		HandRangeY:      8,
		MaxStep:         0.1,
	}
}

func (c CameraConfig) distance(base, zoom float64) float64 {
	return Range{Min: c.MinDistance, Max: c.MaxDistance}.Clamp(base + zoom)
}

// CameraInput is everything the controller reads from outside each frame.
type CameraInput struct {
	State AppState
	Orbit OrbitRotation
	// Hand is only used when HandTracked is true. It may be a frame or two
	// stale; the controller does not care.
	Hand        HandPosition
	HandTracked bool
	// Zoom is the raw zoom offset added to the camera distance.
	Zoom float64
}

// CameraMotion is the controller's persisted state. Only StepCamera writes it.
type CameraMotion struct {
	Position r3.Vec
	Target   r3.Vec

	// T is the climb progress along the ribbon, in [0, 1].
	T float64
	// Velocity is the climb speed in t per second, never negative.
	Velocity float64
	// Delay is the remaining hold time, in seconds, after entering tree.
	Delay float64
	// Reached is set once the climb arrives at t = 1.
	Reached bool
	// Zoom is the smoothed zoom offset.
	Zoom float64
	// Mode is the application state seen on the previous frame.
	Mode AppState
}

// CameraFrame is the controller's per-frame output for the renderer.
type CameraFrame struct {
	Position r3.Vec
	Target   r3.Vec
	Reached  bool
	// ReachedEdge is true only on the frame the climb arrives at the top.
	ReachedEdge bool
}

// NewCameraMotion returns a motion state parked at the bottom of the ribbon
// in StateTree, ready to climb.
func NewCameraMotion(cfg CameraConfig) CameraMotion {
	pos, target := climbPose(cfg, 0, 0)
	return CameraMotion{
		Position: pos,
		Target:   target,
		Velocity: cfg.MinVelocity,
		Mode:     StateTree,
	}
}

// Frame returns the output describing m without advancing it.
func (m CameraMotion) Frame() CameraFrame {
	return CameraFrame{Position: m.Position, Target: m.Target, Reached: m.Reached}
}

// smoothing returns the frame-rate independent easing factor 1 - e^(-rate*dt).
func smoothing(rate, dt float64) float64 {
	return 1 - math.Exp(-rate*dt)
}

func lerpVec(a, b r3.Vec, k float64) r3.Vec {
	return r3.Add(a, r3.Scale(k, r3.Sub(b, a)))
}

// StepCamera advances m by dt seconds. A non-positive dt is a no-op: m and
// the returned frame are unchanged.
func StepCamera(m CameraMotion, in CameraInput, dt float64, cfg CameraConfig) (CameraMotion, CameraFrame) {
	if !(dt > 0) {
		return m, m.Frame()
	}
	if cfg.MaxStep > 0 && dt > cfg.MaxStep {
		dt = cfg.MaxStep
	}

	m.Zoom += (in.Zoom - m.Zoom) * smoothing(cfg.ZoomRate, dt)

	if in.State != m.Mode {
		if in.State == StateTree {
			m.T = cfg.Ribbon.Nearest(m.Position)
			m.Delay = cfg.TransitionDelay
			m.Velocity = cfg.MinVelocity
		}
		m.Reached = false
		m.Mode = in.State
	}

	// The frame that finishes the countdown still holds.
	holding := m.Delay > 0
	if holding {
		m.Delay = math.Max(0, m.Delay-dt)
	}

	var pos, target r3.Vec
	edge := false
	switch {
	case m.Mode == StateTree && holding:
		pos, target = m.Position, m.Target
	case m.Mode == StateTree:
		if !m.Reached {
			edge = m.climb(dt, cfg)
		}
		if m.Reached {
			pos, target = topPose(cfg, m.Zoom)
		} else {
			pos, target = climbPose(cfg, m.T, m.Zoom)
		}
	case m.Mode == StateGalaxy && in.HandTracked && !holding:
		pos, target = handPose(cfg, in.Hand, m.Zoom)
	default:
		pos, target = orbitPose(cfg, m.Mode, in.Orbit, m.Zoom)
	}

	k := smoothing(cfg.FollowRate, dt)
	m.Position = lerpVec(m.Position, pos, k)
	m.Target = lerpVec(m.Target, target, k)

	f := m.Frame()
	f.ReachedEdge = edge
	return m, f
}

// climb advances T with the eased velocity profile: slow at both ends of the
// ribbon, fastest halfway up. Reports true on the frame T reaches 1.
func (m *CameraMotion) climb(dt float64, cfg CameraConfig) bool {
	want := cfg.MinVelocity + (cfg.MaxVelocity-cfg.MinVelocity)*math.Sin(m.T*math.Pi)
	m.Velocity += (want - m.Velocity) * smoothing(cfg.VelocityRate, dt)
	m.Velocity = math.Max(m.Velocity, 0)
	m.T = math.Min(m.T+m.Velocity*dt, 1)
	if m.T >= 1 {
		m.Reached = true
		return true
	}
	return false
}

// climbPose places the camera outward and above the ribbon point at t, with
// zoom damped by ClimbZoomFactor, looking at the point.
func climbPose(cfg CameraConfig, t, zoom float64) (pos, target r3.Vec) {
	p := cfg.Ribbon.Point(t)
	out := cfg.Ribbon.Outward(t)
	reach := cfg.ClimbDistance + cfg.ClimbZoomFactor*zoom
	pos = r3.Add(p, r3.Add(r3.Scale(reach, out), r3.Scale(cfg.ClimbLift, worldUp)))
	return pos, p
}

// topPose holds the camera above and in front of the ribbon's top with full
// zoom on the forward offset.
func topPose(cfg CameraConfig, zoom float64) (pos, target r3.Vec) {
	top := cfg.Ribbon.Point(1)
	pos = r3.Add(top, r3.Vec{Y: cfg.TopLift, Z: cfg.TopDistance + zoom})
	return pos, top
}

// handPose maps a normalized hand position onto the galaxy plane. Image Y
// grows downward, world Y grows upward.
func handPose(cfg CameraConfig, hand HandPosition, zoom float64) (pos, target r3.Vec) {
	pos = r3.Vec{
		X: (2*hand.X - 1) * cfg.HandRangeX,
		Y: (1 - 2*hand.Y) * cfg.HandRangeY,
		Z: cfg.distance(cfg.GalaxyDistance, zoom),
	}
	return pos, r3.Vec{}
}

// orbitPose is the spherical orbit around the origin.
func orbitPose(cfg CameraConfig, mode AppState, orbit OrbitRotation, zoom float64) (pos, target r3.Vec) {
	base := cfg.GalaxyDistance
	if mode == StateFocus {
		base = cfg.FocusDistance
	}
	d := cfg.distance(base, zoom)
	cp := math.Cos(orbit.Pitch)
	pos = r3.Vec{
		X: d * cp * math.Sin(orbit.Yaw),
		Y: d * math.Sin(orbit.Pitch),
		Z: d * cp * math.Cos(orbit.Yaw),
	}
	return pos, r3.Vec{}
}

// CameraController owns a CameraMotion and steps it once per rendered frame.
type CameraController struct {
	cfg    CameraConfig
	motion CameraMotion
	frame  CameraFrame
}

// NewCameraController creates a controller parked at the bottom of the ribbon.
func NewCameraController(cfg CameraConfig) *CameraController {
	m := NewCameraMotion(cfg)
	return &CameraController{cfg: cfg, motion: m, frame: m.Frame()}
}

// Step advances the camera by dt seconds and returns the new frame.
func (c *CameraController) Step(dt float64, in CameraInput) CameraFrame {
	c.motion, c.frame = StepCamera(c.motion, in, dt, c.cfg)
	return c.frame
}

// Motion returns a copy of the persisted motion state.
func (c *CameraController) Motion() CameraMotion {
	return c.motion
}

// Frame returns the most recent output.
func (c *CameraController) Frame() CameraFrame {
	return c.frame
}

// Config returns the controller's tuning.
func (c *CameraController) Config() CameraConfig {
	return c.cfg
}

// --- Projection ---

// Projection maps world points to a screen viewport for a simple pinhole
// camera looking from Position at Target.
type Projection struct {
	Viewport Rect
	// FOV is the vertical field of view in radians.
	FOV float64
	// Near discards points closer than this along the view axis.
	Near float64
}

// WorldToScreen projects p through the camera frame f. ok is false when p is
// behind the near plane.
func (pr Projection) WorldToScreen(f CameraFrame, p r3.Vec) (sx, sy float64, ok bool) {
	fwd := r3.Sub(f.Target, f.Position)
	if r3.Norm(fwd) == 0 {
		return 0, 0, false
	}
	fwd = r3.Unit(fwd)
	right := r3.Cross(fwd, worldUp)
	if r3.Norm(right) < 1e-9 {
		right = r3.Vec{X: 1}
	}
	right = r3.Unit(right)
	up := r3.Cross(right, fwd)

	d := r3.Sub(p, f.Position)
	z := r3.Dot(d, fwd)
	if z <= pr.Near {
		return 0, 0, false
	}
	focal := (pr.Viewport.Height / 2) / math.Tan(pr.FOV/2)
	cx := pr.Viewport.X + pr.Viewport.Width/2
	cy := pr.Viewport.Y + pr.Viewport.Height/2
	sx = cx + r3.Dot(d, right)*focal/z
	sy = cy - r3.Dot(d, up)*focal/z
	return sx, sy, true
}
