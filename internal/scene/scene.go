package scene

import (
	"errors"
	"fmt"
	"log"

	"voxelscene/internal/camera"
	"voxelscene/internal/meshing"
	"voxelscene/internal/world"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Options configures a Scene.
type Options struct {
	Seed   int64
	Stones int // random stack placement attempts after the fixed layout

	Width, Height int

	// OrbitSpeed is the light orbit rate in degrees per second.
	OrbitSpeed float32
	// GlobalAngle rotates the whole world about the Y axis, in degrees.
	GlobalAngle float32

	FOV         float32
	MoveSpeed   float32
	PanStep     float32
	Sensitivity float32

	// Notify receives errors that abort a user operation. It is called
	// synchronously; the default logs.
	Notify func(error)
}

// DefaultOptions returns the start-up configuration.
func DefaultOptions() Options {
	return Options{
		Seed:        1,
		Stones:      15,
		Width:       900,
		Height:      600,
		OrbitSpeed:  7.5,
		GlobalAngle: 5,
		FOV:         camera.DefaultFOV,
		MoveSpeed:   0.2,
		PanStep:     5,
		Sensitivity: camera.DefaultSensitivity,
	}
}

// Sphere prop placement and the terrain cells kept clear around it.
var sphereOrigin = mgl32.Vec3{0.5, 1, -3}

const (
	sphereRadius = 1.0
	sphereBands  = 20

	sphereKeepOutX = 17
	sphereKeepOutZ = 13
	sphereKeepOutR = 3
)

// Scene owns all mutable state of one session: the voxel grid, the camera,
// the lights and the reusable per-frame batches. It is not safe for
// concurrent use; the render thread owns it.
type Scene struct {
	opts Options

	grid   *world.Grid
	cam    *camera.Camera
	light  Lighting
	sphere *meshing.Sphere

	globalAngle float32
	placed      int

	groups  [groupCount]*meshing.Batch
	buffers *vertexBuffers
}

// New seeds a grid and builds a scene around it.
func New(opts Options) *Scene {
	grid := world.New()
	placed := world.NewGenerator(opts.Seed, opts.Stones).Seed(grid)
	s := NewWithGrid(grid, opts)
	s.placed = placed
	return s
}

// NewWithGrid builds a scene around an already seeded grid.
func NewWithGrid(grid *world.Grid, opts Options) *Scene {
	if opts.Notify == nil {
		opts.Notify = func(err error) { log.Printf("scene: %v", err) }
	}
	cam := camera.New(opts.Width, opts.Height)
	if opts.Sensitivity > 0 {
		cam.SetSensitivity(opts.Sensitivity)
	}
	if opts.FOV > 0 {
		cam.SetFOV(opts.FOV)
	}
	s := &Scene{
		opts:        opts,
		grid:        grid,
		cam:         cam,
		light:       DefaultLighting(),
		sphere:      meshing.NewSphere(sphereRadius, sphereBands, sphereBands),
		globalAngle: opts.GlobalAngle,
	}
	for i := range s.groups {
		s.groups[i] = meshing.NewBatch(true)
	}
	return s
}

func (s *Scene) Grid() *world.Grid       { return s.grid }
func (s *Scene) Camera() *camera.Camera  { return s.cam }
func (s *Scene) Lighting() Lighting      { return s.light }
func (s *Scene) GlobalAngle() float32    { return s.globalAngle }
func (s *Scene) RandomStonesPlaced() int { return s.placed }

// Tick advances time-driven state by dt seconds.
func (s *Scene) Tick(dt float64) {
	s.light.advance(s.opts.OrbitSpeed * float32(dt))
}

// SetLightAngle sets the orbit angle from the slider.
func (s *Scene) SetLightAngle(deg float32) {
	s.light.Angle = wrapDegrees(deg)
	s.light.advance(0)
}

// SetLightDragging marks whether the slider is held. While held the orbit
// does not advance and the slider value is authoritative.
func (s *Scene) SetLightDragging(dragging bool) {
	s.light.Dragging = dragging
}

func (s *Scene) SetLightColor(c mgl32.Vec3) {
	s.light.LightColor = c
}

// SetLightColorHex sets the light color from a "#rrggbb" string.
func (s *Scene) SetLightColorHex(hex string) error {
	c, err := ParseHexColor(hex)
	if err != nil {
		return err
	}
	s.light.LightColor = c
	return nil
}

func (s *Scene) ToggleLighting()  { s.light.LightingOn = !s.light.LightingOn }
func (s *Scene) ToggleSpotlight() { s.light.SpotlightOn = !s.light.SpotlightOn }
func (s *Scene) ToggleNormals()   { s.light.ShowNormals = !s.light.ShowNormals }

func (s *Scene) SetGlobalAngle(deg float32) {
	s.globalAngle = wrapDegrees(deg)
}

// SetViewport forwards a framebuffer resize to the camera. A minimized
// window reports a zero height and keeps the previous aspect.
func (s *Scene) SetViewport(width, height int) {
	_ = s.cam.SetViewport(width, height)
}

// TargetCell returns the grid cell one unit ahead of the eye. It steps
// along the look direction and rounds; it does not ray-cast against voxels.
func (s *Scene) TargetCell() (x, z int, err error) {
	f, err := s.cam.Forward()
	if err != nil {
		return 0, 0, err
	}
	p := s.cam.Eye().Add(f)
	x = roundHalfUp(p.X()) + world.GridOffset
	z = roundHalfUp(p.Z()) + world.GridOffset
	return x, z, nil
}

// ModifyBlock raises (direction > 0) or lowers (direction < 0) the stack at
// the target cell by one and returns the new height. An out-of-bounds target
// is logged and leaves the grid unchanged.
func (s *Scene) ModifyBlock(direction int) (int, error) {
	x, z, err := s.TargetCell()
	if err != nil {
		s.opts.Notify(err)
		return 0, err
	}
	delta := 0
	switch {
	case direction > 0:
		delta = 1
	case direction < 0:
		delta = -1
	}
	h, err := s.grid.SetHeight(x, z, delta)
	if err != nil {
		if errors.Is(err, world.ErrOutOfBounds) {
			log.Printf("target block is out of bounds: %d %d", x, z)
		}
		return 0, err
	}
	log.Printf("block at (%d, %d) modified to height %d", x, z, h)
	return h, nil
}

// PointerDelta turns locked-pointer motion into camera yaw and pitch.
func (s *Scene) PointerDelta(dx, dy float64) {
	s.report(s.cam.OnPointerDelta(float32(dx), float32(dy)))
}

func (s *Scene) report(err error) {
	if err != nil {
		s.opts.Notify(fmt.Errorf("camera: %w", err))
	}
}

// roundHalfUp rounds halves toward positive infinity.
func roundHalfUp(v float32) int {
	return int(math32.Floor(v + 0.5))
}
