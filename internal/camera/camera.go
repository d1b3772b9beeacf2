package camera

import (
	"errors"

	"voxelscene/internal/vecmath"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultFOV         = 60.0
	DefaultSensitivity = 0.2
	NearPlane          = 0.1
	FarPlane           = 1000.0

	// MaxPitch bounds the elevation of the look direction in degrees.
	MaxPitch = 89.0
)

var (
	StartEye = mgl32.Vec3{0, 10, 19}
	StartAt  = mgl32.Vec3{-1, 10, 0}
	WorldUp  = mgl32.Vec3{0, 1, 0}
)

// Camera is a free-flying look-at camera. Every mutator recomputes the cached
// view and projection matrices before returning.
type Camera struct {
	eye mgl32.Vec3
	at  mgl32.Vec3
	up  mgl32.Vec3

	fov         float32
	aspect      float32
	sensitivity float32

	view       mgl32.Mat4
	projection mgl32.Mat4
}

// New creates a camera at the start pose for a viewport of the given size.
func New(width, height int) *Camera {
	return NewWithPose(StartEye, StartAt, WorldUp, width, height)
}

// NewWithPose creates a camera with an explicit pose.
func NewWithPose(eye, at, up mgl32.Vec3, width, height int) *Camera {
	c := &Camera{
		eye:         eye,
		at:          at,
		up:          up,
		fov:         DefaultFOV,
		aspect:      1,
		sensitivity: DefaultSensitivity,
	}
	if height > 0 {
		c.aspect = float32(width) / float32(height)
	}
	c.updateViewMatrix()
	c.updateProjectionMatrix()
	return c
}

func (c *Camera) Eye() mgl32.Vec3 { return c.eye }
func (c *Camera) At() mgl32.Vec3  { return c.at }
func (c *Camera) Up() mgl32.Vec3  { return c.up }

func (c *Camera) FOV() float32         { return c.fov }
func (c *Camera) AspectRatio() float32 { return c.aspect }
func (c *Camera) Sensitivity() float32 { return c.sensitivity }

// View returns the cached look-at matrix.
func (c *Camera) View() mgl32.Mat4 { return c.view }

// Projection returns the cached perspective matrix.
func (c *Camera) Projection() mgl32.Mat4 { return c.projection }

// Forward returns the unit look direction.
func (c *Camera) Forward() (mgl32.Vec3, error) {
	return vecmath.Normalize(c.at.Sub(c.eye))
}

// Pitch returns the elevation of the look direction in degrees.
func (c *Camera) Pitch() float32 {
	return vecmath.Elevation(c.at.Sub(c.eye))
}

// SetViewport updates the aspect ratio. A zero height keeps the previous aspect.
func (c *Camera) SetViewport(width, height int) error {
	if height <= 0 {
		return vecmath.ErrDivideByZero
	}
	c.aspect = float32(width) / float32(height)
	c.updateProjectionMatrix()
	return nil
}

func (c *Camera) SetFOV(deg float32) {
	c.fov = deg
	c.updateProjectionMatrix()
}

func (c *Camera) SetSensitivity(s float32) {
	c.sensitivity = s
}

// SetPose replaces eye, at and up.
func (c *Camera) SetPose(eye, at, up mgl32.Vec3) {
	c.eye, c.at, c.up = eye, at, up
	c.updateViewMatrix()
}

// MoveForward translates eye and target along the look direction.
func (c *Camera) MoveForward(speed float32) error {
	f, err := vecmath.Normalize(c.at.Sub(c.eye))
	if err != nil {
		return err
	}
	c.translate(f.Mul(speed))
	return nil
}

// MoveBackward translates eye and target against the look direction.
func (c *Camera) MoveBackward(speed float32) error {
	b, err := vecmath.Normalize(c.eye.Sub(c.at))
	if err != nil {
		return err
	}
	c.translate(b.Mul(speed))
	return nil
}

// MoveLeft strafes along up × forward.
func (c *Camera) MoveLeft(speed float32) error {
	s, err := vecmath.Normalize(c.up.Cross(c.at.Sub(c.eye)))
	if err != nil {
		return err
	}
	c.translate(s.Mul(speed))
	return nil
}

// MoveRight strafes along forward × up.
func (c *Camera) MoveRight(speed float32) error {
	s, err := vecmath.Normalize(c.at.Sub(c.eye).Cross(c.up))
	if err != nil {
		return err
	}
	c.translate(s.Mul(speed))
	return nil
}

// PanLeft yaws the look direction about the up axis by deg degrees.
func (c *Camera) PanLeft(deg float32) error {
	f := c.at.Sub(c.eye)
	rotated, err := vecmath.RotateDeg(f, c.up, deg)
	if err != nil {
		return err
	}
	c.at = c.eye.Add(rotated)
	c.updateViewMatrix()
	return nil
}

func (c *Camera) PanRight(deg float32) error {
	return c.PanLeft(-deg)
}

// LookUp pitches the look direction about the camera's right axis by deg
// degrees. The result is limited to ±MaxPitch so the view never flips over
// the pole; a request past the limit stops at it.
func (c *Camera) LookUp(deg float32) error {
	f := c.at.Sub(c.eye)
	right, err := vecmath.Normalize(f.Cross(c.up))
	if err != nil {
		return err
	}
	pitch := vecmath.Elevation(f)
	target := mgl32.Clamp(pitch+deg, -MaxPitch, MaxPitch)
	deg = target - pitch
	if deg == 0 {
		return nil
	}
	rotated, err := vecmath.RotateDeg(f, right, deg)
	if err != nil {
		return err
	}
	c.at = c.eye.Add(rotated)
	c.updateViewMatrix()
	return nil
}

func (c *Camera) LookDown(deg float32) error {
	return c.LookUp(-deg)
}

// OnPointerDelta turns raw pointer motion into yaw then pitch.
func (c *Camera) OnPointerDelta(dx, dy float32) error {
	yaw := -dx * c.sensitivity
	pitch := -dy * c.sensitivity
	return errors.Join(c.PanLeft(yaw), c.LookUp(pitch))
}

func (c *Camera) translate(d mgl32.Vec3) {
	c.eye = c.eye.Add(d)
	c.at = c.at.Add(d)
	c.updateViewMatrix()
}

func (c *Camera) updateViewMatrix() {
	c.view = mgl32.LookAtV(c.eye, c.at, c.up)
}

func (c *Camera) updateProjectionMatrix() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, NearPlane, FarPlane)
}
