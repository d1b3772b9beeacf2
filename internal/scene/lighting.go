package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Material selects how the fragment stage colors a draw group.
type Material int32

const (
	MaterialFlat    Material = -2
	MaterialUVDebug Material = -1
	MaterialSky     Material = 0
	MaterialGrass   Material = 1
	MaterialStone   Material = 2
)

// TextureUnit returns the texture unit sampled by a textured material, or -1.
func (m Material) TextureUnit() int {
	if m < 0 {
		return -1
	}
	return int(m)
}

func (m Material) String() string {
	switch m {
	case MaterialFlat:
		return "flat"
	case MaterialUVDebug:
		return "uv"
	case MaterialSky:
		return "sky"
	case MaterialGrass:
		return "grass"
	case MaterialStone:
		return "stone"
	default:
		return fmt.Sprintf("material(%d)", int32(m))
	}
}

// Orbit of the point light.
const (
	lightOrbitRadius  = 50.0
	lightOrbitCenterX = -2.0
)

// Spotlight is a fixed cone light.
type Spotlight struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Color     mgl32.Vec3
	Cutoff    float32 // cosine of the half angle
	Exponent  float32
}

// Lighting is the per-session light state read by every frame.
type Lighting struct {
	LightPos    mgl32.Vec3
	LightColor  mgl32.Vec3
	Angle       float32 // orbit angle in degrees
	Dragging    bool
	LightingOn  bool
	SpotlightOn bool
	ShowNormals bool
	Spot        Spotlight
}

// DefaultLighting returns the start-up light state.
func DefaultLighting() Lighting {
	return Lighting{
		LightPos:    mgl32.Vec3{0, 12, 0},
		LightColor:  mgl32.Vec3{1, 1, 1},
		LightingOn:  true,
		SpotlightOn: true,
		Spot: Spotlight{
			Position:  mgl32.Vec3{-5, 10, 0},
			Direction: mgl32.Vec3{0, -1, 0},
			Color:     mgl32.Vec3{1, 1, 1},
			Cutoff:    math32.Cos(math32.Pi / 8),
			Exponent:  20,
		},
	}
}

// advance moves the orbit angle by deg unless the slider is held, then
// places the light on its orbit.
func (l *Lighting) advance(deg float32) {
	if !l.Dragging {
		l.Angle = wrapDegrees(l.Angle + deg)
	}
	l.LightPos[0] = lightOrbitCenterX + lightOrbitRadius*math32.Sin(mgl32.DegToRad(l.Angle))
}

func wrapDegrees(a float32) float32 {
	a = math32.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// ParseHexColor parses "#rrggbb" (the leading '#' is optional) into a color
// with components in [0, 1].
func ParseHexColor(s string) (mgl32.Vec3, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return mgl32.Vec3{}, fmt.Errorf("invalid color %q", s)
	}
	var c mgl32.Vec3
	for i := range 3 {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return mgl32.Vec3{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		c[i] = float32(v) / 255
	}
	return c, nil
}
