package scene

import (
	"errors"
	"image"
	"testing"

	"voxelscene/internal/meshing"
	"voxelscene/internal/vecmath"
	"voxelscene/internal/world"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingBackend captures every call a frame makes.
type recordingBackend struct {
	buffers   int
	uploads   map[Buffer]int
	bound     map[Attribute]Buffer
	uniforms  map[string]any
	materials []int32
	draws     []int
	clears    int
	textures  map[int]*image.RGBA

	failUniform string
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{
		uploads:  make(map[Buffer]int),
		bound:    make(map[Attribute]Buffer),
		uniforms: make(map[string]any),
		textures: make(map[int]*image.RGBA),
	}
}

func (r *recordingBackend) CreateBuffer() (Buffer, error) {
	r.buffers++
	return Buffer(r.buffers), nil
}

func (r *recordingBackend) UploadVertexData(buf Buffer, data []float32) error {
	r.uploads[buf] = len(data)
	return nil
}

func (r *recordingBackend) BindVertexAttribute(attr Attribute, buf Buffer, components int) error {
	if components != attr.Components() {
		return errors.New("component mismatch")
	}
	r.bound[attr] = buf
	return nil
}

func (r *recordingBackend) SetUniform(name string, v any) error {
	if name == r.failUniform {
		return errors.New("no such uniform")
	}
	r.uniforms[name] = v
	if name == "u_whichTexture" {
		r.materials = append(r.materials, v.(int32))
	}
	return nil
}

func (r *recordingBackend) Clear() { r.clears++ }

func (r *recordingBackend) DrawTriangles(count int) { r.draws = append(r.draws, count) }

func (r *recordingBackend) BindTexture(unit int, img *image.RGBA) error {
	r.textures[unit] = img
	return nil
}

func layoutScene(t *testing.T) *Scene {
	t.Helper()
	opts := DefaultOptions()
	opts.Stones = 0
	return New(opts)
}

func TestRenderOneDrawPerGroup(t *testing.T) {
	s := layoutScene(t)
	be := newRecordingBackend()

	stats, err := s.Render(be)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.DrawCalls)
	assert.Equal(t, []int32{2, -2, 2, 1, 0}, be.materials)
	assert.Equal(t, 1, be.clears)
	assert.Equal(t, 3, be.buffers)

	sphere := 20 * 20 * 6
	cube := meshing.CubeVertexCount
	require.Len(t, be.draws, 5)
	assert.Equal(t, sphere, be.draws[0])
	assert.Equal(t, cube, be.draws[1])
	assert.Equal(t, stats.Cubes*cube, be.draws[2])
	assert.Equal(t, cube, be.draws[3])
	assert.Equal(t, cube, be.draws[4])
	assert.Equal(t, sphere+stats.Cubes*cube+3*cube, stats.Vertices)

	// Buffers are created once and reused by later frames.
	_, err = s.Render(be)
	require.NoError(t, err)
	assert.Equal(t, 3, be.buffers)
}

func TestRenderDrawCallsIndependentOfVoxelCount(t *testing.T) {
	sparse := NewWithGrid(world.New(), DefaultOptions())
	full := world.New()
	for x := range world.GridSize {
		for z := range world.GridSize {
			_, err := full.SetHeight(x, z, world.MaxHeight)
			require.NoError(t, err)
		}
	}
	dense := NewWithGrid(full, DefaultOptions())

	sb, db := newRecordingBackend(), newRecordingBackend()
	sparseStats, err := sparse.Render(sb)
	require.NoError(t, err)
	denseStats, err := dense.Render(db)
	require.NoError(t, err)

	// The empty terrain group is skipped.
	assert.Equal(t, 4, sparseStats.DrawCalls)
	assert.Equal(t, 5, denseStats.DrawCalls)

	keptOut := (2*sphereKeepOutR + 1) * (2*sphereKeepOutR + 1)
	wantCubes := (world.GridSize*world.GridSize - keptOut) * world.MaxHeight
	assert.Equal(t, wantCubes, denseStats.Cubes)
}

func TestRenderReportsUniformFailure(t *testing.T) {
	s := layoutScene(t)
	be := newRecordingBackend()
	be.failUniform = "u_LightPos"

	_, err := s.Render(be)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "u_LightPos")
	assert.Empty(t, be.draws)

	// The next frame still renders once the backend recovers.
	be.failUniform = ""
	stats, err := s.Render(be)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.DrawCalls)
}

func TestFrameGeometry(t *testing.T) {
	s := layoutScene(t)
	f := s.BuildFrame()
	require.Len(t, f.Groups, groupCount)

	for _, g := range f.Groups {
		assert.True(t, g.Batch.Consistent(), g.Name)
	}

	// Sky normals face inward.
	sky := f.Groups[groupSky].Batch
	front := mgl32.Vec3{sky.Normals[0], sky.Normals[1], sky.Normals[2]}
	assert.True(t, front.ApproxEqual(mgl32.Vec3{0, 0, 1}), "sky front normal %v", front)

	// The floor is a flat slab at y = -0.75 spanning the grid.
	floor := f.Groups[groupFloor].Batch
	for i := 1; i < len(floor.Positions); i += 3 {
		assert.InDelta(t, -0.75, floor.Positions[i], 1e-5)
	}

	// The light marker uses the light color.
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, f.Groups[groupLightMarker].Color)

	// No terrain cube inside the sphere keep-out.
	terrain := f.Groups[groupTerrain].Batch
	for i := 0; i < len(terrain.Positions); i += 3 * meshing.CubeVertexCount {
		gx := int(math32.Floor(terrain.Positions[i])) + world.GridOffset
		gz := int(math32.Floor(terrain.Positions[i+2])) + world.GridOffset
		inX := gx >= sphereKeepOutX-sphereKeepOutR && gx <= sphereKeepOutX+sphereKeepOutR
		inZ := gz >= sphereKeepOutZ-sphereKeepOutR && gz <= sphereKeepOutZ+sphereKeepOutR
		assert.False(t, inX && inZ, "cube at (%d, %d) inside keep-out", gx, gz)
	}
}

func TestModifyBlockRaisesAndCaps(t *testing.T) {
	s := layoutScene(t)
	s.Camera().SetPose(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})

	x, z, err := s.TargetCell()
	require.NoError(t, err)
	require.Equal(t, 16, x)
	require.Equal(t, 15, z)
	h, err := s.Grid().HeightAt(x, z)
	require.NoError(t, err)
	require.Zero(t, h)

	for i, want := range []int{1, 2, 3, 4, 4} {
		got, err := s.ModifyBlock(1)
		require.NoError(t, err)
		assert.Equal(t, want, got, "raise %d", i+1)
	}

	got, err := s.ModifyBlock(-1)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestModifyBlockOutOfBounds(t *testing.T) {
	s := layoutScene(t)
	s.Camera().SetPose(mgl32.Vec3{-16, 0, 0}, mgl32.Vec3{-17, 0, 0}, mgl32.Vec3{0, 1, 0})

	x, z, err := s.TargetCell()
	require.NoError(t, err)
	require.Equal(t, -1, x)
	require.Equal(t, 16, z)

	before := s.Grid().Clone()
	_, err = s.ModifyBlock(1)
	assert.ErrorIs(t, err, world.ErrOutOfBounds)
	assert.Equal(t, before, s.Grid())
}

func TestDegenerateCameraNotifies(t *testing.T) {
	var notified []error
	opts := DefaultOptions()
	opts.Stones = 0
	opts.Notify = func(err error) { notified = append(notified, err) }
	s := New(opts)

	p := mgl32.Vec3{1, 2, 3}
	s.Camera().SetPose(p, p, mgl32.Vec3{0, 1, 0})
	s.Apply(CmdMoveForward)
	s.Apply(CmdRaiseBlock)

	require.Len(t, notified, 2)
	for _, err := range notified {
		assert.ErrorIs(t, err, vecmath.ErrDivideByZero)
	}
	assert.Equal(t, p, s.Camera().Eye())
}

func TestTickOrbitsLight(t *testing.T) {
	s := layoutScene(t)
	s.Tick(1)
	l := s.Lighting()
	assert.InDelta(t, 7.5, l.Angle, 1e-5)
	assert.InDelta(t, -2+50*math32.Sin(mgl32.DegToRad(7.5)), l.LightPos.X(), 1e-4)
	assert.Equal(t, float32(12), l.LightPos.Y())

	s.SetLightDragging(true)
	s.SetLightAngle(90)
	s.Tick(10)
	l = s.Lighting()
	assert.InDelta(t, 90, l.Angle, 1e-5)
	assert.InDelta(t, 48, l.LightPos.X(), 1e-4)

	s.SetLightDragging(false)
	s.Tick(48) // 360 degrees
	assert.InDelta(t, 90, s.Lighting().Angle, 1e-3)
}

func TestApplyCommands(t *testing.T) {
	s := layoutScene(t)
	eye := s.Camera().Eye()

	s.Apply(CmdMoveForward)
	assert.InDelta(t, 0.2, s.Camera().Eye().Sub(eye).Len(), 1e-5)

	s.Apply(CmdToggleLighting)
	s.Apply(CmdToggleSpotlight)
	s.Apply(CmdToggleNormals)
	l := s.Lighting()
	assert.False(t, l.LightingOn)
	assert.False(t, l.SpotlightOn)
	assert.True(t, l.ShowNormals)

	s.Apply(CmdRotateWorldLeft)
	assert.InDelta(t, 0, s.GlobalAngle(), 1e-5)
	s.Apply(CmdRotateWorldLeft)
	assert.InDelta(t, 355, s.GlobalAngle(), 1e-5)

	s.Apply(CmdLightOrbitForward)
	assert.InDelta(t, lightSliderStep, s.Lighting().Angle, 1e-5)

	for c := CmdNone; c <= CmdRotateWorldRight; c++ {
		parsed, ok := ParseCommand(c.String())
		require.True(t, ok, c.String())
		assert.Equal(t, c, parsed)
	}
}

func TestLightColorHex(t *testing.T) {
	s := layoutScene(t)
	require.NoError(t, s.SetLightColorHex("#ff8000"))
	assert.True(t, s.Lighting().LightColor.ApproxEqual(mgl32.Vec3{1, 128.0 / 255, 0}))

	for _, bad := range []string{"", "#fff", "#gg0000", "#12345678"} {
		assert.Error(t, s.SetLightColorHex(bad), bad)
	}
	assert.True(t, s.Lighting().LightColor.ApproxEqual(mgl32.Vec3{1, 128.0 / 255, 0}))
}
