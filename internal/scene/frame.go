package scene

import (
	"fmt"

	"voxelscene/internal/meshing"
	"voxelscene/internal/profiling"
	"voxelscene/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Draw groups in submission order.
const (
	groupSphere = iota
	groupLightMarker
	groupTerrain
	groupFloor
	groupSky
	groupCount
)

var groupNames = [groupCount]string{"sphere", "light", "terrain", "floor", "sky"}

var groupMaterials = [groupCount]Material{
	MaterialStone,
	MaterialFlat,
	MaterialStone,
	MaterialGrass,
	MaterialSky,
}

// DrawGroup is one batch submitted with a single draw call.
type DrawGroup struct {
	Name     string
	Material Material
	Color    mgl32.Vec4 // used by MaterialFlat
	Batch    *meshing.Batch
}

// Uniforms holds the per-frame shader inputs shared by every group.
type Uniforms struct {
	Projection     mgl32.Mat4
	View           mgl32.Mat4
	GlobalRotation mgl32.Mat4
	CameraPos      mgl32.Vec3
	Lighting       Lighting
}

// Uniform is one named shader input.
type Uniform struct {
	Name  string
	Value any
}

// List flattens the uniforms into the names the scene shader declares.
func (u Uniforms) List() []Uniform {
	l := u.Lighting
	return []Uniform{
		{"u_ProjectionMatrix", u.Projection},
		{"u_ViewMatrix", u.View},
		{"u_GlobalRotateMatrix", u.GlobalRotation},
		{"u_ModelMatrix", mgl32.Ident4()},
		{"u_CameraPos", u.CameraPos},
		{"u_NormalToggle", l.ShowNormals},
		{"u_LightPos", l.LightPos},
		{"u_LightColor", l.LightColor},
		{"u_LightingOn", l.LightingOn},
		{"u_SpotlightOn", l.SpotlightOn},
		{"u_SpotLightPos", l.Spot.Position},
		{"u_SpotDirection", l.Spot.Direction},
		{"u_SpotColor", l.Spot.Color},
		{"u_SpotCutoff", l.Spot.Cutoff},
		{"u_SpotExponent", l.Spot.Exponent},
		{"u_Sampler0", int32(MaterialSky)},
		{"u_Sampler1", int32(MaterialGrass)},
		{"u_Sampler2", int32(MaterialStone)},
	}
}

// Frame is everything needed to draw one image. Its batches belong to the
// Scene and are overwritten by the next BuildFrame.
type Frame struct {
	Uniforms Uniforms
	Groups   []DrawGroup
}

// FrameStats summarizes one submitted frame.
type FrameStats struct {
	DrawCalls int
	Vertices  int
	Cubes     int
}

// BuildFrame assembles uniforms and one batch per material group.
func (s *Scene) BuildFrame() Frame {
	defer profiling.Track("scene.BuildFrame")()

	for _, b := range s.groups {
		b.Reset()
	}

	s.sphere.AddToBatch(meshing.Identity().Translate(sphereOrigin.X(), sphereOrigin.Y(), sphereOrigin.Z()), s.groups[groupSphere])

	lp := s.light.LightPos
	meshing.EmitCube(meshing.Identity().Translate(lp.X(), lp.Y(), lp.Z()), s.groups[groupLightMarker])

	s.emitTerrain(s.groups[groupTerrain])

	floor := meshing.Identity().
		Translate(0, -0.75, 0).
		Scale(world.GridSize, 0, world.GridSize).
		Translate(-0.5, 0, -0.5)
	meshing.EmitCube(floor, s.groups[groupFloor])

	sky := meshing.Identity().Scale(40, 40, 40).Translate(-0.5, -0.5, -0.5)
	meshing.EmitCube(sky, s.groups[groupSky])
	s.groups[groupSky].FlipNormals(0)

	f := Frame{
		Uniforms: Uniforms{
			Projection:     s.cam.Projection(),
			View:           s.cam.View(),
			GlobalRotation: mgl32.HomogRotate3DY(mgl32.DegToRad(s.globalAngle)),
			CameraPos:      s.cam.Eye(),
			Lighting:       s.light,
		},
		Groups: make([]DrawGroup, 0, groupCount),
	}
	for i, b := range s.groups {
		g := DrawGroup{
			Name:     groupNames[i],
			Material: groupMaterials[i],
			Batch:    b,
		}
		if i == groupLightMarker {
			g.Color = s.light.LightColor.Vec4(1)
		}
		f.Groups = append(f.Groups, g)
	}
	return f
}

func (s *Scene) emitTerrain(b *meshing.Batch) {
	keepOut := world.KeepOut(sphereKeepOutX, sphereKeepOutZ, sphereKeepOutR)
	for col := range s.grid.Columns(keepOut) {
		x := float32(col.X - world.GridOffset)
		z := float32(col.Z - world.GridOffset)
		for h := range col.Height {
			meshing.EmitCube(meshing.Identity().Translate(x, float32(world.BaseElevation+h), z), b)
		}
	}
}

// Render builds the current frame and submits it to b.
func (s *Scene) Render(b Backend) (FrameStats, error) {
	defer profiling.Track("scene.Render")()

	if s.buffers == nil || s.buffers.owner != b {
		bufs, err := newVertexBuffers(b)
		if err != nil {
			return FrameStats{}, err
		}
		s.buffers = bufs
	}
	return s.BuildFrame().submit(b, s.buffers)
}

// submit uploads the frame uniforms, clears, and issues one draw call per
// non-empty group.
func (f Frame) submit(b Backend, bufs *vertexBuffers) (FrameStats, error) {
	var stats FrameStats
	for _, u := range f.Uniforms.List() {
		if err := b.SetUniform(u.Name, u.Value); err != nil {
			return stats, fmt.Errorf("set %s: %w", u.Name, err)
		}
	}
	b.Clear()

	for _, g := range f.Groups {
		if g.Batch.Empty() {
			continue
		}
		if err := bufs.upload(b, g.Batch); err != nil {
			return stats, fmt.Errorf("upload %s: %w", g.Name, err)
		}
		if err := b.SetUniform("u_whichTexture", int32(g.Material)); err != nil {
			return stats, fmt.Errorf("set u_whichTexture: %w", err)
		}
		if g.Material == MaterialFlat {
			if err := b.SetUniform("u_FragColor", g.Color); err != nil {
				return stats, fmt.Errorf("set u_FragColor: %w", err)
			}
		}
		n := g.Batch.VertexCount()
		b.DrawTriangles(n)
		stats.DrawCalls++
		stats.Vertices += n
		if g.Name == groupNames[groupTerrain] {
			stats.Cubes += n / meshing.CubeVertexCount
		}
	}
	return stats, nil
}

// vertexBuffers are the three attribute buffers reused by every group.
type vertexBuffers struct {
	owner    Backend
	position Buffer
	uv       Buffer
	normal   Buffer
}

func newVertexBuffers(b Backend) (*vertexBuffers, error) {
	vb := &vertexBuffers{owner: b}
	for _, p := range []*Buffer{&vb.position, &vb.uv, &vb.normal} {
		buf, err := b.CreateBuffer()
		if err != nil {
			return nil, fmt.Errorf("create buffer: %w", err)
		}
		*p = buf
	}
	return vb, nil
}

func (vb *vertexBuffers) upload(b Backend, batch *meshing.Batch) error {
	streams := []struct {
		attr Attribute
		buf  Buffer
		data []float32
	}{
		{AttribPosition, vb.position, batch.Positions},
		{AttribUV, vb.uv, batch.UVs},
		{AttribNormal, vb.normal, batch.Normals},
	}
	for _, st := range streams {
		if st.attr == AttribNormal && !batch.HasNormals() {
			continue
		}
		if err := b.UploadVertexData(st.buf, st.data); err != nil {
			return err
		}
		if err := b.BindVertexAttribute(st.attr, st.buf, st.attr.Components()); err != nil {
			return err
		}
	}
	return nil
}
