package renderer

import (
	"image"

	"voxelscene/internal/graphics"
	"voxelscene/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// GLBackend draws scene frames with OpenGL 4.1 core. It must only be used
// on the thread that owns the GL context.
type GLBackend struct {
	shader   *graphics.Shader
	vao      uint32
	buffers  []uint32
	textures *graphics.TextureUnits
}

var _ scene.Backend = (*GLBackend)(nil)

// NewGLBackend prepares GL state for drawing with shader.
func NewGLBackend(shader *graphics.Shader) *GLBackend {
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0, 0, 0, 1)

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	shader.Use()

	return &GLBackend{
		shader:   shader,
		vao:      vao,
		textures: graphics.NewTextureUnits(),
	}
}

func (b *GLBackend) CreateBuffer() (scene.Buffer, error) {
	var buf uint32
	gl.GenBuffers(1, &buf)
	b.buffers = append(b.buffers, buf)
	return scene.Buffer(buf), nil
}

func (b *GLBackend) UploadVertexData(buf scene.Buffer, data []float32) error {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buf))
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
		return nil
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
	return nil
}

func (b *GLBackend) BindVertexAttribute(attr scene.Attribute, buf scene.Buffer, components int) error {
	loc, err := b.shader.Attrib(attr.Name())
	if err != nil {
		return err
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buf))
	gl.VertexAttribPointerWithOffset(loc, int32(components), gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(loc)
	return nil
}

func (b *GLBackend) SetUniform(name string, v any) error {
	return b.shader.SetUniform(name, v)
}

func (b *GLBackend) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (b *GLBackend) DrawTriangles(count int) {
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))
}

func (b *GLBackend) BindTexture(unit int, img *image.RGBA) error {
	return b.textures.Bind(unit, img)
}

// Viewport resizes the GL viewport to the framebuffer size.
func (b *GLBackend) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Dispose releases every GL object the backend created. The shader belongs
// to the caller.
func (b *GLBackend) Dispose() {
	b.textures.Dispose()
	if len(b.buffers) > 0 {
		gl.DeleteBuffers(int32(len(b.buffers)), &b.buffers[0])
		b.buffers = nil
	}
	gl.DeleteVertexArrays(1, &b.vao)
}
