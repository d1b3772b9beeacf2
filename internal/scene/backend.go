package scene

import "image"

// Buffer is an opaque vertex buffer handle issued by a Backend.
type Buffer uint32

// Attribute identifies a vertex input of the scene shader.
type Attribute int

const (
	AttribPosition Attribute = iota
	AttribUV
	AttribNormal
)

// Name returns the shader variable bound to the attribute.
func (a Attribute) Name() string {
	switch a {
	case AttribPosition:
		return "a_Position"
	case AttribUV:
		return "a_UV"
	case AttribNormal:
		return "a_Normal"
	default:
		return ""
	}
}

// Components returns the number of floats per vertex for the attribute.
func (a Attribute) Components() int {
	if a == AttribUV {
		return 2
	}
	return 3
}

// Backend is the drawing surface a Scene submits frames to.
//
// Values passed to SetUniform are one of bool, int32, float32, mgl32.Vec3,
// mgl32.Vec4 or mgl32.Mat4.
type Backend interface {
	CreateBuffer() (Buffer, error)
	UploadVertexData(buf Buffer, data []float32) error
	BindVertexAttribute(attr Attribute, buf Buffer, components int) error
	SetUniform(name string, v any) error
	Clear()
	DrawTriangles(count int)
	BindTexture(unit int, img *image.RGBA) error
}
