package graphics

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrConfigurationMissing is returned when the linked program does not
// expose an attribute or uniform the renderer needs.
var ErrConfigurationMissing = errors.New("shader location missing")

// Shader represents an OpenGL shader program with resolved locations
type Shader struct {
	ID uint32

	attribs  map[string]uint32
	uniforms map[string]int32
}

// NewShader creates a new shader program from vertex and fragment shader source files
func NewShader(vertexPath, fragmentPath string) (*Shader, error) {
	vertexSource, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("could not read vertex shader file: %w", err)
	}

	fragmentSource, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("could not read fragment shader file: %w", err)
	}

	program, err := compileProgram(string(vertexSource), string(fragmentSource))
	if err != nil {
		return nil, err
	}

	return &Shader{
		ID:       program,
		attribs:  make(map[string]uint32),
		uniforms: make(map[string]int32),
	}, nil
}

// Resolve looks up every named attribute and uniform once. Missing names
// are reported together, wrapped in ErrConfigurationMissing.
func (s *Shader) Resolve(attributes, uniforms []string) error {
	attribs, err := resolveLocations(attributes, func(name string) int32 {
		return gl.GetAttribLocation(s.ID, gl.Str(name+"\x00"))
	})
	if err != nil {
		return fmt.Errorf("attributes: %w", err)
	}
	unis, err := resolveLocations(uniforms, func(name string) int32 {
		return gl.GetUniformLocation(s.ID, gl.Str(name+"\x00"))
	})
	if err != nil {
		return fmt.Errorf("uniforms: %w", err)
	}

	for name, loc := range attribs {
		s.attribs[name] = uint32(loc)
	}
	for name, loc := range unis {
		s.uniforms[name] = loc
	}
	return nil
}

// resolveLocations maps names through lookup, collecting every name whose
// location is negative.
func resolveLocations(names []string, lookup func(string) int32) (map[string]int32, error) {
	out := make(map[string]int32, len(names))
	var missing []string
	for _, name := range names {
		loc := lookup(name)
		if loc < 0 {
			missing = append(missing, name)
			continue
		}
		out[name] = loc
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrConfigurationMissing, strings.Join(missing, ", "))
	}
	return out, nil
}

// Attrib returns a resolved attribute location.
func (s *Shader) Attrib(name string) (uint32, error) {
	loc, ok := s.attribs[name]
	if !ok {
		return 0, fmt.Errorf("%w: attribute %s", ErrConfigurationMissing, name)
	}
	return loc, nil
}

// Uniform returns a resolved uniform location.
func (s *Shader) Uniform(name string) (int32, error) {
	loc, ok := s.uniforms[name]
	if !ok {
		return -1, fmt.Errorf("%w: uniform %s", ErrConfigurationMissing, name)
	}
	return loc, nil
}

// Use activates the shader program
func (s *Shader) Use() {
	gl.UseProgram(s.ID)
}

// Delete releases the program.
func (s *Shader) Delete() {
	gl.DeleteProgram(s.ID)
}

// SetUniform uploads v to a resolved uniform. The program must be in use.
func (s *Shader) SetUniform(name string, v any) error {
	loc, err := s.Uniform(name)
	if err != nil {
		return err
	}
	switch val := v.(type) {
	case bool:
		var i int32
		if val {
			i = 1
		}
		gl.Uniform1i(loc, i)
	case int32:
		gl.Uniform1i(loc, val)
	case int:
		gl.Uniform1i(loc, int32(val))
	case float32:
		gl.Uniform1f(loc, val)
	case mgl32.Vec3:
		gl.Uniform3f(loc, val[0], val[1], val[2])
	case mgl32.Vec4:
		gl.Uniform4f(loc, val[0], val[1], val[2], val[3])
	case mgl32.Mat4:
		gl.UniformMatrix4fv(loc, 1, false, &val[0])
	default:
		return fmt.Errorf("uniform %s: unsupported type %T", name, v)
	}
	return nil
}

func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("failed to link program: %v", log)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile shader: %v", log)
	}
	return shader, nil
}
