package graphics

import (
	"fmt"
	"path/filepath"
)

// Shader file names inside the shader directory.
const (
	ShadersDir = "assets/shaders/scene"

	SceneVertShader = "scene.vert"
	SceneFragShader = "scene.frag"
)

// SceneAttributes are the vertex inputs the scene program must expose.
var SceneAttributes = []string{"a_Position", "a_UV", "a_Normal"}

// SceneUniforms are the uniforms the scene program must expose.
var SceneUniforms = []string{
	"u_ModelMatrix",
	"u_GlobalRotateMatrix",
	"u_ViewMatrix",
	"u_ProjectionMatrix",
	"u_CameraPos",
	"u_FragColor",
	"u_whichTexture",
	"u_NormalToggle",
	"u_Sampler0",
	"u_Sampler1",
	"u_Sampler2",
	"u_LightPos",
	"u_LightColor",
	"u_LightingOn",
	"u_SpotlightOn",
	"u_SpotLightPos",
	"u_SpotDirection",
	"u_SpotColor",
	"u_SpotCutoff",
	"u_SpotExponent",
}

// LoadSceneShader compiles the scene program from dir and resolves every
// location it needs. A program missing any of them is rejected with
// ErrConfigurationMissing.
func LoadSceneShader(dir string) (*Shader, error) {
	if dir == "" {
		dir = ShadersDir
	}
	s, err := NewShader(filepath.Join(dir, SceneVertShader), filepath.Join(dir, SceneFragShader))
	if err != nil {
		return nil, fmt.Errorf("scene shader: %w", err)
	}
	if err := s.Resolve(SceneAttributes, SceneUniforms); err != nil {
		s.Delete()
		return nil, fmt.Errorf("scene shader: %w", err)
	}
	return s, nil
}
