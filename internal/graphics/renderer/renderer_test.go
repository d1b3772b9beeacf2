package renderer

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"voxelscene/internal/profiling"
	"voxelscene/internal/scene"
	"voxelscene/internal/textures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	next     scene.Buffer
	draws    int
	textures map[int]*image.RGBA
	fail     bool
}

func (f *fakeBackend) CreateBuffer() (scene.Buffer, error) {
	f.next++
	return f.next, nil
}
func (f *fakeBackend) UploadVertexData(scene.Buffer, []float32) error { return nil }
func (f *fakeBackend) BindVertexAttribute(scene.Attribute, scene.Buffer, int) error {
	return nil
}
func (f *fakeBackend) SetUniform(string, any) error {
	if f.fail {
		return errors.New("lost context")
	}
	return nil
}
func (f *fakeBackend) Clear()            {}
func (f *fakeBackend) DrawTriangles(int) { f.draws++ }
func (f *fakeBackend) BindTexture(unit int, img *image.RGBA) error {
	f.textures[unit] = img
	return nil
}

func newTestScene() *scene.Scene {
	opts := scene.DefaultOptions()
	opts.Stones = 0
	return scene.New(opts)
}

func TestRenderAppliesDecodedTextures(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	stone := filepath.Join(dir, "stone.png")
	require.NoError(t, os.WriteFile(stone, buf.Bytes(), 0o644))

	be := &fakeBackend{textures: map[int]*image.RGBA{}}
	r := NewRenderer(newTestScene(), be, textures.NewLoader(2, 4), profiling.NewFrameMetrics())
	defer r.Dispose()

	r.RequestTextures(map[scene.Material]string{
		scene.MaterialStone: stone,
		scene.MaterialGrass: filepath.Join(dir, "missing.jpg"),
		scene.MaterialFlat:  stone,
	})

	require.Eventually(t, func() bool {
		r.Render()
		return be.textures[2] != nil
	}, 2*time.Second, 5*time.Millisecond)
	assert.NotContains(t, be.textures, 1)
	assert.NotContains(t, be.textures, -1)
}

func TestRenderSurvivesBackendErrors(t *testing.T) {
	be := &fakeBackend{textures: map[int]*image.RGBA{}, fail: true}
	r := NewRenderer(newTestScene(), be, nil, nil)

	stats := r.Render()
	assert.Zero(t, stats.DrawCalls)
	assert.Zero(t, be.draws)

	be.fail = false
	stats = r.Render()
	assert.Equal(t, 5, stats.DrawCalls)
	assert.Equal(t, 5, be.draws)
}
