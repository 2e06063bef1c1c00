package scene

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-road/internal/engine/road"
	"github.com/Faultbox/midgard-road/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-road/internal/engine/shader"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// RoadRenderer is a road.MeshSink that keeps the installed mesh on the GPU.
// All methods must be called on the thread owning the GL context.
type RoadRenderer struct {
	log *zap.Logger

	// Shader
	program *shader.Program

	// Uniform locations
	locViewProj       int32
	locOrigin         int32
	locLightDir       int32
	locAmbient        int32
	locDiffuse        int32
	locShowLightmapUV int32
	locHasTexture     int32
	locTexture        int32

	// Material texture, 0 for the procedural checker
	texture uint32

	// Installed mesh
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	origin     math.Vec3
	mesh       *road.Mesh

	// ShowLightmapUV draws the secondary UV channel instead of the primary.
	ShowLightmapUV bool
}

// NewRoadRenderer compiles the road shader.
func NewRoadRenderer(log *zap.Logger) (*RoadRenderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	rr := &RoadRenderer{log: log}

	program, err := shader.Compile("road", shaders.RoadVertexShader, shaders.RoadFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("road shader: %w", err)
	}
	rr.program = program

	rr.locViewProj = program.Uniform("uViewProj")
	rr.locOrigin = program.Uniform("uOrigin")
	rr.locLightDir = program.Uniform("uLightDir")
	rr.locAmbient = program.Uniform("uAmbient")
	rr.locDiffuse = program.Uniform("uDiffuse")
	rr.locShowLightmapUV = program.Uniform("uShowLightmapUV")
	rr.locHasTexture = program.Uniform("uHasTexture")
	rr.locTexture = program.Uniform("uTexture")

	return rr, nil
}

// SetTexture replaces the material texture. nil restores the checker.
func (rr *RoadRenderer) SetTexture(img *image.RGBA) {
	if rr.texture != 0 {
		gl.DeleteTextures(1, &rr.texture)
		rr.texture = 0
	}
	if img == nil || len(img.Pix) == 0 {
		return
	}
	rr.texture = uploadTexture(img)
	rr.log.Debug("road texture uploaded",
		zap.Int("width", img.Rect.Dx()),
		zap.Int("height", img.Rect.Dy()))
}

// Release frees the GPU buffers of m if it is the installed mesh.
func (rr *RoadRenderer) Release(m *road.Mesh) {
	if m == nil || m != rr.mesh {
		return
	}
	rr.clearMesh()
	rr.log.Debug("road mesh released")
}

// Install uploads m.
func (rr *RoadRenderer) Install(m *road.Mesh) error {
	// A sink only ever holds one mesh.
	rr.clearMesh()

	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return fmt.Errorf("installing empty road mesh")
	}

	vertices := m.Interleaved()
	stride := int32(road.VertexStride * 4)

	gl.GenVertexArrays(1, &rr.vao)
	gl.BindVertexArray(rr.vao)

	// VBO
	gl.GenBuffers(1, &rr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, rr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	// TexCoord (location 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	// LightmapUV (location 3)
	gl.VertexAttribPointerWithOffset(3, 2, gl.FLOAT, false, stride, 8*4)
	gl.EnableVertexAttribArray(3)

	// EBO
	gl.GenBuffers(1, &rr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, rr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	rr.indexCount = int32(len(m.Indices))
	rr.origin = m.Origin
	rr.mesh = m

	rr.log.Debug("road mesh installed",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int32("indices", rr.indexCount))
	return nil
}

// Mesh returns the installed mesh.
func (rr *RoadRenderer) Mesh() *road.Mesh {
	return rr.mesh
}

// Render draws the installed mesh.
func (rr *RoadRenderer) Render(viewProj math.Mat4, light Light) {
	if rr.vao == 0 {
		return
	}

	rr.program.Use()

	gl.UniformMatrix4fv(rr.locViewProj, 1, false, &viewProj[0])
	gl.Uniform3f(rr.locOrigin, rr.origin.X, rr.origin.Y, rr.origin.Z)
	light.apply(rr.locLightDir, rr.locAmbient, rr.locDiffuse)
	if rr.ShowLightmapUV {
		gl.Uniform1i(rr.locShowLightmapUV, 1)
	} else {
		gl.Uniform1i(rr.locShowLightmapUV, 0)
	}

	if rr.texture != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, rr.texture)
		gl.Uniform1i(rr.locTexture, 0)
		gl.Uniform1i(rr.locHasTexture, 1)
	} else {
		gl.Uniform1i(rr.locHasTexture, 0)
	}

	// Depth bias over the ground
	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonOffset(-1, -1)

	gl.BindVertexArray(rr.vao)
	gl.DrawElements(gl.TRIANGLES, rr.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	gl.Disable(gl.POLYGON_OFFSET_FILL)
}

func (rr *RoadRenderer) clearMesh() {
	if rr.vao != 0 {
		gl.DeleteVertexArrays(1, &rr.vao)
		rr.vao = 0
	}
	if rr.vbo != 0 {
		gl.DeleteBuffers(1, &rr.vbo)
		rr.vbo = 0
	}
	if rr.ebo != 0 {
		gl.DeleteBuffers(1, &rr.ebo)
		rr.ebo = 0
	}
	rr.indexCount = 0
	rr.mesh = nil
}

// Destroy releases all resources.
func (rr *RoadRenderer) Destroy() {
	rr.clearMesh()
	rr.SetTexture(nil)
	rr.program.Delete()
}
