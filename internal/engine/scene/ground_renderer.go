package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-road/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-road/internal/engine/shader"
	"github.com/Faultbox/midgard-road/internal/engine/terrain"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// GroundRenderer draws the ground a road is laid on.
type GroundRenderer struct {
	// Shader
	program *shader.Program

	// Uniform locations
	locViewProj    int32
	locLightDir    int32
	locAmbient     int32
	locDiffuse     int32
	locGridSpacing int32

	// Ground mesh
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32

	// Bounds
	MinBounds [3]float32
	MaxBounds [3]float32

	GridSpacing float32
}

// NewGroundRenderer creates a new ground renderer.
func NewGroundRenderer() (*GroundRenderer, error) {
	gr := &GroundRenderer{GridSpacing: 5}

	program, err := shader.Compile("ground", shaders.GroundVertexShader, shaders.GroundFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("ground shader: %w", err)
	}
	gr.program = program

	gr.locViewProj = program.Uniform("uViewProj")
	gr.locLightDir = program.Uniform("uLightDir")
	gr.locAmbient = program.Uniform("uAmbient")
	gr.locDiffuse = program.Uniform("uDiffuse")
	gr.locGridSpacing = program.Uniform("uGridSpacing")

	return gr, nil
}

// LoadHeightfield uploads the mesh of h.
func (gr *GroundRenderer) LoadHeightfield(h *terrain.Heightfield) {
	gr.clearMesh()

	mesh := terrain.BuildMesh(h)
	gr.MinBounds = mesh.Bounds.Min
	gr.MaxBounds = mesh.Bounds.Max

	gl.GenVertexArrays(1, &gr.vao)
	gl.BindVertexArray(gr.vao)

	// VBO
	gl.GenBuffers(1, &gr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gr.vbo)
	vertexSize := int(unsafe.Sizeof(terrain.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexSize, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	// Color (location 2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	// EBO
	gl.GenBuffers(1, &gr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	gr.indexCount = int32(len(mesh.Indices))
}

// Render renders the ground.
func (gr *GroundRenderer) Render(viewProj math.Mat4, light Light) {
	if gr.vao == 0 {
		return
	}

	gr.program.Use()

	gl.UniformMatrix4fv(gr.locViewProj, 1, false, &viewProj[0])
	light.apply(gr.locLightDir, gr.locAmbient, gr.locDiffuse)
	gl.Uniform1f(gr.locGridSpacing, gr.GridSpacing)

	gl.BindVertexArray(gr.vao)
	gl.DrawElements(gl.TRIANGLES, gr.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (gr *GroundRenderer) clearMesh() {
	if gr.vao != 0 {
		gl.DeleteVertexArrays(1, &gr.vao)
		gr.vao = 0
	}
	if gr.vbo != 0 {
		gl.DeleteBuffers(1, &gr.vbo)
		gr.vbo = 0
	}
	if gr.ebo != 0 {
		gl.DeleteBuffers(1, &gr.ebo)
		gr.ebo = 0
	}
	gr.indexCount = 0
}

// Destroy releases all resources.
func (gr *GroundRenderer) Destroy() {
	gr.clearMesh()
	gr.program.Delete()
}
