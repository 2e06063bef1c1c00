package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-road/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-road/internal/engine/shader"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// lineBatch is one colored set of line segments.
type lineBatch struct {
	first int32
	count int32
	color [3]float32
}

// LineRenderer draws debug line segments on top of the scene.
type LineRenderer struct {
	program *shader.Program

	locViewProj  int32
	locPointSize int32
	locColor     int32
	locRound     int32

	vao     uint32
	vbo     uint32
	batches []lineBatch
	data    []float32
}

// NewLineRenderer creates a new debug line renderer. It shares the point
// shader.
func NewLineRenderer() (*LineRenderer, error) {
	program, err := shader.Compile("lines", shaders.PointVertexShader, shaders.PointFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}
	lr := &LineRenderer{program: program}

	lr.locViewProj = program.Uniform("uViewProj")
	lr.locPointSize = program.Uniform("uPointSize")
	lr.locColor = program.Uniform("uColor")
	lr.locRound = program.Uniform("uRound")

	gl.GenVertexArrays(1, &lr.vao)
	gl.GenBuffers(1, &lr.vbo)

	gl.BindVertexArray(lr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return lr, nil
}

// Clear drops all batches. Call Add then Upload to rebuild.
func (lr *LineRenderer) Clear() {
	lr.batches = lr.batches[:0]
	lr.data = lr.data[:0]
}

// Add queues segments, two endpoints each, in one color.
func (lr *LineRenderer) Add(endpoints []math.Vec3, color [3]float32) {
	if len(endpoints) < 2 {
		return
	}
	lr.batches = append(lr.batches, lineBatch{
		first: int32(len(lr.data) / 3),
		count: int32(len(endpoints) &^ 1),
		color: color,
	})
	for _, p := range endpoints {
		lr.data = append(lr.data, p.X, p.Y, p.Z)
	}
}

// Upload sends the queued batches to the GPU.
func (lr *LineRenderer) Upload() {
	if len(lr.data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(lr.data)*4, unsafe.Pointer(&lr.data[0]), gl.DYNAMIC_DRAW)
}

// Render draws every batch.
func (lr *LineRenderer) Render(viewProj math.Mat4) {
	if len(lr.batches) == 0 {
		return
	}

	lr.program.Use()
	gl.UniformMatrix4fv(lr.locViewProj, 1, false, &viewProj[0])
	gl.Uniform1f(lr.locPointSize, 1)
	gl.Uniform1i(lr.locRound, 0)

	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(lr.vao)
	for _, b := range lr.batches {
		gl.Uniform3f(lr.locColor, b.color[0], b.color[1], b.color[2])
		gl.DrawArrays(gl.LINES, b.first, b.count)
	}
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

// Destroy releases all resources.
func (lr *LineRenderer) Destroy() {
	if lr.vao != 0 {
		gl.DeleteVertexArrays(1, &lr.vao)
		lr.vao = 0
	}
	if lr.vbo != 0 {
		gl.DeleteBuffers(1, &lr.vbo)
		lr.vbo = 0
	}
	lr.program.Delete()
}
