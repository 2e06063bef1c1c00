package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-road/internal/engine/scene/shaders"
	"github.com/Faultbox/midgard-road/internal/engine/shader"
	"github.com/Faultbox/midgard-road/pkg/math"
)

// PointRenderer draws path control points and the polyline through them.
type PointRenderer struct {
	program *shader.Program

	locViewProj  int32
	locPointSize int32
	locColor     int32
	locRound     int32

	vao   uint32
	vbo   uint32
	count int32

	PointSize   float32
	PointColor  [3]float32
	LineColor   [3]float32
	ConnectEnds bool
}

// NewPointRenderer creates a new control point renderer.
func NewPointRenderer() (*PointRenderer, error) {
	pr := &PointRenderer{
		PointSize:  10,
		PointColor: [3]float32{0.9, 0.3, 0.2},
		LineColor:  [3]float32{0.9, 0.9, 0.9},
	}

	program, err := shader.Compile("points", shaders.PointVertexShader, shaders.PointFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("point shader: %w", err)
	}
	pr.program = program

	pr.locViewProj = program.Uniform("uViewProj")
	pr.locPointSize = program.Uniform("uPointSize")
	pr.locColor = program.Uniform("uColor")
	pr.locRound = program.Uniform("uRound")

	gl.GenVertexArrays(1, &pr.vao)
	gl.GenBuffers(1, &pr.vbo)

	gl.BindVertexArray(pr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, pr.vbo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return pr, nil
}

// SetPoints replaces the drawn points.
func (pr *PointRenderer) SetPoints(points []math.Vec3) {
	pr.count = int32(len(points))
	if len(points) == 0 {
		return
	}

	data := make([]float32, 0, len(points)*3)
	for _, p := range points {
		data = append(data, p.X, p.Y, p.Z)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, pr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.DYNAMIC_DRAW)
}

// Render draws the polyline, then the points on top.
func (pr *PointRenderer) Render(viewProj math.Mat4) {
	if pr.count == 0 {
		return
	}

	pr.program.Use()
	gl.UniformMatrix4fv(pr.locViewProj, 1, false, &viewProj[0])
	gl.Uniform1f(pr.locPointSize, pr.PointSize)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.BindVertexArray(pr.vao)

	if pr.count > 1 {
		gl.Uniform1i(pr.locRound, 0)
		gl.Uniform3f(pr.locColor, pr.LineColor[0], pr.LineColor[1], pr.LineColor[2])
		mode := uint32(gl.LINE_STRIP)
		if pr.ConnectEnds {
			mode = gl.LINE_LOOP
		}
		gl.DrawArrays(mode, 0, pr.count)
	}

	gl.Uniform1i(pr.locRound, 1)
	gl.Uniform3f(pr.locColor, pr.PointColor[0], pr.PointColor[1], pr.PointColor[2])
	gl.DrawArrays(gl.POINTS, 0, pr.count)

	gl.BindVertexArray(0)
	gl.Disable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.DEPTH_TEST)
}

// Destroy releases all resources.
func (pr *PointRenderer) Destroy() {
	if pr.vao != 0 {
		gl.DeleteVertexArrays(1, &pr.vao)
		pr.vao = 0
	}
	if pr.vbo != 0 {
		gl.DeleteBuffers(1, &pr.vbo)
		pr.vbo = 0
	}
	pr.program.Delete()
}
