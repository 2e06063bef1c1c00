// Package shader compiles and links GLSL programs.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Program is a linked GL shader program.
type Program struct {
	ID   uint32
	Name string
}

// Compile builds a program from vertex and fragment sources. name only
// labels errors.
func Compile(name, vertexSrc, fragmentSrc string) (*Program, error) {
	vs, err := compileStage(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("%s: vertex stage: %w", name, err)
	}
	defer gl.DeleteShader(vs)

	fs, err := compileStage(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("%s: fragment stage: %w", name, err)
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &n)
		msg := infoLog(n, func(buf *uint8) { gl.GetProgramInfoLog(id, n, nil, buf) })
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("%s: link: %s", name, msg)
	}

	return &Program{ID: id, Name: name}, nil
}

func compileStage(source string, stage uint32) (uint32, error) {
	id := gl.CreateShader(stage)
	src, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, src, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &n)
		msg := infoLog(n, func(buf *uint8) { gl.GetShaderInfoLog(id, n, nil, buf) })
		gl.DeleteShader(id)
		return 0, fmt.Errorf("compile: %s", msg)
	}
	return id, nil
}

func infoLog(n int32, read func(buf *uint8)) string {
	if n <= 0 {
		return "no info log"
	}
	buf := make([]uint8, n)
	read(&buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}

// Uniform returns the location of a uniform, or -1 if it is inactive.
func (p *Program) Uniform(name string) int32 {
	return gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
}

// Use makes p the current program.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Delete frees the program. It is safe to call on nil.
func (p *Program) Delete() {
	if p == nil || p.ID == 0 {
		return
	}
	gl.DeleteProgram(p.ID)
	p.ID = 0
}
