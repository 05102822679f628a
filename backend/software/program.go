// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gogpu/gpuobj/driver"
)

type shader struct {
	typ      driver.Enum
	source   string
	compiled bool
	log      string
}

type program struct {
	shaders []driver.Shader
	linked  bool
	log     string
}

var entryPoint = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(void)?\s*\)`)

// check performs the structural validation the software device can do
// without a GLSL front end: an entry point and balanced braces.
func (s *shader) check() (bool, string) {
	if strings.TrimSpace(s.source) == "" {
		return false, "0:0: error: empty shader source"
	}
	if !entryPoint.MatchString(s.source) {
		return false, "0:0: error: missing entry point 'void main()'"
	}
	depth := 0
	for i, line := range strings.Split(s.source, "\n") {
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			return false, "0:" + strconv.Itoa(i+1) + ": error: unexpected '}'"
		}
	}
	if depth != 0 {
		return false, "0:0: error: unbalanced braces"
	}
	return true, ""
}

func (d *Device) CreateShader(typ driver.Enum) driver.Shader {
	if !d.live() {
		return 0
	}
	if typ != driver.VertexShader && typ != driver.FragmentShader {
		d.setError(driver.InvalidEnum)
		return 0
	}
	s := driver.Shader(d.genName())
	d.shaders[s] = &shader{typ: typ}
	return s
}

func (d *Device) shaderObject(s driver.Shader) *shader {
	sh, ok := d.shaders[s]
	if !ok {
		d.setError(driver.InvalidValue)
	}
	return sh
}

func (d *Device) ShaderSource(s driver.Shader, src string) {
	if !d.live() {
		return
	}
	if sh := d.shaderObject(s); sh != nil {
		sh.source = src
	}
}

func (d *Device) CompileShader(s driver.Shader) {
	if !d.live() {
		return
	}
	if sh := d.shaderObject(s); sh != nil {
		sh.compiled, sh.log = sh.check()
	}
}

func (d *Device) GetShaderi(s driver.Shader, pname driver.Enum) int {
	if !d.live() {
		return 0
	}
	sh := d.shaderObject(s)
	if sh == nil {
		return 0
	}
	switch pname {
	case driver.CompileStatus:
		return boolInt(sh.compiled)
	case driver.InfoLogLength:
		return infoLogLength(sh.log)
	}
	d.setError(driver.InvalidEnum)
	return 0
}

func (d *Device) GetShaderInfoLog(s driver.Shader) string {
	if !d.live() {
		return ""
	}
	if sh := d.shaderObject(s); sh != nil {
		return sh.log
	}
	return ""
}

func (d *Device) DeleteShader(s driver.Shader) {
	if !d.live() || s == 0 {
		return
	}
	d.deletes.Shaders++
	delete(d.shaders, s)
}

func (d *Device) CreateProgram() driver.Program {
	if !d.live() {
		return 0
	}
	p := driver.Program(d.genName())
	d.programs[p] = &program{}
	return p
}

func (d *Device) programObject(p driver.Program) *program {
	prog, ok := d.programs[p]
	if !ok {
		d.setError(driver.InvalidValue)
	}
	return prog
}

func (d *Device) AttachShader(p driver.Program, s driver.Shader) {
	if !d.live() {
		return
	}
	prog := d.programObject(p)
	if prog == nil || d.shaderObject(s) == nil {
		return
	}
	for _, attached := range prog.shaders {
		if attached == s {
			d.setError(driver.InvalidOperation)
			return
		}
	}
	prog.shaders = append(prog.shaders, s)
}

func (d *Device) LinkProgram(p driver.Program) {
	if !d.live() {
		return
	}
	prog := d.programObject(p)
	if prog == nil {
		return
	}
	stages := map[driver.Enum]bool{}
	for _, s := range prog.shaders {
		sh, ok := d.shaders[s]
		if !ok {
			continue
		}
		if !sh.compiled {
			prog.linked, prog.log = false, "error: attached shader is not compiled"
			return
		}
		stages[sh.typ] = true
	}
	switch {
	case !stages[driver.VertexShader]:
		prog.linked, prog.log = false, "error: program lacks a vertex shader"
	case !stages[driver.FragmentShader]:
		prog.linked, prog.log = false, "error: program lacks a fragment shader"
	default:
		prog.linked, prog.log = true, ""
	}
}

func (d *Device) GetProgrami(p driver.Program, pname driver.Enum) int {
	if !d.live() {
		return 0
	}
	prog := d.programObject(p)
	if prog == nil {
		return 0
	}
	switch pname {
	case driver.LinkStatus:
		return boolInt(prog.linked)
	case driver.InfoLogLength:
		return infoLogLength(prog.log)
	}
	d.setError(driver.InvalidEnum)
	return 0
}

func (d *Device) GetProgramInfoLog(p driver.Program) string {
	if !d.live() {
		return ""
	}
	if prog := d.programObject(p); prog != nil {
		return prog.log
	}
	return ""
}

func (d *Device) UseProgram(p driver.Program) {
	if !d.live() {
		return
	}
	if p != 0 {
		prog, ok := d.programs[p]
		if !ok || !prog.linked {
			d.setError(driver.InvalidOperation)
			return
		}
	}
	d.current = p
}

func (d *Device) DeleteProgram(p driver.Program) {
	if !d.live() || p == 0 {
		return
	}
	d.deletes.Programs++
	delete(d.programs, p)
	if d.current == p {
		d.current = 0
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// infoLogLength follows GL: the length includes the terminator, and an empty
// log reports zero.
func infoLogLength(log string) int {
	if log == "" {
		return 0
	}
	return len(log) + 1
}
