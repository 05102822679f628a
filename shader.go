package gpuobj

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/gpuobj/driver"
	"github.com/gogpu/gpuobj/internal/cache"
)

// Shader is a compiled shader stage.
type Shader struct {
	ctx    *Context
	handle driver.Shader
	stage  ShaderStage
	source string
	obj    *object
}

// NewVertexShader compiles GLSL vertex shader source.
func NewVertexShader(ctx *Context, src string) (*Shader, error) {
	return newShader(ctx, VertexStage, src)
}

// NewFragmentShader compiles GLSL fragment shader source.
func NewFragmentShader(ctx *Context, src string) (*Shader, error) {
	return newShader(ctx, FragmentStage, src)
}

// NewVertexShaderWGSL translates the module's vertex entry point to GLSL
// 3.30 and compiles it.
func NewVertexShaderWGSL(ctx *Context, src string) (*Shader, error) {
	return newShaderWGSL(ctx, VertexStage, src)
}

// NewFragmentShaderWGSL translates the module's fragment entry point to
// GLSL 3.30 and compiles it.
func NewFragmentShaderWGSL(ctx *Context, src string) (*Shader, error) {
	return newShaderWGSL(ctx, FragmentStage, src)
}

func newShaderWGSL(ctx *Context, stage ShaderStage, src string) (*Shader, error) {
	code, err := TranslateWGSL(stage, src)
	if err != nil {
		return nil, err
	}
	ctx.log.Debug("gpuobj: translated WGSL", "stage", stage, "bytes", len(code))
	return newShader(ctx, stage, code)
}

type translationKey struct {
	stage ShaderStage
	src   string
}

type translation struct {
	code string
	err  error
}

// translations memoizes WGSL modules that are compiled repeatedly, as when
// every context builds the same programs.
var translations = cache.New[translationKey, translation](64)

// TranslateWGSL converts the first entry point of the given stage in a WGSL
// module to GLSL 3.30 source. Errors are *CompileError values. Results,
// failures included, are cached by stage and source.
func TranslateWGSL(stage ShaderStage, src string) (string, error) {
	t := translations.GetOrCreate(translationKey{stage, src}, func() translation {
		code, err := translateWGSL(stage, src)
		return translation{code, err}
	})
	return t.code, t.err
}

func translateWGSL(stage ShaderStage, src string) (string, error) {
	fail := func(err error) (string, error) {
		return "", &CompileError{Stage: stage, Err: err}
	}
	ast, err := naga.Parse(src)
	if err != nil {
		return fail(err)
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return fail(err)
	}

	want := ir.StageVertex
	if stage == FragmentStage {
		want = ir.StageFragment
	}
	entry := ""
	for _, ep := range module.EntryPoints {
		if ep.Stage == want {
			entry = ep.Name
			break
		}
	}
	if entry == "" {
		return fail(fmt.Errorf("no %s entry point", stage))
	}

	opts := glsl.DefaultOptions()
	opts.LangVersion = glsl.Version330
	opts.EntryPoint = entry
	code, _, err := glsl.Compile(module, opts)
	if err != nil {
		return fail(err)
	}
	return code, nil
}

func newShader(ctx *Context, stage ShaderStage, src string) (*Shader, error) {
	gl := ctx.create(kindShader)
	s := &Shader{ctx: ctx, stage: stage, source: src}
	s.handle = gl.CreateShader(stage.enum())
	s.obj = track(ctx, s, kindShader, uint32(s.handle))

	gl.ShaderSource(s.handle, src)
	gl.CompileShader(s.handle)
	if gl.GetShaderi(s.handle, driver.CompileStatus) == 0 {
		log := gl.GetShaderInfoLog(s.handle)
		s.Release()
		ctx.log.Warn("gpuobj: shader compilation failed", "stage", stage, "log", log)
		return nil, &CompileError{Stage: stage, Log: log}
	}
	ctx.check("compile shader")
	return s, nil
}

// Stage returns the pipeline stage the shader was compiled for.
func (s *Shader) Stage() ShaderStage { return s.stage }

// Source returns the GLSL source handed to the device.
func (s *Shader) Source() string { return s.source }

// Release deletes the device shader. Programs already linked with it are
// unaffected.
func (s *Shader) Release() {
	s.ctx.release(s.obj)
}

func (s *Shader) live() bool { return !s.obj.released }
