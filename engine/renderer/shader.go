package renderer

import (
	"encoding/binary"
	"fmt"

	"github.com/spaghettifunk/ral/engine/core"
)

// CompileGLSLToSPIRV is the optional GLSL->SPIR-V compilation seam. No binding for a GLSL compiler
// (shaderc/glslang) is available to this module, so this defaults to nil;
// a host that links one in can set it before calling CreateShaderFromSource.
var CompileGLSLToSPIRV func(stage ShaderStage, source string) ([]uint32, error)

// Shader is one compiled pipeline-stage program. Bytecode is
// kept as decoded SPIR-V words; ShaderLanguage tags which shading
// language produced it, used to validate GraphicsProgram linkage.
type Shader struct {
	RefCounted
	stage          ShaderStage
	shaderLanguage string
	spirv          []uint32
	backend        BackendShaderModule
}

func (s *Shader) BackendHandle() interface{} { return s.backend }
func (s *Shader) Stage() ShaderStage         { return s.stage }
func (s *Shader) ShaderLanguage() string     { return s.shaderLanguage }

func (s *Shader) selfDestruct(r *Renderer) func() {
	return func() {
		if s.backend != nil {
			r.backend.DestroyShaderModule(s.backend)
		}
	}
}

// CreateShaderFromBytecode decodes a compact-encoded SPIR-V bytecode blob
// and hands the decoded words to the backend's shader-module
// creation.
func (r *Renderer) CreateShaderFromBytecode(stage ShaderStage, compact []byte) *Shader {
	words, err := DecodeCompactBytecode(compact)
	if err != nil {
		r.ctx.Log(core.LogLevelCritical, "CreateShaderFromBytecode: %v", err)
		return nil
	}
	return r.createShaderFromSPIRV(stage, words, "SPIR-V")
}

// CreateShaderFromSource compiles GLSL source through CompileGLSLToSPIRV.
// Returns nil and logs CRITICAL if no compiler has been wired in - this
// module ships only the mandatory bytecode-in path.
func (r *Renderer) CreateShaderFromSource(stage ShaderStage, source string) *Shader {
	if CompileGLSLToSPIRV == nil {
		r.ctx.Log(core.LogLevelCritical, "CreateShaderFromSource: no GLSL-to-SPIR-V compiler is linked in; only bytecode shader creation is supported")
		return nil
	}
	words, err := CompileGLSLToSPIRV(stage, source)
	if err != nil {
		r.ctx.Log(core.LogLevelCritical, "CreateShaderFromSource: compile failed: %v", err)
		return nil
	}
	return r.createShaderFromSPIRV(stage, words, "GLSL")
}

func (r *Renderer) createShaderFromSPIRV(stage ShaderStage, words []uint32, language string) *Shader {
	bytecode := spirvWordsToBytes(words)
	backendModule := r.backend.CreateShaderModule(stage, bytecode)
	if backendModule == nil {
		r.ctx.Log(core.LogLevelCritical, "CreateShaderModule: backend returned no native module for stage %d", stage)
		return nil
	}
	sh := &Shader{stage: stage, shaderLanguage: language, spirv: words}
	sh.RefCounted = NewRefCounted(r, stage.ResourceKind(), sh.selfDestruct(r))
	sh.backend = backendModule
	return sh
}

func spirvWordsToBytes(words []uint32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

// GraphicsProgram bundles compatible shader stages: VS required, optional
// TCS+TES pair, optional GS, FS. Releases its stage references
// on destruction.
type GraphicsProgram struct {
	RefCounted
	vertex                 *Shader
	tessellationControl    *Shader
	tessellationEvaluation *Shader
	geometry               *Shader
	fragment               *Shader
}

func (p *GraphicsProgram) Vertex() *Shader                 { return p.vertex }
func (p *GraphicsProgram) TessellationControl() *Shader    { return p.tessellationControl }
func (p *GraphicsProgram) TessellationEvaluation() *Shader { return p.tessellationEvaluation }
func (p *GraphicsProgram) Geometry() *Shader               { return p.geometry }
func (p *GraphicsProgram) Fragment() *Shader                { return p.fragment }

// Stages returns every non-nil shader stage in pipeline order, for
// backends that need to iterate the whole program.
func (p *GraphicsProgram) Stages() []*Shader {
	var out []*Shader
	for _, s := range []*Shader{p.vertex, p.tessellationControl, p.tessellationEvaluation, p.geometry, p.fragment} {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (p *GraphicsProgram) selfDestruct(r *Renderer) func() {
	return func() {
		for _, s := range []*Shader{p.vertex, p.tessellationControl, p.tessellationEvaluation, p.geometry, p.fragment} {
			if s != nil {
				s.ReleaseReference()
			}
		}
	}
}

// CreateGraphicsProgram validates stage presence rules and shader-language
// linkage compatibility before taking references on each stage.
func (r *Renderer) CreateGraphicsProgram(vertex, tessellationControl, tessellationEvaluation, geometry, fragment *Shader) *GraphicsProgram {
	if vertex == nil {
		r.ctx.Log(core.LogLevelCritical, "CreateGraphicsProgram: a vertex shader is required")
		return nil
	}
	if !checkAffinity(r, vertex) {
		return nil
	}
	if (tessellationControl == nil) != (tessellationEvaluation == nil) {
		r.ctx.Log(core.LogLevelCritical, "CreateGraphicsProgram: tessellation control and evaluation shaders must be supplied together")
		return nil
	}

	stages := []*Shader{vertex, tessellationControl, tessellationEvaluation, geometry, fragment}
	language := vertex.shaderLanguage
	for _, s := range stages {
		if s == nil {
			continue
		}
		if !checkAffinity(r, s) {
			return nil
		}
		if s.shaderLanguage != language {
			r.ctx.Log(core.LogLevelCritical,
				"%w: stage language %q does not match program language %q", fmt.Errorf("shader language mismatch"), s.shaderLanguage, language)
			return nil
		}
	}

	prog := &GraphicsProgram{
		vertex:                 vertex,
		tessellationControl:    tessellationControl,
		tessellationEvaluation: tessellationEvaluation,
		geometry:               geometry,
		fragment:               fragment,
	}
	prog.RefCounted = NewRefCounted(r, ResourceKindGraphicsProgram, prog.selfDestruct(r))
	for _, s := range stages {
		if s != nil {
			s.AddReference()
		}
	}
	return prog
}
