// Package shader wraps a linked GPU program: compilation with typed
// errors, canonical attribute and uniform names, and typed uniform setters
// for matrices, light slots, materials and routing.
package shader

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/engine/lighting"
	"github.com/Faultbox/prism/internal/engine/material"
	"github.com/Faultbox/prism/internal/engine/shading"
	"github.com/Faultbox/prism/internal/logger"
)

// Stage identifies a shader stage.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Texture units the scene program samples from.
const (
	TextureUnit   = 0
	NormalMapUnit = 1
)

// ErrLightSlot is returned by SetLight for an index outside the shader array.
var ErrLightSlot = errors.New("light slot out of range")

// Driver is the graphics API surface a Program needs.
type Driver interface {
	CompileShader(stage Stage, src string) (id uint32, log string, ok bool)
	LinkProgram(shaders ...uint32) (id uint32, log string, ok bool)
	DeleteShader(id uint32)
	DeleteProgram(id uint32)
	UseProgram(id uint32)

	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32

	Uniform1i(loc int32, v int32)
	Uniform1f(loc int32, v float32)
	Uniform3f(loc int32, v mgl32.Vec3)
	Uniform4f(loc int32, v mgl32.Vec4)
	UniformMatrix4(loc int32, m mgl32.Mat4)
}

// Program is a linked vertex+fragment program. Uniform setters act on the
// program bound by the last Use call.
type Program struct {
	drv      Driver
	id       uint32
	uniforms map[string]int32
}

// New compiles both stages and links them.
func New(drv Driver, vertexSrc, fragmentSrc string) (*Program, error) {
	vs, log, ok := drv.CompileShader(StageVertex, vertexSrc)
	if !ok {
		return nil, &CompileError{Stage: StageVertex, Log: log}
	}
	defer drv.DeleteShader(vs)

	fs, log, ok := drv.CompileShader(StageFragment, fragmentSrc)
	if !ok {
		return nil, &CompileError{Stage: StageFragment, Log: log}
	}
	defer drv.DeleteShader(fs)

	id, log, ok := drv.LinkProgram(vs, fs)
	if !ok {
		return nil, &LinkError{Log: log}
	}

	logger.Debug("shader program linked", zap.Uint32("program", id))
	return &Program{drv: drv, id: id, uniforms: make(map[string]int32)}, nil
}

// ID returns the driver handle.
func (p *Program) ID() uint32 {
	return p.id
}

// Use binds the program and points the samplers at their texture units.
func (p *Program) Use() {
	p.drv.UseProgram(p.id)
	p.SetInt(UniformTexture, TextureUnit)
	p.SetInt(UniformNormalMap, NormalMapUnit)
}

// Delete releases the program.
func (p *Program) Delete() {
	if p.id == 0 {
		return
	}
	p.drv.DeleteProgram(p.id)
	p.id = 0
}

// AttribLocation returns the location of a canonical attribute, or -1 when
// the program does not use it.
func (p *Program) AttribLocation(name string) int32 {
	loc := p.drv.AttribLocation(p.id, GLSLName(name))
	if loc < 0 {
		logger.Debug("attribute not found", zap.String("name", name))
	}
	return loc
}

// UniformLocation returns the location of a uniform, or -1 when it was not
// found or was optimized out. Lookups are cached.
func (p *Program) UniformLocation(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := p.drv.UniformLocation(p.id, GLSLName(name))
	if loc < 0 {
		logger.Debug("uniform not found", zap.String("name", name))
	}
	p.uniforms[name] = loc
	return loc
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc := p.UniformLocation(name); loc >= 0 {
		p.drv.UniformMatrix4(loc, m)
	}
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	if loc := p.UniformLocation(name); loc >= 0 {
		p.drv.Uniform3f(loc, v)
	}
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	if loc := p.UniformLocation(name); loc >= 0 {
		p.drv.Uniform4f(loc, v)
	}
}

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	p.SetInt(name, i)
}

func (p *Program) SetInt(name string, v int32) {
	if loc := p.UniformLocation(name); loc >= 0 {
		p.drv.Uniform1i(loc, v)
	}
}

func (p *Program) SetFloat(name string, v float32) {
	if loc := p.UniformLocation(name); loc >= 0 {
		p.drv.Uniform1f(loc, v)
	}
}

// SetMatrix uploads a column-major 4x4 matrix given as a flat slice.
func (p *Program) SetMatrix(name string, m []float32) error {
	if len(m) != 16 {
		return &ResourceBindingError{Uniform: name, Want: "4x4 matrix", Got: len(m)}
	}
	var mat mgl32.Mat4
	copy(mat[:], m)
	p.SetMat4(name, mat)
	return nil
}

// SetVector uploads a vec3 or vec4 given as a flat slice.
func (p *Program) SetVector(name string, v []float32) error {
	switch len(v) {
	case 3:
		p.SetVec3(name, mgl32.Vec3{v[0], v[1], v[2]})
	case 4:
		p.SetVec4(name, mgl32.Vec4{v[0], v[1], v[2], v[3]})
	default:
		return &ResourceBindingError{Uniform: name, Want: "vec3 or vec4", Got: len(v)}
	}
	return nil
}

// SetLight uploads l into slot i of the light array.
func (p *Program) SetLight(i int, l lighting.Light) error {
	if i < 0 || i >= lighting.MaxLights {
		return fmt.Errorf("set light %d: %w", i, ErrLightSlot)
	}
	p.SetBool(LightField(i, "on"), l.Enabled)
	p.SetVec3(LightField(i, "position"), l.Position)
	p.SetVec4(LightField(i, "color"), l.Color)
	p.SetBool(LightField(i, "infiniteOn"), l.Infinite)
	p.SetVec3(LightField(i, "infiniteDirection"), l.Direction)
	p.SetBool(LightField(i, "spotOn"), l.Spot)
	p.SetVec3(LightField(i, "spotDirection"), l.SpotDirection)
	p.SetVec3(LightField(i, "spotRadialFactor"), l.RadialFactor)
	p.SetFloat(LightField(i, "spotAngleLimit"), l.AngleLimit)
	p.SetFloat(LightField(i, "spotExpAttenuation"), l.ExpAttenuation)
	return nil
}

// ClearAllLights writes a disabled light to every slot.
func (p *Program) ClearAllLights() {
	for i := 0; i < lighting.MaxLights; i++ {
		_ = p.SetLight(i, lighting.Light{})
	}
}

// SetLights clears the array and uploads lights into the leading slots.
func (p *Program) SetLights(lights []lighting.Light) error {
	if len(lights) > lighting.MaxLights {
		return fmt.Errorf("set %d lights: %w", len(lights), lighting.ErrSlotsFull)
	}
	p.ClearAllLights()
	for i, l := range lights {
		if err := p.SetLight(i, l); err != nil {
			return err
		}
	}
	return nil
}

// SetMaterial uploads the material block and its normal-map flag.
func (p *Program) SetMaterial(m material.Material) {
	p.SetVec4(MaterialAmbient, m.Ambient)
	p.SetVec4(MaterialDiffuse, m.Diffuse)
	p.SetVec4(MaterialSpecular, m.Specular)
	p.SetFloat(MaterialHighlight, m.Highlight)
	p.SetBool(UniformUseNormalMap, m.UseNormalMap)
}

// SetRouting selects the shading terms for the following draws.
func (p *Program) SetRouting(r shading.Routing) {
	p.SetInt(UniformRouting, int32(r))
}

// SetSwitches uploads the global ambient/diffuse/specular toggles.
func (p *Program) SetSwitches(sw shading.Switches) {
	p.SetBool(UniformAmbientOn, sw.Ambient)
	p.SetBool(UniformDiffuseOn, sw.Diffuse)
	p.SetBool(UniformSpecularOn, sw.Specular)
}
