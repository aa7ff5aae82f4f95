package scene

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/prism/internal/engine/lighting"
	"github.com/Faultbox/prism/internal/engine/material"
	"github.com/Faultbox/prism/internal/engine/shader"
	"github.com/Faultbox/prism/internal/engine/shading"
	"github.com/Faultbox/prism/internal/geometry"
	"github.com/Faultbox/prism/internal/logger"
)

func init() {
	logger.InitNop()
}

// fakeDevice satisfies mesh.Device and counts draw calls.
type fakeDevice struct {
	next    uint32
	draws   int
	deleted int
}

func (d *fakeDevice) GenVertexArray() uint32             { d.next++; return d.next }
func (d *fakeDevice) GenBuffer() uint32                  { d.next++; return d.next }
func (d *fakeDevice) BindVertexArray(uint32)             {}
func (d *fakeDevice) BindArrayBuffer(uint32)             {}
func (d *fakeDevice) BindElementBuffer(uint32)           {}
func (d *fakeDevice) ArrayBufferData([]float32)          {}
func (d *fakeDevice) ElementBufferData([]uint32)         {}
func (d *fakeDevice) VertexAttrib(uint32, int, int, int) {}
func (d *fakeDevice) DrawElements(int)                   { d.draws++ }
func (d *fakeDevice) DrawArrays(int)                     { d.draws++ }
func (d *fakeDevice) DeleteVertexArray(uint32)           { d.deleted++ }
func (d *fakeDevice) DeleteBuffer(uint32)                { d.deleted++ }

type draw struct {
	model    mgl32.Mat4
	routing  shading.Routing
	material material.Material
}

// fakeProgram records what a draw call would see.
type fakeProgram struct {
	attribs  map[string]int32
	model    mgl32.Mat4
	mat      material.Material
	routing  shading.Routing
	draws    []draw
	lights   map[int]lighting.Light
	clears   int
	lightErr error
}

func newFakeProgram() *fakeProgram {
	return &fakeProgram{
		attribs: map[string]int32{
			shader.AttribPosition: 0,
			shader.AttribNormal:   1,
			shader.AttribColor:    2,
			shader.AttribTexture:  3,
		},
		lights: map[int]lighting.Light{},
	}
}

func (p *fakeProgram) AttribLocation(name string) int32 {
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	return -1
}

func (p *fakeProgram) SetMat4(name string, m mgl32.Mat4) {
	if name == shader.UniformModel {
		p.model = m
	}
}

func (p *fakeProgram) SetMaterial(m material.Material) { p.mat = m }

// SetRouting is the last setter before a draw, so it snapshots one.
func (p *fakeProgram) SetRouting(r shading.Routing) {
	p.routing = r
	p.draws = append(p.draws, draw{model: p.model, routing: r, material: p.mat})
}

// SetLights clears the recorded array before filling it.
func (p *fakeProgram) SetLights(lights []lighting.Light) error {
	if p.lightErr != nil {
		return p.lightErr
	}
	p.clears++
	p.lights = map[int]lighting.Light{}
	for i, l := range lights {
		p.lights[i] = l
	}
	return nil
}

type fakeTexture struct {
	units []int
}

func (t *fakeTexture) Bind(unit int) error {
	t.units = append(t.units, unit)
	return nil
}

func newContext() (*Context, *fakeProgram, *fakeDevice) {
	p := newFakeProgram()
	d := &fakeDevice{}
	return &Context{Program: p, Device: d}, p, d
}

func cubeMesh(t *testing.T) *geometry.Mesh {
	t.Helper()
	m, err := geometry.Cube(geometry.CubeParams{Length: 1, Width: 1, Height: 1})
	require.NoError(t, err)
	return m
}

func vecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.Less(t, want.Sub(got).Len(), float32(1e-5), "want %v, got %v", want, got)
}

func TestWorldPositionComposes(t *testing.T) {
	parent := NewNode("parent", mgl32.Vec3{1, 0, 0}, nil)
	child := NewNode("child", mgl32.Vec3{0, 1, 0}, nil)
	require.NoError(t, parent.AddChild(child))

	vecNear(t, mgl32.Vec3{1, 1, 0}, child.WorldPosition())
}

func TestWorldTransformRotatedParent(t *testing.T) {
	parent := NewNode("parent", mgl32.Vec3{0, 0, 0}, nil)
	parent.SetDefaultAngle(90, AxisW)
	child := NewNode("child", mgl32.Vec3{1, 0, 0}, nil)
	require.NoError(t, parent.AddChild(child))

	vecNear(t, mgl32.Vec3{0, 1, 0}, child.WorldPosition())
}

func TestLocalTransformOrder(t *testing.T) {
	n := NewNode("n", mgl32.Vec3{0, 0, 5}, nil)
	n.SetDefaultScale(mgl32.Vec3{2, 2, 2})
	n.SetDefaultAngle(90, AxisV)

	// Scale first, then rotate about Y, then translate.
	p := n.LocalTransform().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	vecNear(t, mgl32.Vec3{0, 0, 3}, p)
}

func TestPreRotation(t *testing.T) {
	n := NewNode("n", mgl32.Vec3{}, nil)
	n.SetPreRotation(RotationBetween(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}))

	p := n.LocalTransform().Mul4x1(mgl32.Vec4{0, 0, 1, 1}).Vec3()
	vecNear(t, mgl32.Vec3{1, 0, 0}, p)
}

func TestDefaultAnglesCompose(t *testing.T) {
	n := NewNode("n", mgl32.Vec3{}, nil)
	n.SetDefaultAngle(180, AxisV)
	n.SetDefaultAngle(180, AxisW)

	// Two half turns about Y then Z equal a half turn about X.
	p := n.LocalTransform().Mul4x1(mgl32.Vec4{0, 1, 0, 1}).Vec3()
	vecNear(t, mgl32.Vec3{0, -1, 0}, p)
	p = n.LocalTransform().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	vecNear(t, mgl32.Vec3{1, 0, 0}, p)
}

func TestRotationBetween(t *testing.T) {
	tests := []struct {
		name   string
		v1, v2 mgl32.Vec3
	}{
		{"quarter", mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{"unnormalized", mgl32.Vec3{0, 0, 3}, mgl32.Vec3{1, -0.15, -1}},
		{"opposite", mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, -1}},
		{"same", mgl32.Vec3{1, 0, 0}, mgl32.Vec3{2, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RotationBetween(tt.v1, tt.v2).Mul4x1(tt.v1.Normalize().Vec4(0)).Vec3()
			vecNear(t, tt.v2.Normalize(), got)
		})
	}
	assert.Equal(t, mgl32.Ident4(), RotationBetween(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}))
}

func TestResetRestoresDefaults(t *testing.T) {
	n := NewNode("n", mgl32.Vec3{1, 2, 3}, nil)
	n.SetCurrentPosition(mgl32.Vec3{9, 9, 9})
	n.Rotate(45, AxisU)
	n.Reset()

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, n.Position())
	want, got := mgl32.Translate3D(1, 2, 3), n.LocalTransform()
	for i := range want {
		assert.InDelta(t, float64(want[i]), float64(got[i]), 1e-5)
	}
}

func TestAddChildRefusesReparent(t *testing.T) {
	a := NewNode("a", mgl32.Vec3{}, nil)
	b := NewNode("b", mgl32.Vec3{}, nil)
	c := NewNode("c", mgl32.Vec3{}, nil)
	require.NoError(t, a.AddChild(c))

	assert.ErrorIs(t, b.AddChild(c), ErrHasParent)
	assert.Same(t, a, c.Parent())
	assert.Empty(t, b.Children())
}

func TestAddChildRefusesCycle(t *testing.T) {
	root := NewNode("root", mgl32.Vec3{}, nil)
	leaf := NewNode("leaf", mgl32.Vec3{}, nil)
	require.NoError(t, root.AddChild(leaf))

	assert.ErrorIs(t, leaf.AddChild(root), ErrCycle)
	assert.ErrorIs(t, root.AddChild(root), ErrCycle)
}

func TestInitializeOnce(t *testing.T) {
	ctx, _, _ := newContext()
	root := NewNode("root", mgl32.Vec3{}, nil)
	child := NewNode("child", mgl32.Vec3{}, cubeMesh(t))
	require.NoError(t, root.AddChild(child))

	require.NoError(t, root.Initialize(ctx))
	assert.Equal(t, Initialized, child.State())
	assert.ErrorIs(t, root.Initialize(ctx), ErrAlreadyInitialized)
}

func TestInitializeMissingPosition(t *testing.T) {
	ctx, p, d := newContext()
	delete(p.attribs, shader.AttribPosition)
	n := NewNode("cube", mgl32.Vec3{}, cubeMesh(t))

	err := n.Initialize(ctx)
	var missing *shader.MissingAttributeError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, Unattached, n.State())
	// The vertex array and both buffers are freed on failure.
	assert.Equal(t, 3, d.deleted)
	assert.ErrorIs(t, n.Draw(ctx, NewMatrixStack()), ErrNotInitialized)

	n.Release()
	assert.Equal(t, 3, d.deleted)
}

func TestInitializeOptionalAttributeMissing(t *testing.T) {
	ctx, p, _ := newContext()
	delete(p.attribs, shader.AttribTexture)
	n := NewNode("cube", mgl32.Vec3{}, cubeMesh(t))
	assert.NoError(t, n.Initialize(ctx))
}

func TestDrawBeforeInitialize(t *testing.T) {
	ctx, _, _ := newContext()
	n := NewNode("n", mgl32.Vec3{}, cubeMesh(t))
	assert.ErrorIs(t, n.Draw(ctx, NewMatrixStack()), ErrNotInitialized)
}

func TestDrawPreOrderWorldMatrices(t *testing.T) {
	ctx, p, d := newContext()
	root := NewNode("root", mgl32.Vec3{1, 0, 0}, cubeMesh(t))
	a := NewNode("a", mgl32.Vec3{0, 1, 0}, cubeMesh(t))
	b := NewNode("b", mgl32.Vec3{0, 0, 1}, cubeMesh(t))
	group := NewNode("group", mgl32.Vec3{0, 0, 2}, nil)
	c := NewNode("c", mgl32.Vec3{0, 0, 1}, cubeMesh(t))
	require.NoError(t, root.AddChild(a))
	require.NoError(t, a.AddChild(b))
	require.NoError(t, root.AddChild(group))
	require.NoError(t, group.AddChild(c))
	a.SetRouting(shading.VertexColor)

	require.NoError(t, root.Initialize(ctx))
	stack := NewMatrixStack()
	require.NoError(t, root.Draw(ctx, stack))
	assert.Zero(t, stack.Depth())
	assert.Equal(t, 4, d.draws)

	require.Len(t, p.draws, 4)
	want := []mgl32.Vec3{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 3}}
	for i, w := range want {
		vecNear(t, w, p.draws[i].model.Col(3).Vec3())
	}
	assert.Equal(t, shading.Lighting, p.draws[0].routing)
	assert.Equal(t, shading.VertexColor, p.draws[1].routing)
}

func TestDrawBindsTextures(t *testing.T) {
	ctx, p, _ := newContext()
	n := NewNode("ball", mgl32.Vec3{}, cubeMesh(t))
	n.SetRouting(shading.Lighting | shading.TextureModulate)
	tex, norm := &fakeTexture{}, &fakeTexture{}
	n.SetTexture(tex)
	n.SetNormalMap(norm)
	require.NoError(t, n.Initialize(ctx))

	require.NoError(t, n.Draw(ctx, NewMatrixStack()))
	assert.Equal(t, []int{shader.TextureUnit}, tex.units)
	assert.Equal(t, []int{shader.NormalMapUnit}, norm.units)
	assert.True(t, p.draws[0].material.UseNormalMap)
	assert.Equal(t, shading.Lighting|shading.TextureModulate, p.draws[0].routing)
}

func TestEffectiveRoutingWithoutTexture(t *testing.T) {
	tests := []struct {
		name    string
		routing shading.Routing
		want    shading.Routing
	}{
		{"lighting texture", shading.Lighting | shading.TextureModulate, shading.Lighting},
		{"texture only", shading.TextureModulate, shading.VertexColor},
		{"no texture term", shading.NormalDebug, shading.NormalDebug},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNode("n", mgl32.Vec3{}, nil)
			n.SetRouting(tt.routing)
			assert.Equal(t, tt.want, n.EffectiveRouting())
			assert.Equal(t, tt.routing, n.Routing())
		})
	}
}

func TestNormalMapFlagNeedsTexture(t *testing.T) {
	ctx, p, _ := newContext()
	n := NewNode("n", mgl32.Vec3{}, cubeMesh(t))
	n.SetMaterial(material.Default().WithNormalMap(true))
	require.NoError(t, n.Initialize(ctx))
	require.NoError(t, n.Draw(ctx, NewMatrixStack()))
	assert.False(t, p.draws[0].material.UseNormalMap)
}

type countingAnimator struct {
	visited *[]string
}

func (a countingAnimator) Animate(n *Node, dt float32) {
	*a.visited = append(*a.visited, n.Name)
	n.Rotate(dt, AxisV)
}

func TestUpdateVisitsOnlyAnimated(t *testing.T) {
	var visited []string
	anim := countingAnimator{visited: &visited}

	root := NewNode("root", mgl32.Vec3{}, nil)
	a := NewNode("a", mgl32.Vec3{}, nil)
	b := NewNode("b", mgl32.Vec3{}, nil)
	c := NewNode("c", mgl32.Vec3{}, nil)
	require.NoError(t, root.AddChild(a))
	require.NoError(t, a.AddChild(b))
	require.NoError(t, root.AddChild(c))
	root.SetAnimator(anim)
	b.SetAnimator(anim)
	c.SetAnimator(AnimatorFunc(func(n *Node, dt float32) {
		visited = append(visited, "func:"+n.Name)
	}))

	root.Update(0.5)
	assert.Equal(t, []string{"root", "b", "func:c"}, visited)
}

func TestRoutingSwitch(t *testing.T) {
	n := NewNode("core", mgl32.Vec3{}, nil)
	n.SetRouting(shading.TextureModulate)
	n.SetSwitch(RoutingSwitch{OnRouting: shading.TextureModulate, OffRouting: shading.Lighting})

	n.TurnOff()
	assert.Equal(t, shading.Lighting, n.Routing())
	n.TurnOn()
	assert.Equal(t, shading.TextureModulate, n.Routing())

	plain := NewNode("plain", mgl32.Vec3{}, nil)
	plain.TurnOff()
	assert.Equal(t, shading.Lighting, plain.Routing())
}

func TestFind(t *testing.T) {
	root := NewNode("root", mgl32.Vec3{}, nil)
	a := NewNode("a", mgl32.Vec3{}, nil)
	b := NewNode("b", mgl32.Vec3{}, nil)
	require.NoError(t, root.AddChild(a))
	require.NoError(t, a.AddChild(b))

	assert.Same(t, b, root.Find("b"))
	assert.Nil(t, root.Find("missing"))
}

func TestMatrixStack(t *testing.T) {
	s := NewMatrixStack()
	s.Pop()
	assert.Equal(t, mgl32.Ident4(), s.Top())

	s.Push(mgl32.Translate3D(1, 0, 0))
	s.Push(mgl32.Translate3D(0, 2, 0))
	assert.Equal(t, 2, s.Depth())
	vecNear(t, mgl32.Vec3{1, 2, 0}, s.Top().Col(3).Vec3())
	s.Pop()
	vecNear(t, mgl32.Vec3{1, 0, 0}, s.Top().Col(3).Vec3())
}

func TestParseAxis(t *testing.T) {
	for in, want := range map[string]Axis{"u": AxisU, "x": AxisU, "v": AxisV, "Y": AxisV, "w": AxisW, "z": AxisW} {
		got, ok := ParseAxis(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseAxis("q")
	assert.False(t, ok)
}

func TestSceneLightsAndIndicators(t *testing.T) {
	ctx, p, _ := newContext()
	s := New("test")

	cube := NewNode("lamp", mgl32.Vec3{0, 2, 0}, cubeMesh(t))
	cube.SetRouting(shading.VertexColor)
	cube.SetSwitch(RoutingSwitch{OnRouting: shading.VertexColor, OffRouting: shading.PureColor})
	require.NoError(t, s.AddChild(cube))

	idx, err := s.AddLight(lighting.NewPoint(mgl32.Vec3{}, mgl32.Vec4{1, 1, 1, 1}), cube, true)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	vecNear(t, mgl32.Vec3{0, 2, 0}, s.Light(0).Position)

	_, err = s.AddLight(lighting.NewPoint(mgl32.Vec3{5, 5, 5}, mgl32.Vec4{1, 0, 0, 1}), nil, false)
	require.NoError(t, err)

	require.NoError(t, s.Initialize(ctx))
	assert.Equal(t, 1, p.clears)
	assert.Len(t, p.lights, 2)

	cube.SetCurrentPosition(mgl32.Vec3{3, 0, 0})
	s.Update(0.016)
	vecNear(t, mgl32.Vec3{3, 0, 0}, s.Light(0).Position)
	assert.Equal(t, mgl32.Vec3{5, 5, 5}, s.Light(1).Position)

	on, err := s.ToggleLight(0)
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, shading.PureColor, cube.Routing())

	require.NoError(t, s.Draw(ctx))
	assert.False(t, p.lights[0].Enabled)
	vecNear(t, mgl32.Vec3{3, 0, 0}, p.lights[0].Position)

	on, err = s.ToggleLight(0)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, shading.VertexColor, cube.Routing())

	_, err = s.ToggleLight(1)
	assert.NoError(t, err, "light without indicator")
	_, err = s.ToggleLight(7)
	assert.ErrorIs(t, err, lighting.ErrSlotRange)
}

func TestSceneLightOverflow(t *testing.T) {
	s := New("full")
	for i := 0; i < lighting.MaxLights; i++ {
		_, err := s.AddLight(lighting.NewPoint(mgl32.Vec3{}, mgl32.Vec4{1, 1, 1, 1}), nil, false)
		require.NoError(t, err)
	}
	_, err := s.AddLight(lighting.NewPoint(mgl32.Vec3{}, mgl32.Vec4{1, 1, 1, 1}), nil, false)
	assert.ErrorIs(t, err, lighting.ErrSlotsFull)
	assert.Equal(t, lighting.MaxLights, s.LightCount())
}

func TestSceneFollowNeedsIndicator(t *testing.T) {
	s := New("s")
	_, err := s.AddLight(lighting.NewPoint(mgl32.Vec3{}, mgl32.Vec4{}), nil, true)
	assert.Error(t, err)
	assert.Zero(t, s.LightCount())
}

func TestSceneRelease(t *testing.T) {
	ctx, _, d := newContext()
	s := New("s")
	lamp := NewNode("lamp", mgl32.Vec3{0, 2, 0}, cubeMesh(t))
	require.NoError(t, s.AddChild(lamp))
	_, err := s.AddLight(lighting.NewPoint(mgl32.Vec3{}, mgl32.Vec4{1, 1, 1, 1}), lamp, true)
	require.NoError(t, err)
	require.NoError(t, s.Initialize(ctx))

	s.Release()
	assert.Equal(t, 3, d.deleted)
	assert.Zero(t, s.LightCount())
	assert.Nil(t, s.Indicator(0))
	s.Update(0.016)
}

func TestSceneDrawLightError(t *testing.T) {
	ctx, p, _ := newContext()
	s := New("s")
	_, err := s.AddLight(lighting.NewPoint(mgl32.Vec3{}, mgl32.Vec4{1, 1, 1, 1}), nil, false)
	require.NoError(t, err)
	require.NoError(t, s.Initialize(ctx))

	p.lightErr = shader.ErrLightSlot
	assert.ErrorIs(t, s.Draw(ctx), shader.ErrLightSlot)
}
