// Package scene is the node tree of the viewer: local transforms composed
// into world transforms, mesh initialization, draw and animation
// traversals, and the root that owns the lights.
package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/prism/internal/engine/lighting"
	"github.com/Faultbox/prism/internal/engine/material"
	"github.com/Faultbox/prism/internal/engine/mesh"
	"github.com/Faultbox/prism/internal/engine/shader"
	"github.com/Faultbox/prism/internal/engine/shading"
	"github.com/Faultbox/prism/internal/geometry"
)

var (
	ErrAlreadyInitialized = errors.New("node already initialized")
	ErrNotInitialized     = errors.New("node not initialized")
	ErrHasParent          = errors.New("node already has a parent")
	ErrCycle              = errors.New("node would become its own ancestor")
)

// Program is the shader surface used while initializing and drawing.
type Program interface {
	mesh.AttribResolver
	SetMat4(name string, m mgl32.Mat4)
	SetMaterial(m material.Material)
	SetRouting(r shading.Routing)
	SetLights(lights []lighting.Light) error
}

// Texture is anything that can be bound to a texture unit.
type Texture interface {
	Bind(unit int) error
}

// Context carries the collaborators of Initialize and Draw.
type Context struct {
	Program Program
	Device  mesh.Device
}

// Animator is implemented by behaviors that move a node every tick.
type Animator interface {
	Animate(n *Node, dt float32)
}

// AnimatorFunc adapts a function to Animator.
type AnimatorFunc func(n *Node, dt float32)

func (f AnimatorFunc) Animate(n *Node, dt float32) { f(n, dt) }

// Toggleable is implemented by nodes that react to their light being
// switched.
type Toggleable interface {
	TurnOn()
	TurnOff()
}

// Switch is the strategy a node runs on TurnOn and TurnOff.
type Switch interface {
	On(n *Node)
	Off(n *Node)
}

// RoutingSwitch swaps the node routing between two modes.
type RoutingSwitch struct {
	OnRouting  shading.Routing
	OffRouting shading.Routing
}

func (s RoutingSwitch) On(n *Node)  { n.routing = s.OnRouting }
func (s RoutingSwitch) Off(n *Node) { n.routing = s.OffRouting }

// State is the lifecycle stage of a node.
type State int

const (
	Unattached State = iota
	Initialized
)

func (s State) String() string {
	if s == Initialized {
		return "initialized"
	}
	return "unattached"
}

// Node is one element of the scene tree. A node without a mesh only
// groups and transforms its children.
type Node struct {
	Name string

	parent   *Node
	children []*Node
	state    State

	mesh      *geometry.Mesh
	buffer    *mesh.Buffer
	material  material.Material
	routing   shading.Routing
	texture   Texture
	normalMap Texture

	defaultPos  mgl32.Vec3
	currentPos  mgl32.Vec3
	defaultRot  mgl32.Quat
	currentRot  mgl32.Quat
	preRotation mgl32.Mat4
	scale       mgl32.Vec3

	animator Animator
	sw       Switch
}

// NewNode creates a node at pos. m may be nil for group nodes.
func NewNode(name string, pos mgl32.Vec3, m *geometry.Mesh) *Node {
	return &Node{
		Name:        name,
		mesh:        m,
		material:    material.Default(),
		routing:     shading.Lighting,
		defaultPos:  pos,
		currentPos:  pos,
		defaultRot:  mgl32.QuatIdent(),
		currentRot:  mgl32.QuatIdent(),
		preRotation: mgl32.Ident4(),
		scale:       mgl32.Vec3{1, 1, 1},
	}
}

// AddChild appends c. A node that already has a parent is refused, which
// keeps the tree acyclic.
func (n *Node) AddChild(c *Node) error {
	if c.parent != nil {
		return fmt.Errorf("add %q to %q: %w", c.Name, n.Name, ErrHasParent)
	}
	for p := n; p != nil; p = p.parent {
		if p == c {
			return fmt.Errorf("add %q to %q: %w", c.Name, n.Name, ErrCycle)
		}
	}
	c.parent = n
	n.children = append(n.children, c)
	return nil
}

func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }
func (n *Node) State() State      { return n.state }

// Find returns the first node named name in pre-order, or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}

// Displayable state.

func (n *Node) Mesh() *geometry.Mesh            { return n.mesh }
func (n *Node) Material() material.Material     { return n.material }
func (n *Node) Routing() shading.Routing        { return n.routing }
func (n *Node) SetMaterial(m material.Material) { n.material = m }
func (n *Node) SetRouting(r shading.Routing)    { n.routing = r }

// SetTexture binds t on the color unit. nil removes it.
func (n *Node) SetTexture(t Texture) { n.texture = t }

// SetNormalMap binds t on the normal-map unit and turns normal mapping
// on in the material. nil turns it off.
func (n *Node) SetNormalMap(t Texture) {
	n.normalMap = t
	n.material = n.material.WithNormalMap(t != nil)
}

// EffectiveRouting is the routing used for drawing. Without a texture the
// texture term is dropped, and a routing left empty falls back to vertex
// colors.
func (n *Node) EffectiveRouting() shading.Routing {
	r := n.routing
	if n.texture == nil && r.Has(shading.TextureModulate) {
		r &^= shading.TextureModulate
		if r == 0 {
			r = shading.VertexColor
		}
	}
	return r
}

// Transform state.

// SetDefaultPosition moves both the rest and the current position.
func (n *Node) SetDefaultPosition(p mgl32.Vec3) {
	n.defaultPos = p
	n.currentPos = p
}

// SetCurrentPosition moves the node without changing its rest position.
func (n *Node) SetCurrentPosition(p mgl32.Vec3) { n.currentPos = p }

func (n *Node) Position() mgl32.Vec3 { return n.currentPos }

// SetDefaultAngle rotates the rest orientation by deg degrees about one of
// the node's own axes. Calls compose in order.
func (n *Node) SetDefaultAngle(deg float32, axis Axis) {
	n.defaultRot = n.defaultRot.Mul(mgl32.QuatRotate(mgl32.DegToRad(deg), axis.Vec())).Normalize()
}

// Rotate turns the current orientation by deg degrees about a local axis.
func (n *Node) Rotate(deg float32, axis Axis) {
	n.currentRot = n.currentRot.Mul(mgl32.QuatRotate(mgl32.DegToRad(deg), axis.Vec())).Normalize()
}

// SetDefaultScale sets the per-axis scale.
func (n *Node) SetDefaultScale(s mgl32.Vec3) { n.scale = s }

// SetPreRotation sets a matrix applied between the translation and the
// node's own rotations.
func (n *Node) SetPreRotation(m mgl32.Mat4) { n.preRotation = m }

// Reset restores the rest position and clears the current rotation.
func (n *Node) Reset() {
	n.currentPos = n.defaultPos
	n.currentRot = mgl32.QuatIdent()
}

// LocalTransform is T(position) * preRotation * R(default) * R(current) * S.
func (n *Node) LocalTransform() mgl32.Mat4 {
	t := mgl32.Translate3D(n.currentPos[0], n.currentPos[1], n.currentPos[2])
	r := n.defaultRot.Mul(n.currentRot).Mat4()
	s := mgl32.Scale3D(n.scale[0], n.scale[1], n.scale[2])
	return t.Mul4(n.preRotation).Mul4(r).Mul4(s)
}

// WorldTransform composes the local transforms from the root down.
func (n *Node) WorldTransform() mgl32.Mat4 {
	if n.parent == nil {
		return n.LocalTransform()
	}
	return n.parent.WorldTransform().Mul4(n.LocalTransform())
}

// WorldPosition is the origin of the node in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldTransform().Col(3).Vec3()
}

// Behaviors.

// SetAnimator attaches a per-tick behavior. nil removes it.
func (n *Node) SetAnimator(a Animator) { n.animator = a }

// SetSwitch installs the strategy run by TurnOn and TurnOff.
func (n *Node) SetSwitch(s Switch) { n.sw = s }

// TurnOn runs the switch strategy, if any.
func (n *Node) TurnOn() {
	if n.sw != nil {
		n.sw.On(n)
	}
}

// TurnOff runs the switch strategy, if any.
func (n *Node) TurnOff() {
	if n.sw != nil {
		n.sw.Off(n)
	}
}

// Traversals.

// Initialize uploads the mesh of n and then of every descendant. It runs
// once per node.
func (n *Node) Initialize(ctx *Context) error {
	if n.state == Initialized {
		return fmt.Errorf("initialize %q: %w", n.Name, ErrAlreadyInitialized)
	}
	if n.mesh != nil {
		buf := mesh.New(ctx.Device)
		if err := buf.Upload(n.mesh); err != nil {
			buf.Release()
			return fmt.Errorf("initialize %q: %w", n.Name, err)
		}
		if err := buf.Configure(ctx.Program); err != nil {
			buf.Release()
			return fmt.Errorf("initialize %q: %w", n.Name, err)
		}
		n.buffer = buf
	}
	n.state = Initialized
	for _, c := range n.children {
		if err := c.Initialize(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Draw renders n and its subtree in pre-order. stack holds the parent's
// world transform on entry and is restored on return.
func (n *Node) Draw(ctx *Context, stack *MatrixStack) error {
	if n.state != Initialized {
		return fmt.Errorf("draw %q: %w", n.Name, ErrNotInitialized)
	}
	stack.Push(n.LocalTransform())
	defer stack.Pop()

	if n.buffer != nil {
		if err := n.drawSelf(ctx, stack.Top()); err != nil {
			return err
		}
	}
	for _, c := range n.children {
		if err := c.Draw(ctx, stack); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) drawSelf(ctx *Context, world mgl32.Mat4) error {
	mat := n.material
	if n.texture != nil {
		if err := n.texture.Bind(shader.TextureUnit); err != nil {
			return fmt.Errorf("draw %q: %w", n.Name, err)
		}
	}
	if n.normalMap != nil {
		if err := n.normalMap.Bind(shader.NormalMapUnit); err != nil {
			return fmt.Errorf("draw %q: %w", n.Name, err)
		}
	} else {
		mat = mat.WithNormalMap(false)
	}

	ctx.Program.SetMat4(shader.UniformModel, world)
	ctx.Program.SetMaterial(mat)
	ctx.Program.SetRouting(n.EffectiveRouting())
	n.buffer.Draw()
	return nil
}

// Update runs the animators of n and its subtree in pre-order.
func (n *Node) Update(dt float32) {
	if n.animator != nil {
		n.animator.Animate(n, dt)
	}
	for _, c := range n.children {
		c.Update(dt)
	}
}

// Release frees the GPU buffers of the subtree. Released nodes draw
// nothing and cannot be initialized again.
func (n *Node) Release() {
	if n.buffer != nil {
		n.buffer.Release()
		n.buffer = nil
	}
	for _, c := range n.children {
		c.Release()
	}
}
