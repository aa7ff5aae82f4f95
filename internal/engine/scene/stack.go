package scene

import "github.com/go-gl/mathgl/mgl32"

// MatrixStack accumulates world transforms during a draw traversal.
// The bottom entry is the identity and is never popped.
type MatrixStack struct {
	stack []mgl32.Mat4
}

// NewMatrixStack returns a stack holding only the identity.
func NewMatrixStack() *MatrixStack {
	s := &MatrixStack{stack: make([]mgl32.Mat4, 1, 16)}
	s.stack[0] = mgl32.Ident4()
	return s
}

// Push stores Top() * m.
func (s *MatrixStack) Push(m mgl32.Mat4) {
	s.stack = append(s.stack, s.Top().Mul4(m))
}

// Pop drops the last pushed transform.
func (s *MatrixStack) Pop() {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// Top returns the current world transform.
func (s *MatrixStack) Top() mgl32.Mat4 {
	return s.stack[len(s.stack)-1]
}

// Depth returns the number of pushed transforms.
func (s *MatrixStack) Depth() int {
	return len(s.stack) - 1
}
