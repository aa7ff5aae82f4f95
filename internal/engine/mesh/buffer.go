// Package mesh owns the GPU copies of generated meshes: one vertex array,
// one interleaved vertex buffer and one index buffer per Buffer.
package mesh

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/prism/internal/engine/shader"
	"github.com/Faultbox/prism/internal/geometry"
	"github.com/Faultbox/prism/internal/logger"
)

// ErrReleased is returned when a released Buffer is used again.
var ErrReleased = errors.New("mesh buffer released")

// Device is the graphics API surface a Buffer needs. Uploads go to the
// buffers bound with BindArrayBuffer and BindElementBuffer.
type Device interface {
	GenVertexArray() uint32
	GenBuffer() uint32
	BindVertexArray(vao uint32)
	BindArrayBuffer(vbo uint32)
	BindElementBuffer(ebo uint32)
	ArrayBufferData(data []float32)
	ElementBufferData(data []uint32)
	VertexAttrib(loc uint32, size, strideBytes, offsetBytes int)
	DrawElements(count int)
	DrawArrays(count int)
	DeleteVertexArray(vao uint32)
	DeleteBuffer(id uint32)
}

// AttribResolver looks up vertex attribute locations by canonical name.
// A negative location means the attribute is absent.
type AttribResolver interface {
	AttribLocation(name string) int32
}

// attribute is one slice of the interleaved vertex.
type attribute struct {
	name     string
	size     int
	offset   int // floats
	required bool
}

var layout = []attribute{
	{shader.AttribPosition, 3, geometry.PositionOffset, true},
	{shader.AttribNormal, 3, geometry.NormalOffset, false},
	{shader.AttribColor, 3, geometry.ColorOffset, false},
	{shader.AttribTexture, 2, geometry.UVOffset, false},
}

// Buffer uploads a mesh once and draws it many times.
type Buffer struct {
	dev Device

	vao, vbo, ebo uint32
	vertexCount   int
	indexCount    int
	released      bool
}

// New creates an empty buffer. GPU objects are allocated on first Upload.
func New(dev Device) *Buffer {
	return &Buffer{dev: dev}
}

// Upload copies m to the GPU. Calling it again replaces the stored data.
func (b *Buffer) Upload(m *geometry.Mesh) error {
	if b.released {
		return ErrReleased
	}
	if b.vao == 0 {
		b.vao = b.dev.GenVertexArray()
		b.vbo = b.dev.GenBuffer()
		b.ebo = b.dev.GenBuffer()
	}

	b.dev.BindVertexArray(b.vao)
	defer b.unbind()

	b.dev.BindArrayBuffer(b.vbo)
	b.dev.ArrayBufferData(m.Interleaved())
	b.dev.BindElementBuffer(b.ebo)
	b.dev.ElementBufferData(m.Indices)

	b.vertexCount = len(m.Vertices)
	b.indexCount = len(m.Indices)
	return nil
}

// Configure points the program's attributes at the interleaved layout.
// The position attribute is required; the others are skipped when the
// program does not declare them.
func (b *Buffer) Configure(attribs AttribResolver) error {
	if b.released {
		return ErrReleased
	}
	b.dev.BindVertexArray(b.vao)
	b.dev.BindArrayBuffer(b.vbo)
	defer b.unbind()

	for _, a := range layout {
		loc := attribs.AttribLocation(a.name)
		if loc < 0 {
			if a.required {
				return &shader.MissingAttributeError{Name: a.name}
			}
			logger.Debug("skipping vertex attribute", zap.String("name", a.name))
			continue
		}
		b.dev.VertexAttrib(uint32(loc), a.size, geometry.VertexSize, a.offset*4)
	}
	return nil
}

// Draw issues one draw call. A mesh without indices is drawn as a plain
// triangle list; an empty mesh draws nothing.
func (b *Buffer) Draw() {
	if b.released || b.vertexCount == 0 {
		return
	}
	b.dev.BindVertexArray(b.vao)
	if b.indexCount > 0 {
		b.dev.DrawElements(b.indexCount)
	} else {
		b.dev.DrawArrays(b.vertexCount)
	}
	b.dev.BindVertexArray(0)
}

// Release deletes the GPU objects. Further calls are no-ops.
func (b *Buffer) Release() {
	if b.released {
		return
	}
	b.released = true
	if b.vao == 0 {
		return
	}
	b.dev.DeleteVertexArray(b.vao)
	b.dev.DeleteBuffer(b.vbo)
	b.dev.DeleteBuffer(b.ebo)
	b.vao, b.vbo, b.ebo = 0, 0, 0
}

// VertexCount returns the number of uploaded vertices.
func (b *Buffer) VertexCount() int { return b.vertexCount }

// IndexCount returns the number of uploaded indices.
func (b *Buffer) IndexCount() int { return b.indexCount }

// unbind restores the vertex array first so the element buffer binding
// stays recorded in it.
func (b *Buffer) unbind() {
	b.dev.BindVertexArray(0)
	b.dev.BindArrayBuffer(0)
}
