package renderer

import (
	"image"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/prism/internal/engine/shader"
)

// Device issues the OpenGL calls behind shader programs, mesh buffers and
// textures. It must only be used on the thread owning the GL context.
type Device struct{}

// CompileShader implements shader.Driver.
func (Device) CompileShader(stage shader.Stage, src string) (uint32, string, bool) {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == shader.StageFragment {
		kind = gl.FRAGMENT_SHADER
	}
	id := gl.CreateShader(kind)

	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(id, logLength, nil, gl.Str(log))
		gl.DeleteShader(id)
		return 0, strings.TrimRight(log, "\x00"), false
	}
	return id, "", true
}

// LinkProgram implements shader.Driver.
func (Device) LinkProgram(shaders ...uint32) (uint32, string, bool) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, strings.TrimRight(log, "\x00"), false
	}
	return program, "", true
}

func (Device) DeleteShader(id uint32)  { gl.DeleteShader(id) }
func (Device) DeleteProgram(id uint32) { gl.DeleteProgram(id) }
func (Device) UseProgram(id uint32)    { gl.UseProgram(id) }

func (Device) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (Device) Uniform1i(loc int32, v int32)      { gl.Uniform1i(loc, v) }
func (Device) Uniform1f(loc int32, v float32)    { gl.Uniform1f(loc, v) }
func (Device) Uniform3f(loc int32, v mgl32.Vec3) { gl.Uniform3f(loc, v[0], v[1], v[2]) }
func (Device) Uniform4f(loc int32, v mgl32.Vec4) { gl.Uniform4f(loc, v[0], v[1], v[2], v[3]) }
func (Device) UniformMatrix4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// Mesh buffers.

func (Device) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (Device) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (Device) BindVertexArray(vao uint32)   { gl.BindVertexArray(vao) }
func (Device) BindArrayBuffer(vbo uint32)   { gl.BindBuffer(gl.ARRAY_BUFFER, vbo) }
func (Device) BindElementBuffer(ebo uint32) { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo) }

func (Device) ArrayBufferData(data []float32) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
}

func (Device) ElementBufferData(data []uint32) {
	if len(data) == 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
}

func (Device) VertexAttrib(loc uint32, size, strideBytes, offsetBytes int) {
	gl.VertexAttribPointerWithOffset(loc, int32(size), gl.FLOAT, false, int32(strideBytes), uintptr(offsetBytes))
	gl.EnableVertexAttribArray(loc)
}

func (Device) DrawElements(count int) {
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, nil)
}

func (Device) DrawArrays(count int) { gl.DrawArrays(gl.TRIANGLES, 0, int32(count)) }

func (Device) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }
func (Device) DeleteBuffer(id uint32)       { gl.DeleteBuffers(1, &id) }

// Textures.

// UploadTexture stores img as a mipmapped, repeating RGBA texture.
func (Device) UploadTexture(img *image.RGBA) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	b := img.Bounds()
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

func (Device) BindTexture(unit int, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func (Device) DeleteTexture(id uint32) { gl.DeleteTextures(1, &id) }

// ReadPixels reads the default framebuffer as bottom-up RGBA rows.
func (Device) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
