package shading

import _ "embed"

// VertexShader transforms scene vertices and passes world-space position
// and normal to the fragment stage.
//
//go:embed shaders/scene.vert
var VertexShader string

// FragmentShader evaluates the routed terms. Evaluate mirrors it.
//
//go:embed shaders/scene.frag
var FragmentShader string
