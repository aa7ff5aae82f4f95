package shader

import "fmt"

// Attribute names used by mesh buffers.
const (
	AttribPosition = "vertexPos"
	AttribNormal   = "vertexNormal"
	AttribColor    = "vertexColor"
	AttribTexture  = "vertexTexture"
)

// Uniform names used by the scene renderer.
const (
	UniformProjection   = "projectionMat"
	UniformView         = "viewMat"
	UniformModel        = "modelMat"
	UniformViewPosition = "viewPosition"
	UniformTexture      = "textureImage"
	UniformNormalMap    = "normalMap"
	UniformUseNormalMap = "useNormalMap"
	UniformAmbientOn    = "ambientOn"
	UniformDiffuseOn    = "diffuseOn"
	UniformSpecularOn   = "specularOn"
	UniformRouting      = "renderingFlag"

	MaterialAmbient   = "ambient"
	MaterialDiffuse   = "diffuse"
	MaterialSpecular  = "specular"
	MaterialHighlight = "highlight"
)

// glslNames maps the names above to the identifiers declared in the GLSL
// sources. Names not listed here are used as is.
var glslNames = map[string]string{
	AttribPosition: "aPos",
	AttribNormal:   "aNormal",
	AttribColor:    "aColor",
	AttribTexture:  "aTexture",

	UniformProjection:   "projection",
	UniformView:         "view",
	UniformModel:        "model",
	UniformTexture:      "txt_text",
	UniformNormalMap:    "txt_norm",
	UniformUseNormalMap: "txt_normOn",
	UniformAmbientOn:    "l_ambientOn",
	UniformDiffuseOn:    "l_diffuseOn",
	UniformSpecularOn:   "l_specularOn",

	MaterialAmbient:   "material.ambient",
	MaterialDiffuse:   "material.diffuse",
	MaterialSpecular:  "material.specular",
	MaterialHighlight: "material.highlight",
}

// GLSLName resolves a canonical attribute or uniform name.
func GLSLName(name string) string {
	if n, ok := glslNames[name]; ok {
		return n
	}
	return name
}

// LightField returns the uniform name of one field of light slot i,
// for example light[3].spotOn.
func LightField(i int, field string) string {
	return fmt.Sprintf("light[%d].%s", i, field)
}
