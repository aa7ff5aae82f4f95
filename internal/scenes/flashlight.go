package scenes

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/prism/internal/engine/material"
	"github.com/Faultbox/prism/internal/engine/scene"
	"github.com/Faultbox/prism/internal/engine/shading"
	"github.com/Faultbox/prism/internal/geometry"
)

// FlashlightTexture is the lens texture of the flashlight prefab.
const FlashlightTexture = "flashlight.jpg"

var (
	lensMaterial   = material.Material{Diffuse: mgl32.Vec4{0, 0, 0, 1}, Specular: mgl32.Vec4{1, 1, 1, 1}, Highlight: 256}
	shellMaterial  = material.Material{Ambient: mgl32.Vec4{0, 0, 0, 0.1}, Diffuse: mgl32.Vec4{0.4, 0.4, 0.4, 1}, Specular: mgl32.Vec4{1, 1, 1, 0.1}, Highlight: 8}
	buttonMaterial = material.Material{Ambient: mgl32.Vec4{0.05, 0.05, 0.05, 0.1}, Diffuse: mgl32.Vec4{0.5, 0.5, 0.5, 1}, Specular: mgl32.Vec4{0.6, 0.6, 0.6, 0.1}, Highlight: 8}
)

// Flashlight builds a flashlight pointing along +Z: a glowing lens, a
// flared head, a body and a red button. The returned lens node is the
// root; switching it off swaps the lit lens texture for plain lighting.
func Flashlight(name string, textures TextureSource) (*scene.Node, error) {
	shell := geometry.Gray(0.7)

	lensMesh, err := geometry.Cylinder(geometry.CylinderParams{
		RadiusLower: 0.4, RadiusUpper: 0.5, Height: 0.8, Sides: 36,
		Color: geometry.Color{R: 1, G: 1, B: 1},
	})
	if err != nil {
		return nil, err
	}
	headMesh, err := geometry.Cylinder(geometry.CylinderParams{
		RadiusLower: 0.5, RadiusUpper: 0.7, Height: 0.8, Sides: 36, Color: shell,
	})
	if err != nil {
		return nil, err
	}
	bodyMesh, err := geometry.Cylinder(geometry.CylinderParams{
		RadiusLower: 0.35, RadiusUpper: 0.35, Height: 2, Sides: 36, Color: shell,
	})
	if err != nil {
		return nil, err
	}
	buttonMesh, err := geometry.Cube(geometry.CubeParams{
		Length: 0.1, Width: 0.2, Height: 0.2, Color: geometry.Color{R: 1},
	})
	if err != nil {
		return nil, err
	}

	lens := scene.NewNode(name, mgl32.Vec3{}, lensMesh)
	lens.SetMaterial(lensMaterial)
	lens.SetRouting(shading.TextureModulate)
	lens.SetSwitch(scene.RoutingSwitch{OnRouting: shading.TextureModulate, OffRouting: shading.Lighting})
	if textures != nil {
		if t, ok := loadTexture(textures, name, FlashlightTexture); ok {
			lens.SetTexture(t)
		}
	}

	head := scene.NewNode(name+".head", mgl32.Vec3{0, 0, -0.01}, headMesh)
	head.SetMaterial(shellMaterial)

	body := scene.NewNode(name+".body", mgl32.Vec3{0, 0, -(2 + 0.8) / 2}, bodyMesh)
	body.SetMaterial(shellMaterial)

	button := scene.NewNode(name+".button", mgl32.Vec3{0, -(0.35 + 0.2) / 2, 0.5}, buttonMesh)
	button.SetMaterial(buttonMaterial)

	for _, link := range [][2]*scene.Node{{body, button}, {head, body}, {lens, head}} {
		if err := link[0].AddChild(link[1]); err != nil {
			return nil, err
		}
	}
	return lens, nil
}
