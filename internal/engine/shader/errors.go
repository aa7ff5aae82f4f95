package shader

import "fmt"

// CompileError is returned when a shader stage fails to compile.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader: compile: %s", e.Stage, e.Log)
}

// LinkError is returned when the program fails to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("link: %s", e.Log)
}

// MissingAttributeError reports a required vertex attribute that the
// linked program does not expose.
type MissingAttributeError struct {
	Name string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("attribute %q not found in program", e.Name)
}

// ResourceBindingError reports a value of the wrong shape passed to a
// uniform setter.
type ResourceBindingError struct {
	Uniform string
	Want    string
	Got     int
}

func (e *ResourceBindingError) Error() string {
	return fmt.Sprintf("uniform %q: want %s, got %d components", e.Uniform, e.Want, e.Got)
}
