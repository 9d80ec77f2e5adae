package viewer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// compileProgram compiles vertex and fragment shaders and links them.
func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}
	return program, nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}
	return shader, nil
}

func uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// Attribute locations shared by the shader and the mesh layout.
const (
	attrPosition = iota
	attrPositionLow
	attrNext
	attrNextLow
	attrColor
	attrPicking
	attrUnit
)

// Draw modes selected by u_mode.
const (
	modeColor   = 0
	modePicking = 1
	modeFlat    = 2
)

const vertexShader = `#version 410 core
layout(location = 0) in vec3 a_position;
layout(location = 1) in vec2 a_positionLow;
layout(location = 2) in vec3 a_next;
layout(location = 3) in vec2 a_nextLow;
layout(location = 4) in vec4 a_color;
layout(location = 5) in vec3 a_picking;
layout(location = 6) in vec2 a_unit;

uniform mat4 u_viewProj;
uniform vec2 u_originHigh;
uniform vec2 u_originLow;
uniform bool u_wall;
uniform int u_mode;
uniform vec4 u_flatColor;

out vec4 v_color;

// Subtract high and low parts separately so large coordinates survive float32.
vec2 relative(vec3 high, vec2 low) {
    return (high.xy - u_originHigh) + (low - u_originLow);
}

void main() {
    vec2 xy = relative(a_position, a_positionLow);
    float z = a_position.z;
    if (u_wall) {
        xy = mix(xy, relative(a_next, a_nextLow), a_unit.x);
        z = a_position.z * a_unit.y;
    }
    gl_Position = u_viewProj * vec4(xy, z, 1.0);

    if (u_mode == 1) {
        v_color = vec4(a_picking, 1.0);
    } else if (u_mode == 2) {
        v_color = u_flatColor;
    } else {
        v_color = a_color;
    }
}
`

const fragmentShader = `#version 410 core
in vec4 v_color;
out vec4 fragColor;

void main() {
    fragColor = v_color;
}
`
