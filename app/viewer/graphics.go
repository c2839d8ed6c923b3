package viewer

//OpenGL Windowing Calls and Structs
import (
	"fmt"
	"strings"

	"diesel.com/sph2d/app"
	F "diesel.com/sph2d/fluid"
	U "diesel.com/sph2d/utils"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.2/glfw"
	"github.com/sirupsen/logrus"
)

//Attribute locations shared by the particle and wall draws
const (
	DSL_VERTEX  = 0
	DSL_DENSITY = 1
)

const vertexSRC = `#version 410 core
layout(location = 0) in vec2 position;
layout(location = 1) in float density;

uniform float pointSize;
uniform float maxDensity;

out vec4 color;

void main() {
	gl_Position = vec4(position, 0.0, 1.0);
	gl_PointSize = pointSize;
	if (density < -3.5) {
		color = vec4(0.3, 0.3, 0.3, 0.6); //grid
		return;
	}
	if (density < -2.5) {
		color = vec4(1.0, 1.0, 1.0, 1.0); //over speed
		return;
	}
	if (density < -1.5) {
		color = vec4(0.2, 1.0, 0.3, 1.0); //debug neighbors
		return;
	}
	if (density < 0.0) {
		color = vec4(0.85, 0.85, 0.85, 1.0); //walls
		return;
	}
	float t = clamp(density / maxDensity, 0.0, 1.0);
	color = vec4(0.1 + 0.9*t, 0.45 + 0.3*(1.0 - t), 1.0 - 0.8*t, 1.0);
}
` + "\x00"

const fragSRC = `#version 410 core
in vec4 color;

uniform int roundPoints;

out vec4 fragColor;

void main() {
	if (roundPoints == 1) {
		vec2 c = gl_PointCoord - vec2(0.5);
		if (dot(c, c) > 0.25) {
			discard;
		}
	}
	fragColor = color;
}
` + "\x00"

type AppWindow struct {
	Width  int
	Height int
	Name   string
	VSync  bool
}

//DieselContext - GL objects for one particle buffer and one wall outline buffer
type DieselContext struct {
	PrgID          uint32
	VAO            [2]uint32
	VBO            [2]uint32
	PointSizeLoc   int32
	MaxDensityLoc  int32
	RoundPointsLoc int32
	GLFWindow      *glfw.Window
	capacity       [2]int //floats allocated per VBO
	buffers        app.SceneVertices
}

//InitGLFW initializes glfw and returns a Window to use
func InitGLFW(a *AppWindow) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("could not initiate GLFW: %w", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(a.Width, a.Height, a.Name, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("could not create window: %w", err)
	}
	window.MakeContextCurrent()
	if a.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return window, nil
}

//InitOpenGL compiles the shaders and allocates the vertex buffers
func InitOpenGL(log logrus.FieldLogger) (*DieselContext, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	log.WithField("version", gl.GoStr(gl.GetString(gl.VERSION))).Info("OpenGL initialized")

	vtxSHO, err := compileShader(vertexSRC, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	frgSHO, err := compileShader(fragSRC, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vtxSHO)
	gl.AttachShader(prog, frgSHO)
	gl.LinkProgram(prog)
	if err := checkProgram(prog); err != nil {
		return nil, err
	}
	gl.DeleteShader(vtxSHO)
	gl.DeleteShader(frgSHO)

	dsl := &DieselContext{PrgID: prog}
	dsl.PointSizeLoc = gl.GetUniformLocation(prog, gl.Str("pointSize\x00"))
	dsl.MaxDensityLoc = gl.GetUniformLocation(prog, gl.Str("maxDensity\x00"))
	dsl.RoundPointsLoc = gl.GetUniformLocation(prog, gl.Str("roundPoints\x00"))

	MakeVAO(dsl)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return dsl, nil
}

//MakeVAO generates the particle (0) and wall (1) buffers with the shared vertex layout
func MakeVAO(dsl *DieselContext) {
	gl.GenBuffers(2, &dsl.VBO[0])
	gl.GenVertexArrays(2, &dsl.VAO[0])
	stride := int32(U.VERTEX_STRIDE * 4)

	for i := 0; i < 2; i++ {
		gl.BindVertexArray(dsl.VAO[i])
		gl.BindBuffer(gl.ARRAY_BUFFER, dsl.VBO[i])
		gl.EnableVertexAttribArray(DSL_VERTEX)
		gl.VertexAttribPointer(DSL_VERTEX, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
		gl.EnableVertexAttribArray(DSL_DENSITY)
		gl.VertexAttribPointer(DSL_DENSITY, 1, gl.FLOAT, false, stride, gl.PtrOffset(8))
	}
	gl.BindVertexArray(0)
}

//upload streams packed floats into VBO i, growing the buffer store when needed
func (dsl *DieselContext) upload(i int, data []float32) error {
	gl.BindBuffer(gl.ARRAY_BUFFER, dsl.VBO[i])
	if len(data) > dsl.capacity[i] {
		dsl.capacity[i] = 2 * len(data)
		gl.BufferData(gl.ARRAY_BUFFER, dsl.capacity[i]*4, nil, gl.DYNAMIC_DRAW)
	}
	if len(data) == 0 {
		return nil
	}
	ptr := gl.MapBufferRange(gl.ARRAY_BUFFER, 0, len(data)*4, gl.MAP_WRITE_BIT|gl.MAP_INVALIDATE_RANGE_BIT)
	err := U.TransferVertexData(ptr, len(data), data)
	if ptr != nil {
		gl.UnmapBuffer(gl.ARRAY_BUFFER)
	}
	return err
}

//Draw renders the walls and particles. Particle colors follow density up to maxDensity.
//A non nil debug readout adds the grid, the sample circle and the marked particles.
func Draw(sph *F.SPHFluid, dsl *DieselContext, debug *app.DebugReadout, pointSize float32, maxDensity float32) error {
	dsl.buffers.Pack(sph, debug)
	lines, vertices := dsl.buffers.Lines, dsl.buffers.Particles
	if err := dsl.upload(1, lines); err != nil {
		return err
	}
	if err := dsl.upload(0, vertices); err != nil {
		return err
	}

	gl.ClearColor(0.08, 0.08, 0.1, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(dsl.PrgID)
	gl.Uniform1f(dsl.PointSizeLoc, pointSize)
	gl.Uniform1f(dsl.MaxDensityLoc, maxDensity)

	//-------------DRAW STATIC GEOMETRY--------------------------------//
	gl.Uniform1i(dsl.RoundPointsLoc, 0)
	gl.BindVertexArray(dsl.VAO[1])
	gl.DrawArrays(gl.LINES, 0, int32(len(lines)/U.VERTEX_STRIDE))

	//--------------SPH PARTICLE DRAW---------------------------------------
	gl.Uniform1i(dsl.RoundPointsLoc, 1)
	gl.BindVertexArray(dsl.VAO[0])
	gl.DrawArrays(gl.POINTS, 0, int32(len(vertices)/U.VERTEX_STRIDE))
	gl.BindVertexArray(0)

	dsl.GLFWindow.SwapBuffers()
	return nil
}

//Release frees the GL objects
func (dsl *DieselContext) Release() {
	gl.DeleteBuffers(2, &dsl.VBO[0])
	gl.DeleteVertexArrays(2, &dsl.VAO[0])
	gl.DeleteProgram(dsl.PrgID)
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("GLSL shader failed to compile: %v", log)
	}
	return shader, nil
}

func checkProgram(prog uint32) error {
	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(prog, logLength, nil, gl.Str(log))
		return fmt.Errorf("GLSL program failed to link: %v", log)
	}
	return nil
}
