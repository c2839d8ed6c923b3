package viewer

//Manages the fluid scene: window callbacks, frame timing and the render loop. All
//OpenGL and engine calls run on the locked main thread.
import (
	"fmt"
	"runtime"
	"time"

	"diesel.com/sph2d/app"
	F "diesel.com/sph2d/fluid"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.2/glfw"
	"github.com/sirupsen/logrus"
)

const FRAME_CAP = 50 * time.Millisecond //Longest frame handed to the engine (window drags, breakpoints)
const TITLE_INTERVAL = time.Second
const FORCE_NUDGE = 0.5 //Pressure coefficient change per Up/Down press

//Scene - engine, GL context and input state for one viewer window
type Scene struct {
	Config    *app.ConfigWrapper
	SPH       *F.SPHFluid
	Context   *DieselContext
	Pointer   app.Pointer
	Controls  app.Controls
	Debug     bool //Overlay the grid and the pointer readout
	Log       logrus.FieldLogger
	readout   app.DebugReadout
	lastFrame time.Time
	lastTitle time.Time
	frames    int
}

//RenderFluidGL opens a window sized to the configured world and runs until it closes
func RenderFluidGL(config *app.ConfigWrapper, log logrus.FieldLogger) error {
	//GL contexts are bound to the OS thread that created them
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	params := config.Fluid.Parameters()
	sph := F.NewSPHFluid(params, log)
	sph.Reset()

	win := AppWindow{int(params.Width), int(params.Height), config.Window.Title, config.Window.VSync}
	window, err := InitGLFW(&win)
	if err != nil {
		return err
	}
	defer glfw.Terminate()

	dsl, err := InitOpenGL(log)
	if err != nil {
		return fmt.Errorf("could not initiate OpenGL context: %w", err)
	}
	defer dsl.Release()
	dsl.GLFWindow = window

	scene := &Scene{Config: config, SPH: sph, Context: dsl, Log: log, Pointer: app.CenterPointer(sph)}
	scene.bindCallbacks()
	fbw, fbh := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))

	log.WithFields(logrus.Fields{
		"particles": sph.Count(),
		"world":     sph.Walls.String(),
	}).Info("viewer started")
	return scene.Run()
}

func (s *Scene) bindCallbacks() {
	window := s.Context.GLFWindow
	window.SetKeyCallback(s.processKey)
	window.SetMouseButtonCallback(s.processMouse)
	window.SetCursorPosCallback(s.processCursor)
	window.SetSizeCallback(func(w *glfw.Window, width int, height int) {
		app.ResizeWorld(s.SPH, width, height)
		s.Log.WithField("world", s.SPH.Walls.String()).Debug("world resized")
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width int, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})
}

//Run is the main render loop. Must run on the thread that created the context.
func (s *Scene) Run() error {
	window := s.Context.GLFWindow
	s.lastFrame = time.Now()
	s.lastTitle = s.lastFrame

	for !window.ShouldClose() {
		now := time.Now()
		frame := now.Sub(s.lastFrame)
		if frame > FRAME_CAP {
			frame = FRAME_CAP
		}
		s.lastFrame = now

		app.Frame(s.SPH, s.Pointer, &s.Controls, frame)
		var debug *app.DebugReadout
		if s.Debug {
			s.readout = app.ReadDebug(s.SPH, s.Pointer)
			debug = &s.readout
		}
		err := Draw(s.SPH, s.Context, debug, float32(s.Config.Window.PointSize), float32(s.Config.Window.MaxDensity))
		if err != nil {
			return err
		}
		s.frames++
		s.updateTitle(now)
		glfw.PollEvents()
	}
	return nil
}

func (s *Scene) updateTitle(now time.Time) {
	elapsed := now.Sub(s.lastTitle)
	if elapsed < TITLE_INTERVAL {
		return
	}
	fps := float64(s.frames) / elapsed.Seconds()
	summary := F.Stats(s.SPH)
	state := ""
	if s.Controls.Paused {
		state = " [paused]"
	}
	title := fmt.Sprintf("%s%s | %.0f fps | %s", s.Config.Window.Title, state, fps, summary)
	if s.Debug {
		title += fmt.Sprintf(" | density %.4f | neighbors %d", s.readout.Density, len(s.readout.Neighbors))
		s.Log.WithFields(s.readout.Fields()).Debug("pointer readout")
	}
	s.Context.GLFWindow.SetTitle(title)
	s.Log.WithField("fps", fps).Debug(summary.String())
	s.frames = 0
	s.lastTitle = now
}

func (s *Scene) processKey(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	switch key {
	case glfw.KeyEscape:
		w.SetShouldClose(true)
	case glfw.KeySpace:
		s.Controls.TogglePause()
	case glfw.KeyEnter:
		s.Controls.RequestStep()
	case glfw.KeyR:
		s.SPH.Reset()
		s.Log.Info("fluid reset")
	case glfw.KeyD:
		s.Debug = !s.Debug
		s.Log.WithField("debug", s.Debug).Info("debug overlay toggled")
	case glfw.KeyUp, glfw.KeyDown:
		delta := float32(FORCE_NUDGE)
		if key == glfw.KeyDown {
			delta = -delta
		}
		s.Log.WithField("force", app.NudgeForceStrength(s.SPH, delta)).Info("force strength set")
	}
}

func (s *Scene) processMouse(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	held := action != glfw.Release
	switch button {
	case glfw.MouseButtonLeft:
		s.Pointer.Left = held
	case glfw.MouseButtonRight:
		s.Pointer.Right = held
	}
}

//processCursor maps window coordinates into world coordinates
func (s *Scene) processCursor(w *glfw.Window, xPos float64, yPos float64) {
	width, height := w.GetSize()
	if width <= 0 || height <= 0 {
		return
	}
	s.Pointer.X = float32(xPos) * s.SPH.Params.Width / float32(width)
	s.Pointer.Y = float32(yPos) * s.SPH.Params.Height / float32(height)
}
