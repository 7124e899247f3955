package main

import (
	"time"

	"voxengine/internal/camera"
	"voxengine/internal/config"
	"voxengine/internal/graphics"
	"voxengine/internal/profiling"
	"voxengine/internal/streaming"
	"voxengine/internal/terrain"
	"voxengine/internal/world"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	winWidth  = 1280
	winHeight = 720

	slowFrame = 33 * time.Millisecond
)

var (
	skyColor   = mgl32.Vec3{0.53, 0.74, 0.94}
	waterColor = mgl32.Vec3{0.08, 0.20, 0.45}
)

// App owns the window, the camera and the chunk manager. Every method runs
// on the main OS thread.
type App struct {
	log      *zap.Logger
	settings config.Settings

	window   *glfw.Window
	camera   *camera.Camera
	chunks   *streaming.Manager
	renderer *graphics.ChunkRenderer
	overlay  *graphics.Overlay

	paused    bool
	placeType world.BlockType
}

func setupWindow() (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "glfw init")
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(winWidth, winHeight, "voxengine", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "create window")
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "gl init")
	}

	glfw.SwapInterval(0)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	return window, nil
}

func run(settings config.Settings, logger *zap.Logger) error {
	gen, err := terrain.FromSettings(settings.Terrain)
	if err != nil {
		return err
	}

	app := &App{
		log:       logger,
		settings:  settings,
		placeType: world.BlockTypeStone,
	}

	mainthread.Call(func() {
		app.window, err = setupWindow()
		if err != nil {
			return
		}
		app.renderer, err = graphics.NewChunkRenderer()
		if err != nil {
			glfw.Terminate()
			return
		}
		app.overlay, err = graphics.NewOverlay()
		if err != nil {
			app.renderer.Dispose()
			glfw.Terminate()
		}
	})
	if err != nil {
		return err
	}
	defer mainthread.Call(func() {
		app.overlay.Dispose()
		app.renderer.Dispose()
		glfw.Terminate()
	})

	opts := streaming.OptionsFromConfig(settings.ChunkManager)
	opts.Generator = gen
	opts.Uploader = graphics.GLUploader{}
	opts.Logger = logger
	app.chunks, err = streaming.New(opts)
	if err != nil {
		return err
	}
	defer mainthread.Call(app.chunks.Close)

	spawnHeight := gen.TerrainHeight(0, 0) + 3
	app.camera = camera.NewCamera(winWidth, winHeight, mgl32.Vec3{0.5, float32(spawnHeight), 0.5})
	mainthread.Call(app.bindInput)

	app.loop()
	return nil
}

func (a *App) loop() {
	limiter := NewFPSLimiter(*fpsLimit)
	last := time.Now()
	lastReport := last
	frames := 0

	for {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		closed := false
		mainthread.Call(func() {
			closed = a.window.ShouldClose()
			if !closed {
				a.frame(dt)
			}
		})
		if closed {
			return
		}

		frames++
		if took := time.Since(now); took > slowFrame {
			a.log.Debug("slow frame", zap.Duration("took", took), zap.String("top", profiling.TopN(5)))
		}
		if time.Since(lastReport) >= time.Second {
			s := a.chunks.Stats()
			a.log.Info("frame stats",
				zap.Int("fps", frames),
				zap.Int("chunks", s.Chunks),
				zap.Int("rendered", s.Render),
				zap.Int("busy", s.Busy),
				zap.Int("queued", s.QueuedTasks),
			)
			frames = 0
			lastReport = time.Now()
		}
		limiter.Wait()
	}
}

func (a *App) frame(dt float32) {
	profiling.ResetFrame()
	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	if !a.paused {
		a.move(dt)
	}
	frustum := a.camera.Frustum()
	a.chunks.Update(a.camera.Position, frustum)

	sky, fog := skyColor, float32(a.chunks.RenderDistance()*world.ChunkSizeX)
	if t, err := a.chunks.BlockTypeAt(a.camera.Position); err == nil && t == world.BlockTypeWater {
		sky, fog = waterColor, 24
	}
	gl.ClearColor(sky.X(), sky.Y(), sky.Z(), 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	proj, view := a.camera.ProjectionMatrix(), a.camera.ViewMatrix()
	a.renderer.Render(graphics.RenderParams{
		Chunks:      a.chunks.RenderList(),
		CameraPos:   a.camera.Position,
		Proj:        proj,
		View:        view,
		FogColor:    sky,
		FogDistance: max(fog, world.ChunkSizeX),
	})
	if pos, ok := a.chunks.CastRayIncluding(a.camera.Position, a.camera.Front()); ok {
		a.overlay.RenderHighlight(pos, a.camera.Position, proj, view)
	}
	a.overlay.RenderCrosshair(a.camera.AspectRatio)

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()
}
