// Package renderer draws the ocean mesh with OpenGL.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/oceanwaves/internal/engine/camera"
	"github.com/Faultbox/oceanwaves/internal/engine/shader"
	"github.com/Faultbox/oceanwaves/internal/engine/texture"
	"github.com/Faultbox/oceanwaves/internal/ocean"
	"github.com/Faultbox/oceanwaves/internal/surface"
)

// Config holds renderer configuration.
type Config struct {
	Width       int
	Height      int
	ClearColor  [3]float32
	SolidColor  [3]float32
	TexturePath string // empty or unreadable falls back to SolidColor
}

// Renderer uploads each frame's mesh and draws it. It implements
// ocean.Renderer and must only be used on the thread owning the GL context.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.Program
	camera  *camera.Camera
	light   mgl32.Vec3

	vao, vbo, ebo uint32
	vboBytes      int
	eboBytes      int
	indexCount    int32

	texture    uint32
	hasTexture bool
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		config: cfg,
		log:    log,
		camera: camera.New(),
		light:  camera.LightDirection(camera.DefaultLightYaw),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], 1.0)

	var err error
	r.program, err = shader.Compile(shader.OceanVertex, shader.OceanFragment)
	if err != nil {
		return nil, fmt.Errorf("ocean shader: %w", err)
	}

	r.createBuffers()

	if cfg.TexturePath != "" {
		img, err := texture.Load(cfg.TexturePath)
		if err != nil {
			log.Warn("water texture unavailable, using solid colour",
				zap.String("path", cfg.TexturePath), zap.Error(err))
		} else {
			r.texture = upload(img)
			r.hasTexture = true
			log.Debug("water texture loaded",
				zap.String("path", cfg.TexturePath),
				zap.Int("width", img.Bounds().Dx()),
				zap.Int("height", img.Bounds().Dy()),
			)
		}
	}

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	gl.VertexAttribPointerWithOffset(shader.AttribPosition, 4, gl.FLOAT, false, surface.VertexStride, surface.PositionOffset)
	gl.EnableVertexAttribArray(shader.AttribPosition)
	gl.VertexAttribPointerWithOffset(shader.AttribNormal, 3, gl.FLOAT, false, surface.VertexStride, surface.NormalOffset)
	gl.EnableVertexAttribArray(shader.AttribNormal)
	gl.VertexAttribPointerWithOffset(shader.AttribUV, 2, gl.FLOAT, false, surface.VertexStride, surface.UVOffset)
	gl.EnableVertexAttribArray(shader.AttribUV)

	gl.BindVertexArray(0)
}

func upload(img *image.RGBA) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	return id
}

// HasTexture reports whether the water texture was loaded.
func (r *Renderer) HasTexture() bool {
	return r.hasTexture
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Submit uploads the frame's mesh and draws it.
func (r *Renderer) Submit(f ocean.Frame) error {
	if f.Mesh == nil || len(f.Mesh.Vertices) == 0 {
		return fmt.Errorf("frame %d has no mesh", f.Number)
	}

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.uploadMesh(f.Mesh)

	if f.Modes.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	r.program.Use()
	aspect := float32(r.config.Width) / float32(max(r.config.Height, 1))
	viewProj := r.camera.ViewProjection(aspect)
	model := mgl32.Ident4()
	gl.UniformMatrix4fv(r.program.Uniform("uViewProj"), 1, false, &viewProj[0])
	gl.UniformMatrix4fv(r.program.Uniform("uModel"), 1, false, &model[0])
	gl.Uniform3fv(r.program.Uniform("uLightDir"), 1, &r.light[0])

	c := r.config.SolidColor
	gl.Uniform4f(r.program.Uniform("uColor"), c[0], c[1], c[2], 1)
	if r.hasTexture && !f.Modes.Solid {
		gl.Uniform1i(r.program.Uniform("uUseTexture"), 1)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.texture)
		gl.Uniform1i(r.program.Uniform("uTexture"), 0)
	} else {
		gl.Uniform1i(r.program.Uniform("uUseTexture"), 0)
	}

	gl.BindVertexArray(r.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("GL error 0x%x drawing frame %d", code, f.Number)
	}
	return nil
}

// uploadMesh streams the mesh into the dynamic buffers, reallocating only
// when the size changes.
func (r *Renderer) uploadMesh(m *surface.Mesh) {
	vBytes := len(m.Vertices) * int(surface.VertexStride)
	iBytes := len(m.Indices) * 4

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if vBytes != r.vboBytes {
		gl.BufferData(gl.ARRAY_BUFFER, vBytes, unsafe.Pointer(&m.Vertices[0]), gl.DYNAMIC_DRAW)
		r.vboBytes = vBytes
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, vBytes, unsafe.Pointer(&m.Vertices[0]))
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	if iBytes != r.eboBytes {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, iBytes, unsafe.Pointer(&m.Indices[0]), gl.DYNAMIC_DRAW)
		r.eboBytes = iBytes
	} else {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, iBytes, unsafe.Pointer(&m.Indices[0]))
	}
	r.indexCount = int32(len(m.Indices))
	gl.BindVertexArray(0)
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, width, height
}

// Close releases GL resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
	}
	if r.program != nil {
		r.program.Delete()
	}
}
