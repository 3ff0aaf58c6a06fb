package preview

import (
	"errors"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"sync"

	"github.com/milk9111/tileset-editor/scenes"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
)

var ErrClosed = errors.New("preview generator closed")

// Callback receives a finished thumbnail. It runs on the goroutine that
// calls Poll, never on the worker.
type Callback func(path string, thumb image.Image, userdata int)

type request struct {
	scene    *scenes.Scene
	userdata int
	done     Callback
}

type result struct {
	path     string
	thumb    image.Image
	userdata int
	done     Callback
}

// Generator renders scene thumbnails on a background goroutine. Requests
// cannot be cancelled; receivers must check whether a result still applies.
// Queue and Poll never block: pending requests and finished results are
// unbounded lists.
type Generator struct {
	log  logrus.FieldLogger
	size int

	mu      sync.Mutex
	pending []request
	results []result
	cache   map[string]image.Image
	closed  bool

	wake    chan struct{}
	closeCh chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

func NewGenerator(size int, log logrus.FieldLogger) *Generator {
	if size <= 0 {
		size = 64
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	g := &Generator{
		log:     log,
		size:    size,
		cache:   make(map[string]image.Image),
		wake:    make(chan struct{}, 1),
		closeCh: make(chan struct{}),
	}
	g.wg.Add(1)
	go g.run()
	return g
}

// Queue asks for a thumbnail of scene. userdata is handed back untouched to
// done, typically the index of the list row waiting for the icon.
func (g *Generator) Queue(scene *scenes.Scene, userdata int, done Callback) error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return ErrClosed
	}
	g.pending = append(g.pending, request{scene: scene, userdata: userdata, done: done})
	g.mu.Unlock()

	select {
	case g.wake <- struct{}{}:
	default:
	}
	return nil
}

// Pending is the number of requests not yet rendered.
func (g *Generator) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

// Poll delivers finished thumbnails and returns how many were delivered.
func (g *Generator) Poll() int {
	g.mu.Lock()
	ready := g.results
	g.results = nil
	g.mu.Unlock()

	for _, res := range ready {
		if res.done != nil {
			res.done(res.path, res.thumb, res.userdata)
		}
	}
	return len(ready)
}

// Invalidate forgets the cached thumbnail for a scene path.
func (g *Generator) Invalidate(path string) {
	g.mu.Lock()
	delete(g.cache, path)
	g.mu.Unlock()
}

func (g *Generator) Close() {
	g.once.Do(func() {
		g.mu.Lock()
		g.closed = true
		g.pending = nil
		g.mu.Unlock()
		close(g.closeCh)
		g.wg.Wait()
	})
}

func (g *Generator) run() {
	defer g.wg.Done()
	for {
		select {
		case <-g.wake:
		case <-g.closeCh:
			return
		}
		for {
			g.mu.Lock()
			if g.closed || len(g.pending) == 0 {
				g.mu.Unlock()
				break
			}
			req := g.pending[0]
			g.pending[0] = request{}
			g.pending = g.pending[1:]
			g.mu.Unlock()

			res := result{path: req.scene.ResourcePath(), thumb: g.thumbnail(req.scene), userdata: req.userdata, done: req.done}
			g.mu.Lock()
			g.results = append(g.results, res)
			g.mu.Unlock()
		}
	}
}

func (g *Generator) thumbnail(scene *scenes.Scene) image.Image {
	path := scene.ResourcePath()
	g.mu.Lock()
	cached, ok := g.cache[path]
	g.mu.Unlock()
	if ok {
		return cached
	}

	thumb, err := Render(scene, g.size)
	if err != nil {
		g.log.WithError(err).WithField("scene", path).Warn("preview: falling back to placeholder")
		thumb = Placeholder(g.size, color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff})
	}
	g.mu.Lock()
	g.cache[path] = thumb
	g.mu.Unlock()
	return thumb
}

// Render builds a size x size thumbnail for the scene from its sprite.
// Scenes without a sprite get a neutral placeholder.
func Render(scene *scenes.Scene, size int) (image.Image, error) {
	sprite := scene.SpritePath()
	if sprite == "" {
		return Placeholder(size, color.RGBA{R: 0x3c, G: 0x78, B: 0xff, A: 0xff}), nil
	}
	f, err := os.Open(sprite)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return Thumbnail(img, size), nil
}

// Thumbnail scales src to fit a size x size square, keeping its aspect
// ratio and centering it on a transparent background.
func Thumbnail(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	sb := src.Bounds()
	sw, sh := sb.Dx(), sb.Dy()
	if sw <= 0 || sh <= 0 {
		return dst
	}
	w, h := size, size
	if sw > sh {
		h = size * sh / sw
	} else if sh > sw {
		w = size * sw / sh
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	x0 := (size - w) / 2
	y0 := (size - h) / 2
	draw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), src, sb, draw.Over, nil)
	return dst
}

// Placeholder is a filled square with a one pixel darker border.
func Placeholder(size int, fill color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	border := color.RGBA{R: fill.R / 2, G: fill.G / 2, B: fill.B / 2, A: 0xff}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x == 0 || y == 0 || x == size-1 || y == size-1 {
				img.Set(x, y, border)
			} else {
				img.Set(x, y, fill)
			}
		}
	}
	return img
}
