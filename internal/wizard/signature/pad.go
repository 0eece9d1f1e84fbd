package signature

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/domain"
)

// State of the drawing surface.
type State string

const (
	StateEmpty    State = "empty"
	StateDirty    State = "dirty"
	StateCaptured State = "captured"
)

const (
	DefaultWidth  = 600
	DefaultHeight = 200

	dataURIPrefix = "data:image/png;base64,"
)

// Point is a pointer position in canvas pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pad is a free-hand drawing surface. A stroke moves it from empty to dirty;
// releasing the pointer captures a PNG snapshot of everything drawn so far.
type Pad struct {
	mu       sync.Mutex
	width    int
	height   int
	state    State
	readOnly bool
	strokes  [][]Point
	snapshot string
}

func NewPad(width, height int) *Pad {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Pad{width: width, height: height, state: StateEmpty}
}

// State returns the current pad state.
func (p *Pad) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// ReadOnly reports whether the pad is replaying a stored signature.
func (p *Pad) ReadOnly() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readOnly
}

// Snapshot returns the captured data URI, or "" when nothing is captured.
func (p *Pad) Snapshot() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateCaptured {
		return ""
	}
	return p.snapshot
}

// BeginStroke starts a new stroke at pt.
func (p *Pad) BeginStroke(pt Point) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.readOnly {
		return domain.ErrReadOnly
	}
	p.strokes = append(p.strokes, []Point{pt})
	p.state = StateDirty
	return nil
}

// MoveTo extends the current stroke.
func (p *Pad) MoveTo(pt Point) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.readOnly {
		return domain.ErrReadOnly
	}
	if p.state != StateDirty || len(p.strokes) == 0 {
		return fmt.Errorf("%w: no stroke in progress", domain.ErrNotReady)
	}
	last := len(p.strokes) - 1
	p.strokes[last] = append(p.strokes[last], pt)
	return nil
}

// EndStroke releases the pointer and captures the bitmap.
func (p *Pad) EndStroke() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.readOnly {
		return domain.ErrReadOnly
	}
	if p.state != StateDirty {
		return fmt.Errorf("%w: no stroke in progress", domain.ErrNotReady)
	}
	uri, err := render(p.width, p.height, p.strokes)
	if err != nil {
		return fmt.Errorf("failed to capture signature: %w", err)
	}
	p.snapshot = uri
	p.state = StateCaptured
	return nil
}

// Draw applies a whole stroke in one call, as sent by clients that buffer
// pointer events.
func (p *Pad) Draw(stroke []Point) error {
	if len(stroke) == 0 {
		return fmt.Errorf("%w: empty stroke", domain.ErrNotReady)
	}
	if err := p.BeginStroke(stroke[0]); err != nil {
		return err
	}
	for _, pt := range stroke[1:] {
		if err := p.MoveTo(pt); err != nil {
			return err
		}
	}
	return p.EndStroke()
}

// Clear wipes the surface back to empty. Read-only pads are left alone.
func (p *Pad) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.readOnly {
		return
	}
	p.strokes = nil
	p.snapshot = ""
	p.state = StateEmpty
}

// Load replays a stored signature. The pad becomes read-only and captured;
// an empty uri leaves it read-only and empty.
func (p *Pad) Load(uri string) error {
	if uri != "" && !strings.HasPrefix(uri, "data:image/") {
		return fmt.Errorf("%w: signature is not an image data uri", domain.ErrUnknownOption)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.readOnly = true
	p.strokes = nil
	p.snapshot = uri
	if uri == "" {
		p.state = StateEmpty
	} else {
		p.state = StateCaptured
	}
	return nil
}

var ink = color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}

func render(w, h int, strokes [][]Point) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for _, s := range strokes {
		if len(s) == 1 {
			plot(img, s[0].X, s[0].Y)
			continue
		}
		for i := 1; i < len(s); i++ {
			line(img, s[i-1], s[i])
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func plot(img *image.RGBA, x, y int) {
	if image.Pt(x, y).In(img.Rect) {
		img.SetRGBA(x, y, ink)
	}
}

// line draws a Bresenham segment between a and b.
func line(img *image.RGBA, a, b Point) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		plot(img, x, y)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
