// Package ui draws the layer above the grid: messages, resource counters,
// the hover tooltip, the selected item preview and the shop menu.
package ui

import (
	"image/color"
	"strings"
	"time"

	"go-tile-sandbox/internal/config"
	"go-tile-sandbox/internal/economy"
	"go-tile-sandbox/internal/timer"
	"go-tile-sandbox/internal/utils"
	"go-tile-sandbox/pkg/render"
)

var (
	TextColor      = color.RGBA{0, 0, 0, 255}
	TooltipBg      = color.RGBA{30, 30, 30, 255}
	TooltipText    = color.RGBA{255, 255, 255, 255}
	ResourcesColor = color.RGBA{0, 0, 0, 255}
)

// fadeWindow is how long before expiry a message starts to fade.
const fadeWindow = 500 * time.Millisecond

// Message is one line in the message stack.
type Message struct {
	Text  string
	timer *timer.Timer
}

// Preview is the selected item drawn under the cursor.
type Preview struct {
	Image      string
	Cost       economy.Cost
	Affordable bool
	X, Y       float64
	Size       float64
}

// Overlay holds everything drawn above the grid.
type Overlay struct {
	timers   *timer.Service
	ledger   *economy.Ledger
	glyphs   map[string]string
	timeout  time.Duration
	messages []*Message

	tooltip     string
	tipX, tipY  float64
	preview     *Preview
	screenWidth float64
}

// NewOverlay creates an overlay. Messages expire after timeout of unpaused
// time.
func NewOverlay(timers *timer.Service, ledger *economy.Ledger, glyphs map[string]string, timeout time.Duration) *Overlay {
	if timeout <= 0 {
		timeout = config.MessageTimeout * time.Millisecond
	}
	return &Overlay{timers: timers, ledger: ledger, glyphs: glyphs, timeout: timeout}
}

// ShowMessage pushes text onto the message stack until the timeout runs out.
func (o *Overlay) ShowMessage(text string) *Message {
	m := &Message{Text: text}
	o.messages = append(o.messages, m)
	m.timer = o.timers.Schedule(func() { o.dropMessage(m) }, o.timeout)
	return m
}

func (o *Overlay) dropMessage(m *Message) {
	for i, x := range o.messages {
		if x == m {
			o.messages = append(o.messages[:i], o.messages[i+1:]...)
			return
		}
	}
}

// Messages returns the visible message texts, oldest first.
func (o *Overlay) Messages() []string {
	out := make([]string, len(o.messages))
	for i, m := range o.messages {
		out[i] = m.Text
	}
	return out
}

// SetTooltip shows text at the given screen position; empty text hides it.
func (o *Overlay) SetTooltip(text string, x, y float64) {
	o.tooltip, o.tipX, o.tipY = text, x, y
}

func (o *Overlay) Tooltip() string { return o.tooltip }

// SetPreview sets or clears (nil) the cursor preview.
func (o *Overlay) SetPreview(p *Preview) { o.preview = p }

// Render draws the overlay. Order: messages, resources, tooltip, preview.
func (o *Overlay) Render(s render.Surface, assets render.Assets) {
	w, _ := surfaceWidth(s)
	o.screenWidth = w
	o.renderMessages(s)
	o.renderResources(s)
	o.renderTooltip(s)
	o.renderPreview(s, assets)
}

func (o *Overlay) renderMessages(s render.Surface) {
	y := float64(config.MessagePadding)
	for _, m := range o.messages {
		alpha := 1.0
		if rem := m.timer.Remaining(); rem < fadeWindow {
			alpha = utils.Lerp(0, 1, float64(rem)/float64(fadeWindow))
		}
		c := color.NRGBA{R: TextColor.R, G: TextColor.G, B: TextColor.B, A: uint8(255 * alpha)}
		_, h := s.MeasureText(m.Text)
		s.DrawText(m.Text, config.MessagePadding, y, c)
		y += h
	}
}

func (o *Overlay) renderResources(s render.Surface) {
	if o.ledger == nil {
		return
	}
	y := float64(config.ResourcesTop)
	for _, name := range o.ledger.Names() {
		label := name
		if g := o.glyphs[name]; g != "" {
			label = g
		}
		body := label + " " + economy.FormatAmount(o.ledger.Amount(name))
		tw, th := s.MeasureText(body)
		s.DrawText(body, o.screenWidth-tw-config.ResourcesRight, y, ResourcesColor)
		y += th
	}
}

func (o *Overlay) renderTooltip(s render.Surface) {
	if o.tooltip == "" {
		return
	}
	tw, th := s.MeasureText(o.tooltip)
	pad := float64(config.TooltipPadding)
	s.FillRect(o.tipX, o.tipY, tw+2*pad, th+2*pad, TooltipBg)
	s.DrawText(o.tooltip, o.tipX+pad, o.tipY+pad, TooltipText)
}

func (o *Overlay) renderPreview(s render.Surface, assets render.Assets) {
	p := o.preview
	if p == nil {
		return
	}
	alpha := 1.0
	if !p.Affordable {
		alpha = 0.4
	}
	if assets == nil {
		assets = render.StaticAssets{}
	}
	if img, ok := assets.ImageFor(p.Image); ok {
		s.DrawImage(img, p.X-p.Size/2, p.Y-p.Size/2, p.Size, p.Size, alpha)
	}
	var order []string
	if o.ledger != nil {
		order = o.ledger.Names()
	}
	y := p.Y + p.Size/2
	for _, line := range strings.Split(economy.FormatCost(p.Cost, order, o.glyphs, "\n"), "\n") {
		if line == "" {
			continue
		}
		tw, th := s.MeasureText(line)
		s.DrawText(line, p.X-tw/2, y, TextColor)
		y += th
	}
}

func surfaceWidth(s render.Surface) (float64, float64) {
	if c, ok := s.(interface{ Size() (int, int) }); ok {
		w, h := c.Size()
		return float64(w), float64(h)
	}
	return 0, 0
}
