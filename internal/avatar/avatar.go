package avatar

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"image/color"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
)

const size = 256

var palette = []color.NRGBA{
	{R: 0x2e, G: 0x6f, B: 0xb7, A: 0xff},
	{R: 0xb7, G: 0x4e, B: 0x2e, A: 0xff},
	{R: 0x3a, G: 0x8f, B: 0x5f, A: 0xff},
	{R: 0x8a, G: 0x4e, B: 0xb7, A: 0xff},
	{R: 0xb7, G: 0x8a, B: 0x2e, A: 0xff},
	{R: 0x2e, G: 0x9b, B: 0xa8, A: 0xff},
}

// Generator renders initials avatars for new profiles. It is always invoked
// through the task dispatcher; the profile works fine without an avatar, so
// any failure here is non-fatal.
type Generator struct {
	log      *logger.Logger
	fontFace font.Face
}

func NewGenerator(baseLog *logger.Logger, fontPath string) *Generator {
	g := &Generator{log: baseLog.With("component", "AvatarGenerator")}
	if fontPath == "" {
		return g
	}
	face, err := loadFontFace(fontPath, size*0.42)
	if err != nil {
		g.log.Warn("avatar font unavailable, rendering without initials", "path", fontPath, "error", err)
		return g
	}
	g.fontFace = face
	return g
}

// DataURL renders a PNG initials avatar and returns it as a data URL suitable
// for storing directly on the profile record.
func (g *Generator) DataURL(displayName string) (string, error) {
	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	dc.SetColor(pickColor(displayName))
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	if g.fontFace != nil {
		initials := computeInitials(displayName)
		dc.SetFontFace(g.fontFace)
		tw, th := dc.MeasureString(initials)
		cx, cy := float64(size)/2, float64(size)/2
		dc.SetColor(color.White)
		dc.DrawString(initials, cx-(tw/2), cy+(th/2))
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return "", fmt.Errorf("encode avatar png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func pickColor(seed string) color.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(seed))))
	return palette[int(h.Sum32())%len(palette)]
}

func computeInitials(displayName string) string {
	parts := strings.Fields(strings.TrimSpace(displayName))
	if len(parts) == 0 {
		return "?"
	}
	first := strings.ToUpper(parts[0][:1])
	if len(parts) == 1 {
		return first
	}
	last := parts[len(parts)-1]
	return first + strings.ToUpper(last[:1])
}

func loadFontFace(fontPath string, fontSize float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{Size: fontSize}), nil
}
