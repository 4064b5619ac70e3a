package shapes

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type textVertex struct {
	Position [2]float32 `shapes:"layout" location:"0" format:"float2"`
	UV       [2]float32 `shapes:"layout" location:"1" format:"float2"`
	Color    [4]float32 `shapes:"layout" location:"2" format:"float4"`
}

// TextItem is one overlay label. X, Y are the top-left corner in window
// pixels. Scale 0 means 1.
type TextItem struct {
	Text  string
	X     float32
	Y     float32
	Scale float32
	Color Color
}

type GlyphInfo struct {
	UVMin [2]float32
	UVMax [2]float32
	Size  [2]float32
	Off   [2]float32
	Adv   float32
}

// TextAtlas rasterizes the printable ASCII range of one face into a single
// alpha image, with per-glyph UV rectangles and advances.
type TextAtlas struct {
	Image  *image.Alpha
	Glyphs map[rune]GlyphInfo
	Face   font.Face
	Size   int
}

// NewTextAtlas builds an atlas from the embedded Go Regular face.
func NewTextAtlas(fontSize float64) (*TextAtlas, error) {
	return NewTextAtlasFromFont(goregular.TTF, fontSize)
}

func NewTextAtlasFromFont(fontBytes []byte, fontSize float64) (*TextAtlas, error) {
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}

	const atlasSize = 512
	atlas := image.NewAlpha(image.Rect(0, 0, atlasSize, atlasSize))
	glyphs := make(map[rune]GlyphInfo)

	x, y := 2, 2
	rowHeight := 0

	for r := rune(32); r < 127; r++ {
		bounds, mask, _, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}

		w := mask.Bounds().Dx()
		h := mask.Bounds().Dy()

		if x+w >= atlasSize {
			x = 2
			y += rowHeight + 4
			rowHeight = 0
		}

		if y+h >= atlasSize {
			break
		}

		draw.Draw(atlas, image.Rect(x, y, x+w, y+h), mask, mask.Bounds().Min, draw.Src)

		glyphs[r] = GlyphInfo{
			UVMin: [2]float32{float32(x) / atlasSize, float32(y) / atlasSize},
			UVMax: [2]float32{float32(x+w) / atlasSize, float32(y+h) / atlasSize},
			Size:  [2]float32{float32(w), float32(h)},
			Off:   [2]float32{float32(bounds.Min.X), float32(bounds.Min.Y)},
			Adv:   float32(adv) / 64.0, // Convert fixed 26.6 to float
		}

		x += w + 4
		if h > rowHeight {
			rowHeight = h
		}
	}

	return &TextAtlas{
		Image:  atlas,
		Glyphs: glyphs,
		Face:   face,
		Size:   atlasSize,
	}, nil
}

// BuildVertices lays out the items in window pixels, two triangles per
// glyph. The text shader converts pixels to clip space.
func (atlas *TextAtlas) BuildVertices(items []TextItem) []textVertex {
	vertices := make([]textVertex, 0, len(items)*6)

	metrics := atlas.Face.Metrics()
	ascent := float32(metrics.Ascent.Ceil())
	lineHeight := float32(metrics.Height.Ceil())

	for _, item := range items {
		scale := item.Scale
		if scale == 0 {
			scale = 1
		}
		color := colorToVec4(item.Color)

		startX := item.X
		posX := startX
		posY := item.Y + ascent*scale

		for _, r := range item.Text {
			if r == '\n' {
				posX = startX
				posY += lineHeight * scale
				continue
			}

			g, ok := atlas.Glyphs[r]
			if !ok {
				continue
			}

			x0 := posX + g.Off[0]*scale
			y0 := posY + g.Off[1]*scale
			x1 := posX + (g.Off[0]+g.Size[0])*scale
			y1 := posY + (g.Off[1]+g.Size[1])*scale

			// Triangle 1
			vertices = append(vertices, textVertex{Position: [2]float32{x0, y0}, UV: [2]float32{g.UVMin[0], g.UVMin[1]}, Color: color})
			vertices = append(vertices, textVertex{Position: [2]float32{x1, y0}, UV: [2]float32{g.UVMax[0], g.UVMin[1]}, Color: color})
			vertices = append(vertices, textVertex{Position: [2]float32{x0, y1}, UV: [2]float32{g.UVMin[0], g.UVMax[1]}, Color: color})

			// Triangle 2
			vertices = append(vertices, textVertex{Position: [2]float32{x1, y0}, UV: [2]float32{g.UVMax[0], g.UVMin[1]}, Color: color})
			vertices = append(vertices, textVertex{Position: [2]float32{x1, y1}, UV: [2]float32{g.UVMax[0], g.UVMax[1]}, Color: color})
			vertices = append(vertices, textVertex{Position: [2]float32{x0, y1}, UV: [2]float32{g.UVMin[0], g.UVMax[1]}, Color: color})

			posX += g.Adv * scale
		}
	}

	return vertices
}

// MeasureText returns the pixel width and height of the laid-out text.
func (atlas *TextAtlas) MeasureText(text string, scale float32) (float32, float32) {
	if atlas == nil {
		return 0, 0
	}
	if scale == 0 {
		scale = 1
	}

	metrics := atlas.Face.Metrics()
	lineHeight := float32(metrics.Height.Ceil())

	maxW := float32(0)
	currentW := float32(0)
	lines := 1

	for _, r := range text {
		if r == '\n' {
			if currentW > maxW {
				maxW = currentW
			}
			currentW = 0
			lines++
			continue
		}

		g, ok := atlas.Glyphs[r]
		if !ok {
			continue
		}
		currentW += g.Adv * scale
	}

	if currentW > maxW {
		maxW = currentW
	}

	return maxW, lineHeight * scale * float32(lines)
}

func (atlas *TextAtlas) LineHeight(scale float32) float32 {
	if atlas == nil {
		return 0
	}
	if scale == 0 {
		scale = 1
	}
	metrics := atlas.Face.Metrics()
	return float32(metrics.Height.Ceil()) * scale
}
