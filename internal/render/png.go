package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"geartrain/internal/gear"
)

var (
	idleGearColor = color.RGBA{R: 189, G: 195, B: 199, A: 255}
	gridColor     = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	meshColor     = color.RGBA{R: 120, G: 120, B: 120, A: 255}
)

// Picture draws the workspace in workspace units: one grid cell is geo.CellSize pixels.
func Picture(v View, geo gear.Geometry) (*gg.Context, error) {
	if len(v.Gears) == 0 {
		return nil, fmt.Errorf("nothing to export")
	}

	// Big gears overhang their cell; pad by the largest radius plus tooth height.
	pad := 0.0
	for _, g := range v.Gears {
		pad = math.Max(pad, geo.Radius(g.Teeth)+geo.ToothSize)
	}
	pad = math.Ceil(pad)
	imageWidth := int(float64(v.Cols)*geo.CellSize + 2*pad)
	imageHeight := int(float64(v.Rows)*geo.CellSize + 2*pad)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    math.Max(8, geo.CellSize/6),
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	dc.SetColor(gridColor)
	dc.SetLineWidth(1)
	for c := 0; c <= v.Cols; c++ {
		x := pad + float64(c)*geo.CellSize
		dc.DrawLine(x, pad, x, pad+float64(v.Rows)*geo.CellSize)
	}
	for r := 0; r <= v.Rows; r++ {
		y := pad + float64(r)*geo.CellSize
		dc.DrawLine(pad, y, pad+float64(v.Cols)*geo.CellSize, y)
	}
	dc.Stroke()

	byID := make(map[int]gear.Gear, len(v.Gears))
	for _, g := range v.Gears {
		byID[g.ID] = g
	}
	if v.Mesh != nil {
		dc.SetColor(meshColor)
		dc.SetDash(4, 3)
		for _, p := range v.Mesh.Pairs() {
			ax, ay := geo.Center(byID[p[0]])
			bx, by := geo.Center(byID[p[1]])
			dc.DrawLine(ax+pad, ay+pad, bx+pad, by+pad)
			dc.Stroke()
		}
		dc.SetDash()
	}

	for _, g := range v.Gears {
		drawGearPNG(dc, v, g, geo, pad)
	}
	return dc, nil
}

// WritePNG encodes the picture to w.
func WritePNG(w io.Writer, v View, geo gear.Geometry) error {
	dc, err := Picture(v, geo)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG writes the picture to a file.
func SavePNG(path string, v View, geo gear.Geometry) error {
	dc, err := Picture(v, geo)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}

func drawGearPNG(dc *gg.Context, v View, g gear.Gear, geo gear.Geometry, pad float64) {
	cx, cy := geo.Center(g)
	cx += pad
	cy += pad
	r := geo.Radius(g.Teeth)

	entry, inChain := v.Chain.Get(g.ID)
	if inChain && g.Color != "" {
		dc.SetHexColor(g.Color)
	} else {
		dc.SetColor(idleGearColor)
	}

	angle := gg.Radians(v.Angles[g.ID])
	toothW := geo.ToothSize * 0.6
	toothH := geo.ToothSize
	for i := 0; i < g.Teeth; i++ {
		dc.Push()
		dc.RotateAbout(angle+2*math.Pi*float64(i)/float64(g.Teeth), cx, cy)
		dc.DrawRectangle(cx-toothW/2, cy-r-toothH/2, toothW, toothH)
		dc.Fill()
		dc.Pop()
	}
	dc.DrawCircle(cx, cy, r)
	dc.Fill()

	// spoke shows the current rotation
	dc.SetColor(color.White)
	dc.SetLineWidth(2)
	dc.Push()
	dc.RotateAbout(angle, cx, cy)
	dc.DrawLine(cx, cy, cx, cy-r*0.8)
	dc.Stroke()
	dc.Pop()
	if g.Driver {
		dc.DrawCircle(cx, cy, r*0.25)
		dc.Fill()
	}

	dc.SetColor(color.Black)
	label := ""
	if v.ShowTeeth {
		label = fmt.Sprintf("%dt", g.Teeth)
	}
	if inChain && v.ShowRatio {
		label += " x" + formatRatio(entry.SpeedRatio)
	}
	if inChain && v.ShowDirection {
		if entry.Direction < 0 {
			label += " ccw"
		} else {
			label += " cw"
		}
	}
	if label = strings.TrimSpace(label); label != "" {
		dc.DrawStringAnchored(label, cx, cy+r*0.45, 0.5, 0.5)
	}
}
