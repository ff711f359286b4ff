package imaging

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"
	"testing"

	"github.com/ironsheep/hsv-wizard/internal/geometry"
)

func TestSavedBarWidth(t *testing.T) {
	tests := []struct {
		zoom float64
		want int
	}{
		{1, 5},
		{0.5, 10},
		{0.1, 50},
		{2, 2},
		{2.5, 2},
		{10, 2},
		{1.5, 3},
		{0, 2},
	}

	for _, tt := range tests {
		if got := SavedBarWidth(tt.zoom); got != tt.want {
			t.Errorf("SavedBarWidth(%v): got %d, want %d", tt.zoom, got, tt.want)
		}
	}
}

func TestComposite_NoBar(t *testing.T) {
	src := createPatternImage(40, 40)

	out := Composite(src, nil, 1)
	if out == src {
		t.Fatal("Composite should return a copy")
	}
	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("byte %d differs without a bar", i)
		}
	}
}

func TestComposite_DrawsBarAndLabel(t *testing.T) {
	src := createInMemoryImage(200, 200, color.NRGBA{0, 0, 0, 255})
	bar := &BarOverlay{
		Line:  geometry.Seg(geometry.Pt(50, 150), geometry.Pt(150, 150)),
		Label: "10 µm",
	}

	out := Composite(src, bar, 1)

	if got := out.NRGBAAt(100, 150); got.R < 200 {
		t.Errorf("bar pixel: got %v, want white", got)
	}
	if got := out.NRGBAAt(100, 100); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("pixel away from bar: got %v, want black", got)
	}

	// Label occupies the rows just above the bar, minus the gap.
	lit := 0
	for y := 150 - 10 - labelHeight(); y < 150-10; y++ {
		for x := 80; x < 120; x++ {
			if out.NRGBAAt(x, y).R > 128 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected label pixels above the bar")
	}

	if got := src.NRGBAAt(100, 150); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("source modified: got %v", got)
	}
}

func TestComposite_BarWidthFollowsZoom(t *testing.T) {
	src := createInMemoryImage(100, 100, color.NRGBA{0, 0, 0, 255})
	bar := &BarOverlay{Line: geometry.Seg(geometry.Pt(10, 50), geometry.Pt(90, 50))}

	countRows := func(zoom float64) int {
		out := Composite(src, bar, zoom)
		rows := 0
		for y := 0; y < 100; y++ {
			if out.NRGBAAt(50, y).R > 128 {
				rows++
			}
		}
		return rows
	}

	thin := countRows(2)
	thick := countRows(0.25)
	if thick <= thin {
		t.Errorf("bar at zoom 0.25 (%d rows) should be thicker than at zoom 2 (%d rows)", thick, thin)
	}
}

func TestEncodePNG(t *testing.T) {
	img := createPatternImage(30, 20)

	enc, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	if enc.Width != 30 || enc.Height != 20 {
		t.Errorf("size: got %dx%d, want 30x20", enc.Width, enc.Height)
	}
	if enc.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", enc.MimeType)
	}

	raw, err := base64.StdEncoding.DecodeString(enc.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 30 {
		t.Errorf("decoded width: got %d, want 30", decoded.Bounds().Dx())
	}
}
