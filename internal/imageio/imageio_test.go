package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 9, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 9; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 29), G: uint8(y * 51), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func TestSaveLoad_Lossless(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.png", "out.bmp", "OUT.PNG"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			want := testImage()
			if err := Save(path, want); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got.Bounds() != want.Bounds() {
				t.Fatalf("bounds = %v, want %v", got.Bounds(), want.Bounds())
			}
			if !bytes.Equal(got.Pix, want.Pix) {
				t.Error("pixels changed across save/load")
			}
		})
	}
}

func TestSave_RejectsLossy(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.jpg", "out.jpeg", "out.gif", "noext"} {
		path := filepath.Join(dir, name)
		err := Save(path, testImage())
		if !errors.Is(err, ErrLossyFormat) {
			t.Errorf("Save(%q) error = %v, want ErrLossyFormat", name, err)
		}
		if _, statErr := os.Stat(path); statErr == nil {
			t.Errorf("Save(%q) created a file", name)
		}
	}
}

func TestToRGBA_DropsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	src.SetNRGBA(1, 0, color.NRGBA{R: 7, G: 8, B: 9, A: 255})

	dst := ToRGBA(src)
	want := []uint8{200, 100, 50, 255, 7, 8, 9, 255}
	if !bytes.Equal(dst.Pix, want) {
		t.Errorf("Pix = %v, want %v", dst.Pix, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for a missing file")
	}
	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(junk); err == nil {
		t.Error("expected error for an undecodable file")
	}
}

func TestDefaultOutputPath(t *testing.T) {
	a := DefaultOutputPath("out", FormatPNG)
	b := DefaultOutputPath("out", FormatPNG)
	if a == b {
		t.Error("default output paths collide")
	}
	if filepath.Dir(a) != "out" || !strings.HasPrefix(filepath.Base(a), "stego-") || filepath.Ext(a) != ".png" {
		t.Errorf("DefaultOutputPath() = %q", a)
	}
}
