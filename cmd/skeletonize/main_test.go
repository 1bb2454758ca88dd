package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/skel"
)

// writeSquare writes a 12x12 PNG with a white 8x8 square on black.
func writeSquare(t *testing.T, path string) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 12, 12))
	for y := 2; y < 10; y++ {
		for x := 2; x < 10; x++ {
			img.Pix[y*img.Stride+x] = 255
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		args []string
		out  string
	}{
		{"thin", nil, "square_skel.png"},
		{"midpoint", []string{"-mode", "midpoint"}, "square_skel.png"},
		{"dither and erase", []string{"-dither", "atkinson", "-erase"}, "square_skel.png"},
		{"blur", []string{"-blur", "1.0", "-v"}, "square_skel.png"},
		{"blur with kernel size", []string{"-blur", "1.0", "-blur-size", "5"}, "square_skel.png"},
		{"box blur", []string{"-box", "1"}, "square_skel.png"},
		{"bmp output", []string{"-format", "bmp"}, "square_skel.bmp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			in := filepath.Join(dir, "square.png")
			writeSquare(t, in)
			outDir := filepath.Join(dir, "out")

			var stderr bytes.Buffer
			args := append([]string{"-out", outDir, "-workers", "2"}, tt.args...)
			args = append(args, in)

			if code := run(context.Background(), args, nil, &stderr); code != 0 {
				t.Fatalf("run() = %d, want 0\n%s", code, stderr.String())
			}

			p, err := skel.LoadPlane(filepath.Join(outDir, tt.out))
			if err != nil {
				t.Fatalf("LoadPlane() error = %v", err)
			}
			fg := skel.CountForeground(p, 255)
			if fg == 0 || fg >= 64 {
				t.Errorf("foreground pixels = %d, want 0 < n < 64", fg)
			}
			if !strings.Contains(stderr.String(), "wrote skeleton") {
				t.Errorf("log output missing completion line:\n%s", stderr.String())
			}
		})
	}
}

func TestRunFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	writeSquare(t, good)

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-out", dir, good, filepath.Join(dir, "missing.png")}, nil, &stderr)

	if code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
	if _, err := os.Stat(filepath.Join(dir, "good_skel.png")); err != nil {
		t.Errorf("good input not written: %v", err)
	}
	if !strings.Contains(stderr.String(), "missing.png") {
		t.Errorf("failure not logged:\n%s", stderr.String())
	}
}

func TestRunUsage(t *testing.T) {
	tests := [][]string{
		{},
		{"-mode", "zhang", "a.png"},
		{"-threshold", "300", "a.png"},
		{"-foreground", "-1", "a.png"},
		{"-dither", "sierra", "a.png"},
		{"-nope", "a.png"},
		{"-format", "gif", "a.png"},
		{"-box", "-2", "a.png"},
		{"-blur-size", "-1", "a.png"},
		{filepath.Join("a", "x.png"), filepath.Join("b", "x.png")},
		{"-", "-"},
	}

	for _, args := range tests {
		var stderr bytes.Buffer
		if code := run(context.Background(), args, nil, &stderr); code != 2 {
			t.Errorf("run(%v) = %d, want 2", args, code)
		}
	}
}

func TestRunStdin(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "square.png")
	writeSquare(t, in)
	data, err := os.ReadFile(in)
	if err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-out", dir, "-"}, bytes.NewReader(data), &stderr)
	if code != 0 {
		t.Fatalf("run() = %d, want 0\n%s", code, stderr.String())
	}

	p, err := skel.LoadPlane(filepath.Join(dir, "stdin_skel.png"))
	if err != nil {
		t.Fatalf("LoadPlane() error = %v", err)
	}
	if fg := skel.CountForeground(p, 255); fg == 0 || fg >= 64 {
		t.Errorf("foreground pixels = %d, want 0 < n < 64", fg)
	}
}

func TestRunEmptyStdin(t *testing.T) {
	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-out", t.TempDir(), "-"}, strings.NewReader(""), &stderr)
	if code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "empty data") {
		t.Errorf("empty input not reported:\n%s", stderr.String())
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input  string
		format string
		want   string
	}{
		{filepath.Join("scans", "chest.v2.dcm"), "png", filepath.Join("out", "chest.v2_skel.png")},
		{"glyph.tif", "bmp", filepath.Join("out", "glyph_skel.bmp")},
		{"-", "png", filepath.Join("out", "stdin_skel.png")},
	}

	for _, tt := range tests {
		if got := outputPath("out", tt.input, tt.format); got != tt.want {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tt.input, tt.format, got, tt.want)
		}
	}
}
