package cmd

import (
	"bytes"
	"image"
	"image/color"
	stdpng "image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/pngdec/internal/png"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func writeTestPNG(t *testing.T, dir string) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 80), G: uint8(y * 120), B: 7, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, stdpng.Encode(&buf, img))

	path := filepath.Join(dir, "test.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestListChunks(t *testing.T) {
	data, err := os.ReadFile(writeTestPNG(t, t.TempDir()))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, listChunks(&out, data))
	require.Contains(t, out.String(), "IHDR")
	require.Contains(t, out.String(), "IDAT")
	require.Contains(t, out.String(), "IEND")

	out.Reset()
	require.Error(t, listChunks(&out, data[:20]))
}

func TestPrintInfo(t *testing.T) {
	data, err := os.ReadFile(writeTestPNG(t, t.TempDir()))
	require.NoError(t, err)

	img, err := png.Decode(data)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printInfo(&out, img, len(img.Payload)))
	require.Contains(t, out.String(), "3x2")
	require.Contains(t, out.String(), "none")
}

func TestRunConvert(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir)
	outPath := filepath.Join(dir, "out", "test.bmp")

	cmd := DefineConvertCommand()
	cmd.SetArgs([]string{in, "-o", outPath, "--scale", "2"})
	cmd.SetOut(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	cfg, err := bmp.DecodeConfig(f)
	require.NoError(t, err)
	require.Equal(t, 6, cfg.Width)
	require.Equal(t, 4, cfg.Height)
}

func TestRunConvertErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeTestPNG(t, dir)

	t.Run("pixel limit", func(t *testing.T) {
		cmd := DefineConvertCommand()
		cmd.Flags().Uint64("max-pixels", 0, "")
		cmd.SetArgs([]string{in, "-o", filepath.Join(dir, "limited.bmp"), "--max-pixels", "5"})
		cmd.SetOut(&bytes.Buffer{})
		require.ErrorIs(t, cmd.Execute(), png.ErrUnsupported)
	})

	t.Run("bad scale", func(t *testing.T) {
		out := filepath.Join(dir, "scaled.bmp")

		cmd := DefineConvertCommand()
		cmd.SetArgs([]string{in, "-o", out, "--scale", "0"})
		cmd.SetOut(&bytes.Buffer{})
		require.Error(t, cmd.Execute())

		// The output was closed and can be replaced.
		require.NoError(t, os.Remove(out))
	})
}
