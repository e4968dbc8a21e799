// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/ostafen/pngdec/internal/export"
	"github.com/ostafen/pngdec/internal/png"
	osutils "github.com/ostafen/pngdec/pkg/util/os"
	"github.com/spf13/cobra"
)

func DefineConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Decode a PNG file and write its pixels as a BMP image",
		Long: `The 'convert' command fully decodes a PNG file: it parses the chunks, inflates the image data,
reconstructs the filtered scanlines (deinterlacing Adam7 images) and writes the resulting bitmap
as an uncompressed BMP file.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunConvert,
	}

	cmd.Flags().StringP("output", "o", "", "path of the BMP file (default: input name with .bmp extension)")
	cmd.Flags().Int("scale", 1, "integer enlargement factor, using nearest-neighbour sampling")
	return cmd
}

func RunConvert(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	input := args[0]
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".bmp"
	}
	scale, _ := cmd.Flags().GetInt("scale")

	f, err := s.openInput(input)
	if err != nil {
		return err
	}
	defer f.Close()

	start := time.Now()
	img, err := png.DecodeImage(f.Data, s.decodeOptions()...)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", input, err)
	}
	s.logger.Info("decoded image",
		"path", input,
		"width", img.Width,
		"height", img.Height,
		"duration", time.Since(start),
	)

	out, err := osutils.CreateFile(output)
	if err != nil {
		return err
	}

	if err := writeBMP(out, img, scale); err != nil {
		out.Close()
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "[INFO] Wrote %dx%d image to %s\n",
		int(img.Width)*scale, int(img.Height)*scale, output)
	return nil
}

func writeBMP(w io.Writer, img *png.Image, scale int) error {
	bw := bufio.NewWriterSize(w, 1024*1024)
	if err := export.WriteBMP(bw, img.Pixels.Image(), scale); err != nil {
		return err
	}
	return bw.Flush()
}
