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
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ostafen/pngdec/internal/png"
	"github.com/ostafen/pngdec/pkg/util/format"
	"github.com/spf13/cobra"
)

func DefineInfoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Print the header of a PNG file",
		Long: `The 'info' command parses the chunk stream of a PNG file and prints its header fields,
the palette size and the amount of compressed and filtered image data.
Pixel data is not decompressed unless --inflate is given.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunInfo,
	}

	cmd.Flags().Bool("inflate", false, "also decompress the image data and report its size")
	return cmd
}

func RunInfo(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	f, err := s.openInput(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	img, err := png.Decode(f.Data, s.decodeOptions()...)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", args[0], err)
	}

	compressed := len(img.Payload)
	inflate, _ := cmd.Flags().GetBool("inflate")
	if inflate {
		if err := png.InflatePayload(img, nil); err != nil {
			return fmt.Errorf("failed to inflate %s: %w", args[0], err)
		}
	}
	return printInfo(cmd.OutOrStdout(), img, compressed)
}

func printInfo(out io.Writer, img *png.Image, compressed int) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Dimensions:\t%dx%d\n", img.Width, img.Height)
	fmt.Fprintf(w, "Color type:\t%d (%s)\n", img.ColorType, img.ColorType)
	fmt.Fprintf(w, "Bit depth:\t%d\n", img.BitDepth)
	fmt.Fprintf(w, "Bytes per pixel:\t%d\n", img.BytesPerPixel())
	fmt.Fprintf(w, "Interlace:\t%s\n", interlaceName(img.InterlaceMethod))

	if img.Palette != nil {
		fmt.Fprintf(w, "Palette:\t%d entries\n", img.PaletteLen())
	} else {
		fmt.Fprintln(w, "Palette:\tnone")
	}

	fmt.Fprintf(w, "Compressed data:\t%s\n", format.FormatBytes(int64(compressed)))
	if img.Stage == png.StageInflated {
		fmt.Fprintf(w, "Filtered data:\t%s (expected %s)\n",
			format.FormatBytes(int64(len(img.Payload))),
			format.FormatBytes(int64(img.FilteredSize())),
		)
	}
	return w.Flush()
}

func interlaceName(method uint8) string {
	if method == png.InterlaceAdam7 {
		return "Adam7"
	}
	return "none"
}
