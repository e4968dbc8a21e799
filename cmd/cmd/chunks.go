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
	"github.com/spf13/cobra"
)

func DefineChunksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chunks <file>",
		Short: "List the chunks of a PNG file",
		Long: `The 'chunks' command walks the chunk stream of a PNG file without interpreting it.
For each chunk it prints the offset, type, length, stored CRC and whether that CRC matches,
followed by the property flags encoded in the case of the type letters.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunChunks,
	}
}

func RunChunks(cmd *cobra.Command, args []string) error {
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

	return listChunks(cmd.OutOrStdout(), f.Data)
}

func listChunks(out io.Writer, data []byte) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OFFSET\tTYPE\tLENGTH\tCRC\tCRC OK\tCRITICAL\tPUBLIC\tCONFORMING\tSAFE TO COPY")

	// Checksums are reported, not enforced.
	for chunk, err := range png.Chunks(data, png.WithCRCCheck(false)) {
		if err != nil {
			w.Flush()
			return err
		}

		fmt.Fprintf(w, "%d\t%s\t%d\t%08x\t%t\t%t\t%t\t%t\t%t\n",
			chunk.Offset,
			chunk.Type,
			chunk.Length,
			chunk.CRC,
			chunk.ChecksumOK(),
			chunk.Type.Critical(),
			chunk.Type.Public(),
			chunk.Type.Conforming(),
			chunk.Type.SafeToCopy(),
		)
	}
	return w.Flush()
}
