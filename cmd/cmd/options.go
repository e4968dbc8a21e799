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
	"log/slog"
	"math"
	"os"

	"github.com/ostafen/pngdec/internal/config"
	"github.com/ostafen/pngdec/internal/logger"
	"github.com/ostafen/pngdec/internal/mmap"
	"github.com/ostafen/pngdec/internal/png"
	"github.com/ostafen/pngdec/pkg/util/format"
	"github.com/spf13/cobra"
)

// session holds what every command needs: options resolved from the
// environment and flags, and the logger built from them.
type session struct {
	opts    config.Options
	logger  *slog.Logger
	logFile *os.File
}

func parseOptions(cmd *cobra.Command) (config.Options, error) {
	var envFiles []string
	if envFile, _ := cmd.Flags().GetString("env-file"); envFile != "" {
		envFiles = append(envFiles, envFile)
	}

	opts, err := config.Load(envFiles...)
	if err != nil {
		return config.Options{}, err
	}

	if cmd.Flags().Changed("log-level") {
		level, _ := cmd.Flags().GetString("log-level")
		opts.LogLevel = logger.ParseLevel(level)
	}
	if cmd.Flags().Changed("log-file") {
		opts.LogFile, _ = cmd.Flags().GetString("log-file")
	}
	if noCRC, _ := cmd.Flags().GetBool("no-crc"); noCRC {
		opts.VerifyCRC = false
	}
	if cmd.Flags().Changed("max-size") {
		s, _ := cmd.Flags().GetString("max-size")
		size, err := format.ParseBytes(s)
		if err != nil {
			return config.Options{}, fmt.Errorf("invalid --max-size: %w", err)
		}
		opts.MaxSize = size
	}
	if cmd.Flags().Changed("max-pixels") {
		opts.MaxPixels, _ = cmd.Flags().GetUint64("max-pixels")
	}
	return opts, nil
}

func openSession(cmd *cobra.Command) (*session, error) {
	opts, err := parseOptions(cmd)
	if err != nil {
		return nil, err
	}

	log, logFile, err := logger.Open(opts.LogFile, opts.LogLevel)
	if err != nil {
		return nil, err
	}
	return &session{opts: opts, logger: log, logFile: logFile}, nil
}

func (s *session) Close() {
	if s.logFile != nil {
		s.logFile.Close()
	}
}

func (s *session) decodeOptions() []png.Option {
	maxPayload := 0
	if s.opts.MaxSize > 0 && s.opts.MaxSize < math.MaxInt {
		maxPayload = int(s.opts.MaxSize)
	}
	return []png.Option{
		png.WithCRCCheck(s.opts.VerifyCRC),
		png.WithMaxPayload(maxPayload),
		png.WithMaxPixels(s.opts.MaxPixels),
		png.WithLogger(s.logger),
	}
}

func (s *session) openInput(path string) (*mmap.MmapFile, error) {
	s.logger.Debug("opening input", "path", path, "maxSize", s.opts.MaxSize)
	return mmap.Open(path, s.opts.MaxSize)
}
