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
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/ostafen/pngdec/internal/logger"
	"github.com/ostafen/pngdec/pkg/util/format"
)

// Environment variables read by Load.
const (
	EnvLogLevel  = "PNGDEC_LOG_LEVEL"
	EnvLogFile   = "PNGDEC_LOG_FILE"
	EnvVerifyCRC = "PNGDEC_VERIFY_CRC"
	EnvMaxSize   = "PNGDEC_MAX_SIZE"
	EnvMaxPixels = "PNGDEC_MAX_PIXELS"
)

const (
	DefaultMaxSize   = 256 * format.MB
	DefaultMaxPixels = 1 << 28
)

type Options struct {
	LogLevel  slog.Level
	LogFile   string
	VerifyCRC bool

	// MaxSize bounds both the input file and the IDAT payload.
	MaxSize uint64

	// MaxPixels bounds width times height. Zero disables the check.
	MaxPixels uint64
}

func Default() Options {
	return Options{
		LogLevel:  slog.LevelInfo,
		VerifyCRC: true,
		MaxSize:   DefaultMaxSize,
		MaxPixels: DefaultMaxPixels,
	}
}

// Load returns the default options overridden by the environment. Variables
// defined in the given .env files (or ./.env when none is given) are loaded
// first. Only a missing default ./.env is ignored.
func Load(envFiles ...string) (Options, error) {
	err := godotenv.Load(envFiles...)
	if err != nil && (len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist)) {
		return Options{}, fmt.Errorf("failed to load env file: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv applies the variables returned by lookup to the default options.
func FromEnv(lookup func(string) (string, bool)) (Options, error) {
	opts := Default()

	if v, ok := lookup(EnvLogLevel); ok {
		opts.LogLevel = logger.ParseLevel(v)
	}
	if v, ok := lookup(EnvLogFile); ok {
		opts.LogFile = v
	}
	if v, ok := lookup(EnvVerifyCRC); ok {
		verify, err := strconv.ParseBool(v)
		if err != nil {
			return Options{}, fmt.Errorf("invalid %s: %w", EnvVerifyCRC, err)
		}
		opts.VerifyCRC = verify
	}
	if v, ok := lookup(EnvMaxSize); ok {
		size, err := format.ParseBytes(v)
		if err != nil {
			return Options{}, fmt.Errorf("invalid %s: %w", EnvMaxSize, err)
		}
		opts.MaxSize = size
	}
	if v, ok := lookup(EnvMaxPixels); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Options{}, fmt.Errorf("invalid %s: %w", EnvMaxPixels, err)
		}
		opts.MaxPixels = n
	}
	return opts, nil
}
