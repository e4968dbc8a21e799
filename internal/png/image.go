package png

// Stage tracks how far an Image has been processed.
type Stage int

const (
	StageParsed Stage = iota
	StageInflated
	StageReconstructed
)

func (s Stage) String() string {
	switch s {
	case StageParsed:
		return "parsed"
	case StageInflated:
		return "inflated"
	case StageReconstructed:
		return "reconstructed"
	}
	return "unknown"
}

// Image is the decode target. Decode fills Header, Palette and the
// compressed Payload; InflatePayload and Reconstruct advance it further.
type Image struct {
	Header

	// Palette holds RGB triplets, nil if no PLTE chunk was seen.
	Palette []byte

	// Payload is the concatenated IDAT data until InflatePayload
	// replaces it with the filtered scanlines.
	Payload []byte

	Stage Stage

	// Pixels is set by Reconstruct.
	Pixels *Grid
}

// PaletteLen returns the number of palette entries.
func (img *Image) PaletteLen() int {
	return len(img.Palette) / 3
}

// FilteredSize returns the number of bytes the inflated payload must hold:
// one filter byte plus the row bytes for every scanline of every pass.
func (img *Image) FilteredSize() int {
	w, h := int(img.Width), int(img.Height)
	if !img.Interlaced() {
		return h * (1 + img.RowBytes(w))
	}

	size := 0
	for pass := range adam7 {
		pw, ph := PassSize(pass, w, h)
		if pw == 0 || ph == 0 {
			continue
		}
		size += ph * (1 + img.RowBytes(pw))
	}
	return size
}

func (img *Image) checkPalette() error {
	switch img.ColorType {
	case ColorIndexed:
		if img.Palette == nil {
			return ErrMissingPalette
		}
	case ColorGray, ColorGrayAlpha:
		if img.Palette != nil {
			return ErrUnexpectedPalette
		}
	}
	return nil
}
