package mmap

import (
	"fmt"
	"os"
)

// MmapFile is a read-only view of a whole file.
type MmapFile struct {
	Data     []byte   // The file contents
	File     *os.File // The underlying opened file
	FileSize int      // Total size of the underlying file

	mapped bool
}

// Open maps filePath into memory. Files larger than maxSize bytes are
// rejected; a maxSize of 0 disables the check.
func Open(filePath string, maxSize uint64) (*MmapFile, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", filePath, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to get file info for %q: %w", filePath, err)
	}

	size := fi.Size()
	if size == 0 {
		f.Close()
		return nil, fmt.Errorf("file %q is empty", filePath)
	}
	if maxSize > 0 && uint64(size) > maxSize {
		f.Close()
		return nil, fmt.Errorf("file %q is %d bytes, larger than the %d bytes limit", filePath, size, maxSize)
	}

	data, mapped, err := mapFile(f, int(size))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to map file %q: %w", filePath, err)
	}

	return &MmapFile{
		Data:     data,
		File:     f,
		FileSize: int(size),
		mapped:   mapped,
	}, nil
}

// Close unmaps the memory region and closes the underlying file.
func (mf *MmapFile) Close() error {
	var err error
	if mf.Data != nil && mf.mapped {
		err = unmap(mf.Data)
		if err != nil {
			return fmt.Errorf("failed to munmap: %w", err)
		}
	}
	mf.Data = nil

	if mf.File != nil {
		if closeErr := mf.File.Close(); closeErr != nil {
			return fmt.Errorf("failed to close file: %w", closeErr)
		}
		mf.File = nil
	}
	return nil
}
