// Package mapped provides read-only memory-mapped files as image data
// segments. Large pixel buffers are paged in by the OS on demand instead of
// being read up front.
package mapped

import (
	"fmt"
	"os"

	"github.com/lumen-imaging/lumen/internal/img"
)

// File is a memory-mapped file whose bytes can be wrapped into images
// without copying.
//
// Important: Always call Close when done to unmap the file (use defer).
// Images taken from the file reference the mapping directly and are valid
// only while the file is open; the mapping is read-only, so writing through
// such an image is undefined behavior.
type File struct {
	file   *os.File
	data   []byte
	closed bool
}

// Open memory-maps the file at path read-only.
func Open(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapped.Open: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("mapped.Open: %w", err)
	}

	data, err := mmapFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("mapped.Open: mmap: %w", err)
	}

	return &File{file: file, data: data}, nil
}

// Bytes returns the whole mapped region. The slice is valid only while the
// file is open.
func (f *File) Bytes() ([]byte, error) {
	if f.closed {
		return nil, fmt.Errorf("mapped.Bytes: file is closed")
	}
	return f.data, nil
}

// Size returns the size of the mapped region in bytes.
func (f *File) Size() int64 {
	return int64(len(f.data))
}

// Image wraps the region at the given byte offset as an image with normal
// strides, without copying. The region must fit inside the file.
func (f *File) Image(dt img.DataType, sizes img.Sizes, tensorElems int, offset int64) (*img.Image, error) {
	if f.closed {
		return nil, fmt.Errorf("mapped.Image: file is closed")
	}
	if err := sizes.Validate(); err != nil {
		return nil, fmt.Errorf("mapped.Image: %w", err)
	}
	need := int64(sizes.NumberOfPixels()*tensorElems*dt.SizeOf())
	if offset < 0 || offset+need > int64(len(f.data)) {
		return nil, fmt.Errorf("mapped.Image: region [%d, %d) outside file of %d bytes: %w",
			offset, offset+need, len(f.data), img.ErrOutOfRange)
	}
	strides, tensorStride := normalLayout(sizes, tensorElems)
	out, err := img.NewFromData(f.data[offset:offset+need], dt, sizes, strides, img.VectorTensor(tensorElems), tensorStride)
	if err != nil {
		return nil, fmt.Errorf("mapped.Image: %w", err)
	}
	return out, nil
}

// normalLayout is the canonical stride layout: tensor elements contiguous,
// dimension 0 fastest.
func normalLayout(sizes img.Sizes, tensorElems int) ([]int, int) {
	strides := make([]int, len(sizes))
	s := tensorElems
	for i := 0; i < len(sizes); i++ {
		strides[i] = s
		s *= sizes[i]
	}
	return strides, 1
}

// Close unmaps and closes the file.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	var err error
	if f.data != nil {
		err = munmapFile(f.data)
		f.data = nil
	}

	if closeErr := f.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	return err
}
