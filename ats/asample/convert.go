package asample

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ConvertFile writes the scaled samples of src, starting at opts.Offset, to
// dst. The output goes to a temporary file next to dst that is renamed once
// complete. On failure nothing is left at dst and a ConversionError is
// returned.
func ConvertFile(src string, dst string, opts Options) (int64, error) {
	n, err := convertFile(src, dst, opts)
	if err != nil {
		if removeErr := os.Remove(dst); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			err = errors.Wrapf(err, "also failed to remove %s: %v", dst, removeErr)
		}
		return 0, ConversionError{Source: src, Path: dst, Err: err}
	}
	return n, nil
}

func convertFile(src string, dst string, opts Options) (n int64, err error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	if _, err := in.Seek(opts.Offset, io.SeekStart); err != nil {
		return 0, errors.Wrap(err, "seeking to data section")
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	writer := bufio.NewWriterSize(tmp, ChunkSize*OutputWidth)
	n, err = Copy(writer, NewReader(in, opts.Width, opts.LSB))
	if err != nil {
		return 0, err
	}
	if err = writer.Flush(); err != nil {
		return 0, errors.Wrap(err, "flushing output")
	}
	if err = tmp.Chmod(0644); err != nil {
		return 0, err
	}
	if err = tmp.Close(); err != nil {
		return 0, err
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, err
	}
	return n, nil
}
