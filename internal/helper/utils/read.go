package utils

import (
	"errors"
	"io"
)

// ReadAllLimit drains r but fails once the payload passes max bytes, so an
// oversized upload is rejected instead of buffered whole.
func ReadAllLimit(r io.Reader, max int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, errors.New("payload exceeds the allowed size")
	}
	return b, nil
}
