package source

import (
	"bufio"
	"compress/gzip"
	"io"
	"io/ioutil"
	"unicode/utf8"

	"github.com/juju/errors"
)

// DefaultMaxSize limits a size of decompressed data if nothing else is
// configured.
const DefaultMaxSize int64 = 256 * 1024 * 1024

// Decompress reads a gzip stream and returns its contents as a text.
// If maxSize is positive, data longer than maxSize bytes is rejected
// with ErrTooLarge.
func Decompress(stream io.Reader, maxSize int64) (string, error) {
	gzipReader, err := gzip.NewReader(bufio.NewReader(stream))
	if err != nil {
		return "", &DecodeError{Err: errors.Annotate(err, "incorrect gzip stream")}
	}

	defer gzipReader.Close()

	var reader io.Reader = gzipReader

	if maxSize > 0 {
		reader = io.LimitReader(reader, maxSize+1)
	}

	data, err := ioutil.ReadAll(reader)

	switch {
	case err != nil:
		return "", &DecodeError{Err: errors.Annotate(err, "cannot decompress data")}
	case maxSize > 0 && int64(len(data)) > maxSize:
		return "", &DecodeError{Err: ErrTooLarge}
	}

	return decodeText(data)
}

func decodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", &DecodeError{Err: errors.New("data is not a valid utf-8 text")}
	}

	return string(data), nil
}
