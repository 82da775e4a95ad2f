package source

import (
	"bytes"
	"io"
	"os"

	"github.com/spf13/afero"
)

// Kind is a type of data source detected for a path.
type Kind uint8

const (
	// KindAbsent is for paths which do not exist or are directories.
	KindAbsent Kind = iota

	// KindPlainText is for regular files without a gzip signature.
	KindPlainText

	// KindCompressed is for gzip files.
	KindCompressed
)

func (k Kind) String() string {
	switch k {
	case KindPlainText:
		return "plain"
	case KindCompressed:
		return "gzip"
	}

	return "absent"
}

var gzipSignature = []byte{0x1f, 0x8b, 0x08}

// Classify detects a kind of source by a path. It reads first bytes of
// a file and closes it, so consumers have to open the file by
// themselves.
//
// Only SourceAccessError can be returned: path exists but cannot be
// read.
func Classify(fs afero.Fs, path string) (Kind, error) {
	stat, err := fs.Stat(path)

	switch {
	case os.IsPermission(err):
		return KindAbsent, &SourceAccessError{Path: path, Err: err}
	case err != nil:
		// not found, name too long, not a path at all
		return KindAbsent, nil
	case stat.IsDir():
		return KindAbsent, nil
	}

	fp, err := fs.Open(path)
	if err != nil {
		return KindAbsent, &SourceAccessError{Path: path, Err: err}
	}

	defer fp.Close()

	header := make([]byte, len(gzipSignature))

	n, err := io.ReadFull(fp, header)

	switch {
	case err == io.EOF, err == io.ErrUnexpectedEOF:
		return KindPlainText, nil
	case err != nil:
		return KindAbsent, &SourceAccessError{Path: path, Err: err}
	case bytes.Equal(header[:n], gzipSignature):
		return KindCompressed, nil
	}

	return KindPlainText, nil
}
