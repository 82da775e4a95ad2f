package source

import (
	"bufio"
	"io/ioutil"

	"github.com/spf13/afero"
)

// Source is a text to extract addresses from, with a note where it
// came from.
type Source struct {
	Input string
	Kind  Kind
	Text  string
}

// IsFile reports if text was read from a file.
func (s Source) IsFile() bool {
	return s.Kind != KindAbsent
}

// Loader turns an input string into a text. If input names an existing
// file, the file is read (and decompressed if necessary). Otherwise
// input is a literal text itself.
type Loader struct {
	Fs      afero.Fs
	MaxSize int64
}

// Load resolves input to a Source. Errors are either SourceAccessError
// or DecodeError.
func (l Loader) Load(input string) (Source, error) {
	rv := Source{Input: input}

	kind, err := Classify(l.fs(), input)
	if err != nil {
		return rv, err
	}

	rv.Kind = kind

	switch kind {
	case KindAbsent:
		rv.Text = input
	case KindPlainText:
		rv.Text, err = l.readPlain(input)
	case KindCompressed:
		rv.Text, err = l.readCompressed(input)
	}

	return rv, err
}

func (l Loader) readPlain(path string) (string, error) {
	fp, err := l.fs().Open(path)
	if err != nil {
		return "", &SourceAccessError{Path: path, Err: err}
	}

	defer fp.Close()

	data, err := ioutil.ReadAll(bufio.NewReader(fp))
	if err != nil {
		return "", &SourceAccessError{Path: path, Err: err}
	}

	return decodeText(data)
}

func (l Loader) readCompressed(path string) (string, error) {
	fp, err := l.fs().Open(path)
	if err != nil {
		return "", &SourceAccessError{Path: path, Err: err}
	}

	defer fp.Close()

	return Decompress(fp, l.MaxSize)
}

func (l Loader) fs() afero.Fs {
	if l.Fs == nil {
		return afero.NewOsFs()
	}

	return l.Fs
}
