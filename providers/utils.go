package providers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/9seconds/chickadee/addresses"
	"github.com/9seconds/chickadee/resolver"
)

func flushResponse(resp io.ReadCloser) {
	io.Copy(ioutil.Discard, resp) // nolint: errcheck
	resp.Close()
}

// decodeObject reads a single JSON object from a response body.
func decodeObject(body io.Reader, target interface{}) error {
	raw := json.RawMessage{}

	if err := json.NewDecoder(bufio.NewReader(body)).Decode(&raw); err != nil {
		return fmt.Errorf("cannot parse a response: %w", err)
	}

	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrNotAnObject
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("unexpected structure of response: %w", err)
	}

	return nil
}

func newResolutionError(name string, addr addresses.Address, err error) error {
	return &resolver.ResolutionError{
		Address:  addr,
		Provider: name,
		Err:      err,
	}
}

func newDecodeError(name string, addr addresses.Address, err error) error {
	return &resolver.RecordDecodeError{
		Address:  addr,
		Provider: name,
		Err:      err,
	}
}

func nonEmpty(value string) *string {
	if value == "" {
		return nil
	}

	return resolver.String(value)
}

func status(ok bool) *string {
	if ok {
		return resolver.String("success")
	}

	return resolver.String("fail")
}
