package main

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/juju/errors"

	"github.com/9seconds/chickadee/resolver"
)

// writeRecords writes one JSON object per line. Records which cannot be
// serialized are reported and skipped.
func writeRecords(out io.Writer, records resolver.ResultSet,
	columns []string, logger resolver.Logger) error {
	writer := bufio.NewWriter(out)

	for _, record := range records {
		data, err := json.Marshal(resolver.Project(record, columns))
		if err != nil {
			logger.OutputError(&resolver.OutputSerializationError{Err: err})

			continue
		}

		if _, err := writer.Write(append(data, '\n')); err != nil {
			return errors.Annotate(err, "cannot write a record")
		}
	}

	if err := writer.Flush(); err != nil {
		return errors.Annotate(err, "cannot write records")
	}

	return nil
}
