package resolver

import (
	"bytes"
	"encoding/json"
)

type projectedField struct {
	name  string
	value interface{}
}

// ProjectedRecord is a record reduced to selected columns. It is
// serialized as JSON object with keys in a catalog order.
type ProjectedRecord struct {
	fields []projectedField
}

// Keys returns names of projected fields.
func (p ProjectedRecord) Keys() []string {
	rv := make([]string, len(p.fields))

	for i, v := range p.fields {
		rv[i] = v.name
	}

	return rv
}

// Get returns a value of projected field.
func (p ProjectedRecord) Get(name string) (interface{}, bool) {
	for _, v := range p.fields {
		if v.name == name {
			return v.value, true
		}
	}

	return nil, false
}

// Len returns a number of projected fields.
func (p ProjectedRecord) Len() int {
	return len(p.fields)
}

func (p ProjectedRecord) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}

	buf.WriteByte('{')

	for i, v := range p.fields {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(v.name)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(v.value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// Project keeps only those fields of the record which are present and
// selected.
func (c ColumnSelection) Project(record Record) ProjectedRecord {
	fields := make([]projectedField, 0, len(c.names))

	for _, name := range c.names {
		if value, ok := columnIndex[name].get(&record); ok {
			fields = append(fields, projectedField{name: name, value: value})
		}
	}

	return ProjectedRecord{fields: fields}
}

// Project reduces a record to requested columns. Requested names are
// intersected with allowed columns; nil means that nothing was
// requested and a whole record passes through.
func Project(record Record, requested []string) ProjectedRecord {
	if requested == nil {
		return AllColumns().Project(record)
	}

	return SelectColumns(requested).Project(record)
}
