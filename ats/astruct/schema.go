package astruct

import (
	"fmt"
)

// NewSchema lays the fields out back to back. Schemas are declared once as
// package level values, so a duplicated or zero width field panics.
func NewSchema(name string, fields ...Field) Schema {
	schema := Schema{
		name:    name,
		fields:  make([]Field, 0, len(fields)),
		offsets: make([]int, 0, len(fields)),
		index:   make(map[string]int, len(fields)),
	}
	for _, field := range fields {
		if field.Kind != KindText {
			field.Width = field.Kind.Width()
		}
		if field.Width <= 0 {
			panic(fmt.Sprintf(`NewSchema "%s": field "%s" has no width`, name, field.Name))
		}
		if _, existed := schema.index[field.Name]; existed {
			panic(fmt.Sprintf(`NewSchema "%s": duplicated field "%s"`, name, field.Name))
		}
		schema.index[field.Name] = len(schema.fields)
		schema.fields = append(schema.fields, field)
		schema.offsets = append(schema.offsets, schema.width)
		schema.width += field.Width
	}
	return schema
}

func (s Schema) Name() string {
	return s.name
}

func (s Schema) Width() int {
	return s.width
}

func (s Schema) Fields() []Field {
	return append(make([]Field, 0, len(s.fields)), s.fields...)
}

func (s Schema) Len() int {
	return len(s.fields)
}

// Offset returns the byte offset of the named field.
func (s Schema) Offset(name string) (int, bool) {
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}
	return s.offsets[i], true
}

func (s Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Truncate keeps the leading fields that fit entirely in n bytes.
func (s Schema) Truncate(n int) Schema {
	if n >= s.width {
		return s
	}
	fields := make([]Field, 0, len(s.fields))
	for i, field := range s.fields {
		if s.offsets[i]+field.Width > n {
			break
		}
		fields = append(fields, field)
	}
	return NewSchema(fmt.Sprintf("%s[:%d]", s.name, n), fields...)
}
