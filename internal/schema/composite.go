package schema

import "strconv"

// ObjectSchema validates map payloads field by field. Fields are required
// unless marked optional or given a default. Keys not declared on the schema
// are dropped from the coerced output.
type ObjectSchema struct {
	base
	fields []objectField
}

type objectField struct {
	name   string
	schema Schema
}

// Object declares an object schema. Fields are attached in declaration order,
// which also fixes the order of reported issues.
func Object() *ObjectSchema { return &ObjectSchema{} }

// Field declares a named field. Declaring the same name twice replaces the
// earlier schema in place.
func (s *ObjectSchema) Field(name string, field Schema) *ObjectSchema {
	for i, existing := range s.fields {
		if existing.name == name {
			s.fields[i].schema = field
			return s
		}
	}
	s.fields = append(s.fields, objectField{name: name, schema: field})
	return s
}

// Optional marks the whole object as omittable.
func (s *ObjectSchema) Optional() *ObjectSchema {
	s.optional = true
	return s
}

// Validate implements Schema.
func (s *ObjectSchema) Validate(value any) Result {
	m, isMap := value.(map[string]any)
	if !isMap {
		return failf("", "expected object, got %s", typeName(value))
	}

	data := make(map[string]any, len(s.fields))
	var issues Issues
	for _, field := range s.fields {
		raw, present := m[field.name]
		if !present {
			if def, hasDef := fieldDefault(field.schema); hasDef {
				data[field.name] = def
				continue
			}
			if fieldOptional(field.schema) {
				continue
			}
			issues = append(issues, Issue{Path: field.name, Message: "required"})
			continue
		}
		result := field.schema.Validate(raw)
		if !result.OK {
			issues = append(issues, result.Issues.prefixed(field.name)...)
			continue
		}
		data[field.name] = result.Data
	}
	if len(issues) > 0 {
		return fail(issues)
	}
	return ok(data)
}

// Describe implements Schema.
func (s *ObjectSchema) Describe() Shape {
	fields := make([]FieldShape, 0, len(s.fields))
	for _, field := range s.fields {
		fields = append(fields, FieldShape{Name: field.name, Shape: field.schema.Describe()})
	}
	return Shape{Type: "object", Optional: s.isOptional(), Fields: fields}
}

// ArraySchema validates ordered sequences with a uniform element schema.
type ArraySchema struct {
	base
	elem     Schema
	nonEmpty bool
}

// Array declares an array field with the given element schema.
func Array(elem Schema) *ArraySchema { return &ArraySchema{elem: elem} }

// NonEmpty rejects empty sequences.
func (s *ArraySchema) NonEmpty() *ArraySchema {
	s.nonEmpty = true
	return s
}

// Optional marks the field as omittable.
func (s *ArraySchema) Optional() *ArraySchema {
	s.optional = true
	return s
}

// Validate implements Schema.
func (s *ArraySchema) Validate(value any) Result {
	items, isSlice := value.([]any)
	if !isSlice {
		return failf("", "expected array, got %s", typeName(value))
	}
	if s.nonEmpty && len(items) == 0 {
		return failf("", "must not be empty")
	}

	data := make([]any, 0, len(items))
	var issues Issues
	for i, item := range items {
		result := s.elem.Validate(item)
		if !result.OK {
			issues = append(issues, result.Issues.prefixed(strconv.Itoa(i))...)
			continue
		}
		data = append(data, result.Data)
	}
	if len(issues) > 0 {
		return fail(issues)
	}
	return ok(data)
}

// Describe implements Schema.
func (s *ArraySchema) Describe() Shape {
	elem := s.elem.Describe()
	return Shape{Type: "array", Optional: s.isOptional(), NonEmpty: s.nonEmpty, Elem: &elem}
}

// MapSchema validates string-keyed maps with a uniform value schema. Keys are
// preserved as-is; only values are coerced.
type MapSchema struct {
	base
	elem Schema
}

// Map declares a map field with the given value schema.
func Map(elem Schema) *MapSchema { return &MapSchema{elem: elem} }

// Optional marks the field as omittable.
func (s *MapSchema) Optional() *MapSchema {
	s.optional = true
	return s
}

// Validate implements Schema.
func (s *MapSchema) Validate(value any) Result {
	m, isMap := value.(map[string]any)
	if !isMap {
		return failf("", "expected object, got %s", typeName(value))
	}

	data := make(map[string]any, len(m))
	var issues Issues
	for _, key := range sortedKeys(m) {
		result := s.elem.Validate(m[key])
		if !result.OK {
			issues = append(issues, result.Issues.prefixed(key)...)
			continue
		}
		data[key] = result.Data
	}
	if len(issues) > 0 {
		return fail(issues)
	}
	return ok(data)
}

// Describe implements Schema.
func (s *MapSchema) Describe() Shape {
	elem := s.elem.Describe()
	return Shape{Type: "map", Optional: s.isOptional(), Elem: &elem}
}

// AnySchema accepts any payload unchanged. Used for slots whose meaning is
// owned entirely by the consuming component.
type AnySchema struct {
	base
}

// Any declares an unconstrained field.
func Any() *AnySchema { return &AnySchema{} }

// Optional marks the field as omittable.
func (s *AnySchema) Optional() *AnySchema {
	s.optional = true
	return s
}

// Validate implements Schema.
func (s *AnySchema) Validate(value any) Result { return ok(value) }

// Describe implements Schema.
func (s *AnySchema) Describe() Shape {
	return Shape{Type: "any", Optional: s.isOptional()}
}

func fieldOptional(s Schema) bool {
	type optionaler interface{ isOptional() bool }
	if o, ok := s.(optionaler); ok {
		return o.isOptional()
	}
	return false
}

func fieldDefault(s Schema) (any, bool) {
	type defaulter interface{ defaultValue() (any, bool) }
	if d, ok := s.(defaulter); ok {
		return d.defaultValue()
	}
	return nil, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	return sortedCopy(keys)
}
