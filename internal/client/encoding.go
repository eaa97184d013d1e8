package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"strings"

	"github.com/simp-lee/schoolkit/internal/domain"
)

// FieldKind selects the wire encoding of one DTO field when the DTO is
// sent as multipart form data.
type FieldKind int

const (
	// FieldScalar is the default: the value's string form as a form field.
	FieldScalar FieldKind = iota
	// FieldFile sends a *domain.FileUpload as a file part.
	FieldFile
	// FieldJSON sends the value marshaled to JSON text under the field name
	// (nested arrays/objects flattened to a single form field).
	FieldJSON
)

// EncodingTable maps wire field names to their multipart encoding.
// Fields absent from the table are scalars. A DTO whose table-declared
// file and JSON fields are all absent still encodes as a plain JSON body.
type EncodingTable map[string]FieldKind

// bodyField is one DTO field resolved through reflection.
type bodyField struct {
	name  string
	value any
}

// encodeBody encodes a DTO for create/update. When the DTO carries binary
// content or JSON-text fields per the table, it produces multipart form
// data; otherwise a JSON body.
func encodeBody(dto any, table EncodingTable) (io.Reader, string, error) {
	fields := collectFields(dto)

	if !needsMultipart(fields, table) {
		b, err := json.Marshal(dto)
		if err != nil {
			return nil, "", fmt.Errorf("encode body: %w", err)
		}
		return bytes.NewReader(b), "application/json", nil
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		switch table[f.name] {
		case FieldFile:
			upload, ok := f.value.(*domain.FileUpload)
			if !ok || upload == nil {
				continue
			}
			part, err := w.CreateFormFile(f.name, upload.Name)
			if err != nil {
				return nil, "", fmt.Errorf("encode file field %q: %w", f.name, err)
			}
			if upload.Content != nil {
				if _, err := io.Copy(part, upload.Content); err != nil {
					return nil, "", fmt.Errorf("encode file field %q: %w", f.name, err)
				}
			}
		case FieldJSON:
			if isAbsent(f.value) {
				continue
			}
			b, err := json.Marshal(f.value)
			if err != nil {
				return nil, "", fmt.Errorf("encode json field %q: %w", f.name, err)
			}
			if err := w.WriteField(f.name, string(b)); err != nil {
				return nil, "", fmt.Errorf("encode json field %q: %w", f.name, err)
			}
		default:
			s, ok := paramString(f.value)
			if !ok {
				continue
			}
			if err := w.WriteField(f.name, s); err != nil {
				return nil, "", fmt.Errorf("encode field %q: %w", f.name, err)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("encode body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// needsMultipart reports whether any table-declared file or JSON field is
// actually present in the DTO.
func needsMultipart(fields []bodyField, table EncodingTable) bool {
	if len(table) == 0 {
		return false
	}
	for _, f := range fields {
		switch table[f.name] {
		case FieldFile:
			if upload, ok := f.value.(*domain.FileUpload); ok && upload != nil {
				return true
			}
		case FieldJSON:
			if !isAbsent(f.value) {
				return true
			}
		}
	}
	return false
}

// collectFields resolves a DTO's exported fields to wire names via their
// JSON tags, descending into anonymous embedded structs.
func collectFields(dto any) []bodyField {
	v := reflect.ValueOf(dto)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	var fields []bodyField
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			fields = append(fields, collectFields(v.Field(i).Interface())...)
			continue
		}

		tag := sf.Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		fields = append(fields, bodyField{name: name, value: v.Field(i).Interface()})
	}
	return fields
}

// isAbsent reports whether a JSON-text field value should be omitted.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	case reflect.Slice, reflect.Map:
		return rv.IsNil() || rv.Len() == 0
	default:
		return rv.IsZero()
	}
}
