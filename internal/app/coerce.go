package app

import (
	"fmt"
	"strconv"
	"strings"
)

// Form fields arrive as text. One schema-driven coercion pass turns them
// into typed values before anything is written, instead of ad hoc casts in
// each handler.

type FieldKind int

const (
	FieldString FieldKind = iota
	FieldNumber
	FieldBoolean
	FieldStringList
)

// HotelSchema mirrors the admin hotel form: which fields exist and what
// type each must become.
var HotelSchema = map[string]FieldKind{
	"name":          FieldString,
	"location":      FieldString,
	"city":          FieldString,
	"locality":      FieldString,
	"price":         FieldNumber,
	"originalPrice": FieldNumber,
	"rating":        FieldNumber,
	"reviews":       FieldNumber,
	"description":   FieldString,
	"image":         FieldStringList,
	"amenities":     FieldStringList,
	"latitude":      FieldNumber,
	"longitude":     FieldNumber,
	"featured":      FieldBoolean,
	"verified":      FieldBoolean,
}

var CitySchema = map[string]FieldKind{
	"name": FieldString,
}

var LocalitySchema = map[string]FieldKind{
	"name": FieldString,
	"city": FieldString,
}

var DestinationSchema = map[string]FieldKind{
	"name": FieldString,
	"img":  FieldString,
}

// CoerceForm applies the schema to raw text input. Unknown fields are
// dropped; absent fields get their kind's zero value so writes always carry
// a full record. Unparseable numbers come back as field errors rather than
// silent zeros.
func CoerceForm(form map[string]string, schema map[string]FieldKind) (map[string]any, map[string]string) {
	out := make(map[string]any, len(schema))
	errs := make(map[string]string)
	for field, kind := range schema {
		raw, ok := form[field]
		raw = strings.TrimSpace(raw)
		switch kind {
		case FieldString:
			out[field] = raw
		case FieldNumber:
			if !ok || raw == "" {
				out[field] = float64(0)
				continue
			}
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				errs[field] = fmt.Sprintf("%s must be a number", field)
				out[field] = float64(0)
				continue
			}
			out[field] = f
		case FieldBoolean:
			out[field] = parseBool(raw)
		case FieldStringList:
			out[field] = splitList(raw)
		}
	}
	return out, errs
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "on", "1", "yes":
		return true
	default:
		return false
	}
}

// splitList is the comma-split-and-trim the admin forms use for image URLs
// and amenity tags. Empty segments are kept out.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func str(m map[string]any, k string) string {
	v, _ := m[k].(string)
	return v
}

func num(m map[string]any, k string) float64 {
	v, _ := m[k].(float64)
	return v
}

func boolean(m map[string]any, k string) bool {
	v, _ := m[k].(bool)
	return v
}

func list(m map[string]any, k string) []string {
	v, _ := m[k].([]string)
	if v == nil {
		return []string{}
	}
	return v
}
