package schema

import (
	"reflect"
	"strings"
	"testing"
)

func heroSchema() Schema {
	return Object().
		Field("title", String().NonEmpty()).
		Field("subtitle", String().Optional()).
		Field("align", Enum("left", "center", "right").Default("center")).
		Field("items", Array(Object().
			Field("label", String().NonEmpty()).
			Field("href", String().Optional())).Optional())
}

func TestObjectValidate_AppliesDefaultsAndDropsUnknownKeys(t *testing.T) {
	result := heroSchema().Validate(map[string]any{
		"title":   "Welcome",
		"unknown": 42,
	})
	if !result.OK {
		t.Fatalf("expected ok, got issues: %s", result.Issues.Flat())
	}
	data, isMap := result.Data.(map[string]any)
	if !isMap {
		t.Fatalf("expected coerced map, got %T", result.Data)
	}
	if data["align"] != "center" {
		t.Fatalf("expected default align, got %v", data["align"])
	}
	if _, present := data["unknown"]; present {
		t.Fatalf("unknown key survived coercion: %#v", data)
	}
	if _, present := data["subtitle"]; present {
		t.Fatalf("absent optional field materialised: %#v", data)
	}
}

func TestObjectValidate_ReportsDottedPaths(t *testing.T) {
	result := heroSchema().Validate(map[string]any{
		"title": "",
		"items": []any{
			map[string]any{"label": "ok"},
			map[string]any{"href": "/x"},
		},
	})
	if result.OK {
		t.Fatal("expected validation failure")
	}
	if len(result.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %d: %s", len(result.Issues), result.Issues.Flat())
	}
	if result.Issues[0].Path != "title" {
		t.Fatalf("expected title issue first, got %q", result.Issues[0].Path)
	}
	if result.Issues[1].Path != "items.1.label" {
		t.Fatalf("expected nested path, got %q", result.Issues[1].Path)
	}
	if !strings.Contains(result.Issues.Error(), "\n") {
		t.Fatal("expected newline-joined error form")
	}
	if !strings.Contains(result.Issues.Flat(), "; ") {
		t.Fatal("expected semicolon-joined flat form")
	}
}

func TestObjectValidate_RootTypeMismatch(t *testing.T) {
	result := heroSchema().Validate("not an object")
	if result.OK {
		t.Fatal("expected failure on non-object payload")
	}
	if result.Issues[0].Path != "" {
		t.Fatalf("root violations carry no path, got %q", result.Issues[0].Path)
	}
}

func TestValidate_IdempotentOnCoercedOutput(t *testing.T) {
	payloads := []map[string]any{
		{"title": "Welcome"},
		{"title": "Welcome", "align": "left", "items": []any{map[string]any{"label": "Docs"}}},
		{"title": "T", "subtitle": "S"},
	}
	s := heroSchema()
	for _, payload := range payloads {
		first := s.Validate(payload)
		if !first.OK {
			t.Fatalf("fixture payload failed: %s", first.Issues.Flat())
		}
		second := s.Validate(first.Data)
		if !second.OK {
			t.Fatalf("revalidation failed: %s", second.Issues.Flat())
		}
		if !reflect.DeepEqual(first.Data, second.Data) {
			t.Fatalf("revalidation changed data: %#v vs %#v", first.Data, second.Data)
		}
	}
}

func TestIntValidate_CoercesIntegralFloats(t *testing.T) {
	s := Int().Min(1)
	result := s.Validate(float64(3))
	if !result.OK {
		t.Fatalf("integral float rejected: %s", result.Issues.Flat())
	}
	if result.Data != int64(3) {
		t.Fatalf("expected int64 coercion, got %T", result.Data)
	}
	if s.Validate(2.5).OK {
		t.Fatal("fractional float accepted as integer")
	}
	if s.Validate(int64(0)).OK {
		t.Fatal("min bound not enforced")
	}
}

func TestEnumValidate_RejectsNonMembers(t *testing.T) {
	s := Enum("interweb", "pizza")
	if !s.Validate("pizza").OK {
		t.Fatal("member rejected")
	}
	result := s.Validate("mango")
	if result.OK {
		t.Fatal("non-member accepted")
	}
	if !strings.Contains(result.Issues[0].Message, "interweb") {
		t.Fatalf("expected members listed in message, got %q", result.Issues[0].Message)
	}
}

func TestMapValidate_CoercesValuesAndKeepsKeys(t *testing.T) {
	s := Map(String())
	result := s.Validate(map[string]any{"--accent": "#f00", "--gap": "2rem"})
	if !result.OK {
		t.Fatalf("map rejected: %s", result.Issues.Flat())
	}
	data := result.Data.(map[string]any)
	if data["--accent"] != "#f00" || data["--gap"] != "2rem" {
		t.Fatalf("unexpected coerced map: %#v", data)
	}

	bad := s.Validate(map[string]any{"--accent": 7})
	if bad.OK {
		t.Fatal("non-string value accepted")
	}
	if bad.Issues[0].Path != "--accent" {
		t.Fatalf("expected key path, got %q", bad.Issues[0].Path)
	}
}

func TestDescribe_ReportsShape(t *testing.T) {
	shape := heroSchema().Describe()
	if shape.Type != "object" {
		t.Fatalf("expected object shape, got %q", shape.Type)
	}
	if len(shape.Fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(shape.Fields))
	}
	if shape.Fields[0].Name != "title" || !shape.Fields[0].Shape.NonEmpty {
		t.Fatalf("unexpected first field: %#v", shape.Fields[0])
	}
	align := shape.Fields[2]
	if align.Shape.Type != "enum" || align.Shape.Default != "center" {
		t.Fatalf("unexpected align shape: %#v", align.Shape)
	}
}
