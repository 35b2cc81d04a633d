package desc

import (
	"encoding/json"
	"testing"
)

func mustJSON(t *testing.T, d Descriptor) string {
	t.Helper()
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	return string(b)
}

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
		want string
	}{
		{"primitive", Number(), `{"type":"number"}`},
		{"constant null", Const(Null()), `{"type":"constant","value":null}`},
		{"constant union", ConstUnion(Null(), Bool(false)), `{"type":"constant_union","value":[null,false]}`},
		{
			"union",
			&Union{Types: []Descriptor{String(), Const(Str("x"))}},
			`{"type":"union","types":[{"type":"string"},{"type":"constant","value":"x"}]}`,
		},
		{"array", ArrayOf(Boolean()), `{"type":"array","valueType":{"type":"boolean"}}`},
		{
			"tuple",
			&Tuple{Elements: []TupleElement{
				{Type: Number()},
				{Type: String(), Optional: true},
				{Type: Boolean(), Rest: true},
			}},
			`{"type":"tuple","valueTypes":[{"type":"number"},{"type":"string","optional":true},{"type":"rest","valueType":{"type":"boolean"}}]}`,
		},
		{
			"object",
			&Object{
				Properties: []Property{
					{Name: "id", Type: Number()},
					{Name: "tag", Type: Const(Str("a")), Optional: true},
				},
				Index: &Index{ValueType: String()},
			},
			`{"type":"object","properties":{"id":{"type":"number"},"tag":{"type":"constant","value":"a","optional":true}},"index":{"valueType":{"type":"string"}}}`,
		},
		{"empty object", &Object{}, `{"type":"object","properties":{}}`},
		{"external", &External{Name: "/api/user:User"}, `{"type":"external","name":"/api/user:User"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustJSON(t, tt.d); got != tt.want {
				t.Errorf("json.Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}
