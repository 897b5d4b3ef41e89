package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestFloat(t *testing.T) {
	doc := `{"n":0.7,"s":" 12.5 ","bad":"high","t":true,"null":null,"obj":{},"big":"1e999"}`
	tests := []struct {
		path string
		want float64
		ok   bool
	}{
		{"n", 0.7, true},
		{"s", 12.5, true},
		{"t", 1, true},
		{"bad", 0, false},
		{"null", 0, false},
		{"obj", 0, false},
		{"big", 0, false},
		{"missing", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := Float(gjson.Get(doc, tt.path))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestText(t *testing.T) {
	doc := `{"s":"hello","n":3,"null":null,"arr":["a"]}`

	assert.Equal(t, "hello", Text(gjson.Get(doc, "s"), "fb"))
	assert.Equal(t, "3", Text(gjson.Get(doc, "n"), "fb"))
	assert.Equal(t, `["a"]`, Text(gjson.Get(doc, "arr"), "fb"))
	assert.Equal(t, "fb", Text(gjson.Get(doc, "null"), "fb"))
	assert.Equal(t, "fb", Text(gjson.Get(doc, "missing"), "fb"))
}
