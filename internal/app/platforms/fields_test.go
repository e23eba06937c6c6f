package platforms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldsInteger(t *testing.T) {
	f := asFields(json.RawMessage(`{"n":8,"neg":-2,"quoted":"8","frac":8.5,"null":null,"obj":{}}`))

	tests := []struct {
		name string
		want int
		ok   bool
	}{
		{"n", 8, true},
		{"neg", -2, true},
		{"quoted", 0, false},
		{"frac", 0, false},
		{"null", 0, false},
		{"obj", 0, false},
		{"missing", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := f.integer(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestFieldsToleratesDriftedTypes(t *testing.T) {
	f := asFields(json.RawMessage(`{"s":7,"list":[{"a":"x"},3,"y",{"a":"z"}],"notList":{"a":1},"obj":[1]}`))

	assert.Equal(t, "", f.str("s"))
	assert.Len(t, f.objects("list"), 2)
	assert.Equal(t, "z", f.objects("list")[1].str("a"))
	assert.Nil(t, f.objects("notList"))
	assert.Nil(t, f.object("obj"))
	assert.Nil(t, asFields(json.RawMessage(`null`)))
	assert.Nil(t, asFields(nil))
}
