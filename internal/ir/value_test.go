package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsInt32(t *testing.T) {
	tests := []struct {
		name  string
		input IRValue
		want  int32
		ok    bool
	}{
		{"zero", IRInt(0), 0, true},
		{"max", IRInt(2147483647), 2147483647, true},
		{"min", IRInt(-2147483648), -2147483648, true},
		{"too large", IRInt(2147483648), 0, false},
		{"too small", IRInt(-2147483649), 0, false},
		{"float", IRFloat(1), 0, false},
		{"string", IRString("1"), 0, false},
		{"absent", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AsInt32(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "absent", TypeName(nil))
	assert.Equal(t, "null", TypeName(IRNull{}))
	assert.Equal(t, "integer", TypeName(IRInt(1)))
	assert.Equal(t, "float", TypeName(IRFloat(1.5)))
	assert.Equal(t, "object", TypeName(IRObject{}))
	assert.Equal(t, "array", TypeName(IRArray{}))
}

func TestSortedKeysUTF16Order(t *testing.T) {
	// U+FF21 sorts after U+1F600 in UTF-8 but before it in UTF-16.
	obj := IRObject{"\U0001F600": IRInt(1), "Ａ": IRInt(2), "a": IRInt(3)}
	assert.Equal(t, []string{"a", "\U0001F600", "Ａ"}, obj.SortedKeys())
}

func TestRecordEntryConvention(t *testing.T) {
	e := Record{Action: "sayLevel"}.Entry()
	assert.Nil(t, e.Wait, "zero wait is omitted")
	assert.Nil(t, e.Args, "empty args are omitted")
	assert.Equal(t, IRString("sayLevel"), e.Action)

	e = Record{Wait: -2, Action: "skipIfOne", Args: []Arg{{"places", 3}}}.Entry()
	assert.Equal(t, IRInt(-2), e.Wait)
	assert.Equal(t, IRObject{"places": IRInt(3)}, e.Args)
}

func TestRecordArg(t *testing.T) {
	r := Record{Action: "saucer", Args: []Arg{{"x", 10}, {"y", 20}}}
	v, ok := r.Arg("y")
	assert.True(t, ok)
	assert.Equal(t, int32(20), v)

	_, ok = r.Arg("firing_chance")
	assert.False(t, ok)
}
