package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare", in: `{"a":1}`, want: `{"a":1}`},
		{name: "prose around", in: "好的，结果如下：{\"a\":{\"b\":2}} 希望有帮助", want: `{"a":{"b":2}}`},
		{name: "fenced", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "brace in string", in: `{"text":"a } b {"}`, want: `{"text":"a } b {"}`},
		{name: "escaped quote", in: `{"text":"say \"}\""}`, want: `{"text":"say \"}\""}`},
		{name: "first of two", in: `{"a":1} then {"b":2}`, want: `{"a":1}`},
		{name: "skips invalid candidate", in: `{not json} {"ok":true}`, want: `{"ok":true}`},
		{name: "skips unclosed brace", in: "注意 { 是占位符。结果：{\"a\":1}", want: `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSONObject(tt.in)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestExtractJSONObjectErrors(t *testing.T) {
	_, err := ExtractJSONObject("没有任何结构化内容")
	assert.True(t, errors.Is(err, ErrNoJSONObject))

	_, err = ExtractJSONObject(`{"a": 1`)
	assert.True(t, errors.Is(err, ErrNoJSONObject))

	_, err = ExtractJSONObject(`{a: 1}`)
	assert.True(t, errors.Is(err, ErrInvalidJSON))
}

func TestDecodeJSONObjectTypeMismatch(t *testing.T) {
	var out struct {
		Days int `json:"days"`
	}
	err := DecodeJSONObject(`{"days":"three"}`, &out)
	assert.True(t, errors.Is(err, ErrInvalidJSON))

	require.NoError(t, DecodeJSONObject(`answer: {"days":3}`, &out))
	assert.Equal(t, 3, out.Days)
}
