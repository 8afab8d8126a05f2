package pipedrive

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseItems(t *testing.T) {
	resp := decode([]byte(`{"success":true,"data":{"items":[
		{"result_score":1.2,"item":{"id":7,"name":"Acme AS"}},
		{"result_score":0.4,"item":{"id":9,"name":"Acme AS"}}
	]}}`))

	items := resp.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, json.Number("7"), items[0]["id"])

	var empty Response
	assert.Empty(t, empty.Items())
	assert.Nil(t, empty.Data())
	_, ok := empty.ID()
	assert.False(t, ok)
}

func TestIntValue(t *testing.T) {
	tests := []struct {
		in   any
		want int64
		ok   bool
	}{
		{json.Number("12"), 12, true},
		{json.Number("12.0"), 12, true},
		{json.Number("12.5"), 0, false},
		{float64(3), 3, true},
		{int(4), 4, true},
		{"15", 15, true},
		{"abc", 0, false},
		{nil, 0, false},
	}

	for _, tt := range tests {
		got, ok := IntValue(tt.in)
		assert.Equal(t, tt.ok, ok, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}

func TestUnsuccessful(t *testing.T) {
	falsy := []string{`{"success":false}`, `{"success":0}`, `{"success":""}`, `{"success":"0"}`, `{"success":[]}`}
	for _, body := range falsy {
		assert.True(t, unsuccessful(decode([]byte(body))), body)
	}
	truthy := []string{`{"success":true}`, `{"success":null}`, `{}`, `{"success":"yes"}`, `{"success":1}`}
	for _, body := range truthy {
		assert.False(t, unsuccessful(decode([]byte(body))), body)
	}
	assert.False(t, unsuccessful(nil))
}
