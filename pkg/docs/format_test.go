package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/icdmap/pkg/icd"
)

func f(v float64) *float64 { return &v }

func TestDataType(t *testing.T) {
	tests := []struct {
		name      string
		attr      icd.Attribute
		wantType  string
		wantRange string
	}{
		{"plain", icd.Attribute{Type: "double"}, "double", ""},
		{"bounded", icd.Attribute{Type: "double", Minimum: f(0), Maximum: f(90.5)}, "double", "0 to 90.5"},
		{"max only", icd.Attribute{Type: "integer", Maximum: f(10)}, "integer", "≤ 10"},
		{"min only", icd.Attribute{Type: "integer", Minimum: f(-1)}, "integer", "≥ -1"},
		{"enum", icd.Attribute{Enum: []any{"ON", "OFF"}}, "enum", "ON | OFF"},
		{"enum with range", icd.Attribute{Enum: []any{1, 2}, Maximum: f(2)}, "enum", "1 | 2 (≤ 2)"},
		{"array", icd.Attribute{Type: "array", Dimensions: []int{2, 3}, Items: &icd.Attribute{Type: "float"}}, "float[2, 3]", ""},
		{"array of enum", icd.Attribute{Type: "array", Dimensions: []int{4}, Items: &icd.Attribute{Enum: []any{"a", "b"}}}, "[4]", "a | b"},
		{"untyped", icd.Attribute{}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt, r := dataType(tt.attr)
			assert.Equal(t, tt.wantType, dt)
			assert.Equal(t, tt.wantRange, r)
		})
	}
}

func TestRate(t *testing.T) {
	assert.Equal(t, "10 Hz", rate(f(10), f(10)))
	assert.Equal(t, "100 to 1 Hz", rate(f(1), f(100)))
	assert.Equal(t, "≤ 20 Hz", rate(nil, f(20)))
	assert.Equal(t, "≥ 0.5 Hz", rate(f(0.5), nil))
	assert.Equal(t, "", rate(nil, nil))
}

func TestAnchor(t *testing.T) {
	assert.Equal(t, "cmdsetposition", anchor("cmd", "set_position"))
	assert.Equal(t, "pubevmoving", anchor("pubev", "moving"))
}
