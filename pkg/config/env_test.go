package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("PI_TEST_STRING", "  value ")
	assert.Equal(t, "value", GetEnvString("PI_TEST_STRING", "def"))
	assert.Equal(t, "def", GetEnvString("PI_TEST_UNSET", "def"))

	t.Setenv("PI_TEST_BLANK", "   ")
	assert.Equal(t, "def", GetEnvString("PI_TEST_BLANK", "def"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"valid", "42", 42},
		{"negative", "-3", -3},
		{"padded", " 7 ", 7},
		{"empty", "", 10},
		{"trailing garbage", "12abc", 10},
		{"float", "1.5", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PI_TEST_INT", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("PI_TEST_INT", 10))
		})
	}
}

func TestGetEnvInt64(t *testing.T) {
	t.Setenv("PI_TEST_INT64", "10485760")
	assert.Equal(t, int64(10485760), GetEnvInt64("PI_TEST_INT64", 1))

	t.Setenv("PI_TEST_INT64", "big")
	assert.Equal(t, int64(1), GetEnvInt64("PI_TEST_INT64", 1))
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("PI_TEST_FLOAT", "2.5")
	assert.InDelta(t, 2.5, GetEnvFloat("PI_TEST_FLOAT", 5), 1e-9)

	t.Setenv("PI_TEST_FLOAT", "fast")
	assert.InDelta(t, 5.0, GetEnvFloat("PI_TEST_FLOAT", 5), 1e-9)
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"FALSE", true, false},
		{"0", true, false},
		{"yes", true, true},
		{"yes", false, false},
		{"", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("PI_TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, GetEnvBool("PI_TEST_BOOL", tt.def))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("PI_TEST_DURATION", "1m30s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("PI_TEST_DURATION", time.Second))

	t.Setenv("PI_TEST_DURATION", "30")
	assert.Equal(t, time.Second, GetEnvDuration("PI_TEST_DURATION", time.Second))
}

func TestGetEnvStringList(t *testing.T) {
	def := []string{"*"}

	t.Setenv("PI_TEST_LIST", "https://a.example, https://b.example ,")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, GetEnvStringList("PI_TEST_LIST", def))

	t.Setenv("PI_TEST_LIST", " , ,")
	assert.Equal(t, def, GetEnvStringList("PI_TEST_LIST", def))

	t.Setenv("PI_TEST_LIST", "")
	assert.Equal(t, def, GetEnvStringList("PI_TEST_LIST", def))
}
