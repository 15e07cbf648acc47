package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetFallsBackOnMissingOrEmpty(t *testing.T) {
	assert.Equal(t, "default", Get("CONFIG_TEST_MISSING", "default"))

	t.Setenv("CONFIG_TEST_EMPTY", "")
	assert.Equal(t, "default", Get("CONFIG_TEST_EMPTY", "default"))

	t.Setenv("CONFIG_TEST_SET", "value")
	assert.Equal(t, "value", Get("CONFIG_TEST_SET", "default"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("CONFIG_TEST_INT", "42")
	assert.Equal(t, 42, GetInt("CONFIG_TEST_INT", 7))

	t.Setenv("CONFIG_TEST_INT", "not a number")
	assert.Equal(t, 7, GetInt("CONFIG_TEST_INT", 7))

	assert.Equal(t, 7, GetInt("CONFIG_TEST_INT_MISSING", 7))
}

func TestGetFloat(t *testing.T) {
	t.Setenv("CONFIG_TEST_FLOAT", "12.5")
	assert.Equal(t, 12.5, GetFloat("CONFIG_TEST_FLOAT", 1.0))

	assert.Equal(t, 1.0, GetFloat("CONFIG_TEST_FLOAT_MISSING", 1.0))
}

func TestGetBool(t *testing.T) {
	for _, truthy := range []string{"true", "1", "yes", "Y"} {
		t.Setenv("CONFIG_TEST_BOOL", truthy)
		assert.True(t, GetBool("CONFIG_TEST_BOOL", false), "value %q", truthy)
	}
	for _, falsy := range []string{"false", "0", "no", "N"} {
		t.Setenv("CONFIG_TEST_BOOL", falsy)
		assert.False(t, GetBool("CONFIG_TEST_BOOL", true), "value %q", falsy)
	}

	t.Setenv("CONFIG_TEST_BOOL", "maybe")
	assert.True(t, GetBool("CONFIG_TEST_BOOL", true))
}

func TestGetDuration(t *testing.T) {
	t.Setenv("CONFIG_TEST_DURATION", "45s")
	assert.Equal(t, 45*time.Second, GetDuration("CONFIG_TEST_DURATION", time.Minute))

	assert.Equal(t, time.Minute, GetDuration("CONFIG_TEST_DURATION_MISSING", time.Minute))
}
