package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSingleInputSource(t *testing.T) {
	const none, many = "no manifest given", "give only one manifest"

	assert.NoError(t, ValidateSingleInputSource(none, many, true, false))
	assert.NoError(t, ValidateSingleInputSource(none, many, false, true))
	assert.EqualError(t, ValidateSingleInputSource(none, many, false, false), none)
	assert.EqualError(t, ValidateSingleInputSource(none, many), none)
	assert.EqualError(t, ValidateSingleInputSource(none, many, true, true), many)
}
