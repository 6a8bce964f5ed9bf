package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSafePrompt(t *testing.T) {
	res := Validate("A small mouse sails a paper boat across a puddle.")
	assert.True(t, res.IsSafe)
	assert.Empty(t, res.Issues)
	assert.Equal(t, res.Original, res.Cleaned)
}

func TestValidateFlagsAndSubstitutes(t *testing.T) {
	res := Validate("A shop sign with text above the door.")
	assert.False(t, res.IsSafe)
	assert.Len(t, res.Issues, 2)
	assert.Contains(t, res.Cleaned, "symbol")
	assert.Contains(t, res.Cleaned, "detail")
	assert.NotContains(t, res.Cleaned, "sign")
	assert.NotContains(t, res.Cleaned, "text")
	assert.Equal(t, "A shop sign with text above the door.", res.Original)
}

func TestValidateIsCaseInsensitiveWholeWord(t *testing.T) {
	res := Validate("TEXT everywhere")
	assert.False(t, res.IsSafe)

	// "design" contains "sign" but is not a whole-word match
	res = Validate("A playful design of swirls.")
	assert.True(t, res.IsSafe, "substring hits must not be flagged")
}

func TestValidatePhraseBeforeWord(t *testing.T) {
	res := Validate("The book cover shows a dragon.")
	assert.False(t, res.IsSafe)
	assert.Contains(t, res.Cleaned, "front of a closed object")
}

func TestValidateEmptyPrompt(t *testing.T) {
	res := Validate("")
	assert.True(t, res.IsSafe)
	assert.Empty(t, res.Cleaned)
	assert.NotNil(t, res.Issues)
}
