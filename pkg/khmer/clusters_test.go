package khmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKhmerClusterLength(t *testing.T) {
	assert := assert.New(t)

	cps := []rune("ស្តី")
	assert.Equal(4, khmerClusterLength(cps, 0, len(cps)))

	nonKhmer := []rune("abc")
	assert.Equal(1, khmerClusterLength(nonKhmer, 0, len(nonKhmer)))
}

func TestNumberLengthPlainDigits(t *testing.T) {
	assert := assert.New(t)

	cps := []rune("12345")
	assert.Equal(5, numberLength(cps, 0, len(cps)))
}

func TestNumberLengthWithCurrencyPrefix(t *testing.T) {
	assert := assert.New(t)

	cps := []rune("$1,000,000")
	assert.Equal(len(cps), numberLength(cps, 0, len(cps)), "currency symbol must be consumed as part of the number group")
}

func TestNumberLengthCurrencyWithoutDigitReturnsZero(t *testing.T) {
	assert := assert.New(t)

	cps := []rune("$abc")
	assert.Equal(0, numberLength(cps, 0, len(cps)))
}

func TestNumberLengthSeparatorNotFollowedByDigitStops(t *testing.T) {
	assert := assert.New(t)

	cps := []rune("123, ")
	assert.Equal(3, numberLength(cps, 0, len(cps)))
}

func TestAcronymDetection(t *testing.T) {
	assert := assert.New(t)

	cps := []rune("ក.ខ.")
	assert.True(acronymStart(cps, 0, len(cps)))
	assert.Equal(len(cps), acronymLength(cps, 0, len(cps)))
}

func TestAcronymNotTriggeredWithoutTrailingPeriod(t *testing.T) {
	assert := assert.New(t)

	cps := []rune("កខ")
	assert.False(acronymStart(cps, 0, len(cps)))
}
