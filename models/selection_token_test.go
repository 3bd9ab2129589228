package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionTokenKeepsInvalidBounds(t *testing.T) {
	sel := FilterSelection{
		PriceRange:   &PriceRange{Min: ValidPrice(5000), Max: InvalidPrice("lots")},
		PropertyType: "Guest House",
		Amenities:    []string{"Kitchen", "Ac"},
	}

	token, err := EncodeSelectionToken(sel)
	require.NoError(t, err)
	assert.NotContains(t, token, "=")

	got, err := DecodeSelectionToken(token)
	require.NoError(t, err)
	assert.Equal(t, sel, got)
	assert.Equal(t, "lots", got.PriceRange.Max.Raw())
}

func TestSelectionTokenEmpty(t *testing.T) {
	got, err := DecodeSelectionToken("")
	require.NoError(t, err)
	assert.Equal(t, FilterSelection{}, got)

	token, err := EncodeSelectionToken(FilterSelection{})
	require.NoError(t, err)
	got, err = DecodeSelectionToken(token)
	require.NoError(t, err)
	assert.Nil(t, got.PriceRange)
}

func TestSelectionTokenRejectsGarbage(t *testing.T) {
	_, err := DecodeSelectionToken("!!not-base64!!")
	assert.Error(t, err)

	_, err = DecodeSelectionToken("oXg") // msgpack string, not a map
	assert.Error(t, err)
}
