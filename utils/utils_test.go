package utils

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatINR(t *testing.T) {
	cases := map[float64]string{
		0:         "₹0",
		999:       "₹999",
		1000:      "₹1,000",
		12345:     "₹12,345",
		123456:    "₹1,23,456",
		1234567:   "₹12,34,567",
		123456789: "₹12,34,56,789",
		2499.6:    "₹2,500",
		-45000:    "-₹45,000",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatINR(in), "%v", in)
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, G: 128, B: 0, A: 255}, c)

	c, err = ParseHexColor("0f0")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0, G: 255, B: 0, A: 255}, c)

	c, err = ParseHexColor("#00000080")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x80), c.A)

	for _, bad := range []string{"", "#12", "#gggggg", "red"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}
