package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCaptionSentinel(t *testing.T) {
	assert.Equal(t, "", normalizeCaption("/emptycaption"))
	assert.Equal(t, "", normalizeCaption("/EMPTYCAPTION"))
	assert.Equal(t, "", normalizeCaption("  /EmptyCaption  "))
}

func TestNormalizeCaptionLiteralText(t *testing.T) {
	assert.Equal(t, "new single out now", normalizeCaption("new single out now"))
	// Only an exact sentinel match empties the caption.
	assert.Equal(t, "/emptycaption please", normalizeCaption("/emptycaption please"))
}
