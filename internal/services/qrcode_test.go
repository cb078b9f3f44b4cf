package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRGenerator(t *testing.T) {
	g := NewQRGenerator("https://mataam.example")
	assert.Equal(t, "https://mataam.example/orders/ORD-123456789", g.OrderURL("ORD-123456789"))

	png, err := g.PNG("ORD-123456789")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	dataURL, err := g.DataURL("ORD-123456789")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))
}
