package storage

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImageType(t *testing.T) {
	c := &Client{}

	assert.NoError(t, c.ValidateImageType("image/jpeg"))
	assert.NoError(t, c.ValidateImageType("image/PNG"))
	assert.NoError(t, c.ValidateImageType("image/webp"))
	assert.Error(t, c.ValidateImageType("image/gif"))
	assert.Error(t, c.ValidateImageType("application/pdf"))
}

func TestValidateImageSize(t *testing.T) {
	c := &Client{}

	small := base64.StdEncoding.EncodeToString([]byte("tiny image"))
	assert.NoError(t, c.ValidateImageSize(small))

	assert.Error(t, c.ValidateImageSize("%%%not-base64%%%"))
}

func TestDecodeImage_DataURI(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("pixels"))

	got, err := decodeImage("data:image/png;base64," + payload)
	require.NoError(t, err)
	assert.Equal(t, []byte("pixels"), got)

	_, err = decodeImage("data:image/png;base64")
	assert.Error(t, err)
}

func TestGenerateFileName(t *testing.T) {
	c := &Client{}

	name := c.GenerateFileName("a3f1", "Avatar.PNG")
	assert.True(t, strings.HasPrefix(name, "mentors/a3f1/"))
	assert.True(t, strings.HasSuffix(name, ".png"))

	noExt := c.GenerateFileName("a3f1", "avatar")
	assert.True(t, strings.HasSuffix(noExt, ".jpg"))
}
