package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageStoreRoundtrip(t *testing.T) {
	s := NewImageStore()

	id, err := s.Put([]byte("bytes"), "image/jpeg")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	img, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []byte("bytes"), img.Data)
	assert.Equal(t, "image/jpeg", img.ContentType)
}

func TestImageStoreRejectsNonImage(t *testing.T) {
	s := NewImageStore()
	_, err := s.Put([]byte("plain"), "text/plain")
	assert.Error(t, err)
}

func TestImageStoreMissingID(t *testing.T) {
	s := NewImageStore()
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrImageNotFound)
}
