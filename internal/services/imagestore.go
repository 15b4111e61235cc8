package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
)

// ErrImageNotFound is returned when no stored image matches the id.
var ErrImageNotFound = errors.New("image not found")

// StoredImage is an uploaded image held in memory.
type StoredImage struct {
	Data        []byte
	ContentType string
}

// ImageStore keeps uploaded photos in process memory. It stands in for a real
// object store when Cloudinary is not configured; contents are lost on restart.
type ImageStore struct {
	mu     sync.Mutex
	images map[string]StoredImage
}

func NewImageStore() *ImageStore {
	return &ImageStore{images: make(map[string]StoredImage)}
}

// Put stores the image and returns its opaque id.
func (s *ImageStore) Put(data []byte, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", errors.New("file must be an image")
	}
	idBytes := make([]byte, 8)
	if _, err := rand.Read(idBytes); err != nil {
		return "", err
	}
	id := hex.EncodeToString(idBytes)

	s.mu.Lock()
	s.images[id] = StoredImage{Data: data, ContentType: contentType}
	s.mu.Unlock()
	return id, nil
}

// Get returns the stored image or ErrImageNotFound.
func (s *ImageStore) Get(id string) (StoredImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.images[id]
	if !ok {
		return StoredImage{}, ErrImageNotFound
	}
	return img, nil
}
