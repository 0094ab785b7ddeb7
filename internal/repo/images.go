package repo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/travelmaker/backend/internal/domain"
	"github.com/travelmaker/backend/internal/storage"
)

// imagesKey holds a JSON object mapping location display name to a base64
// data URL of an uploaded image.
const imagesKey = "location_images"

// MaxImageBytes caps the decoded size of an uploaded location image at 5MB.
const MaxImageBytes = 5 << 20

// ImageRepo stores one uploaded image per location display name.
type ImageRepo interface {
	// Get returns the data URL for location.
	// Returns domain.ErrNotFound when no image is stored for it.
	Get(ctx context.Context, location string) (string, error)

	// Put validates and stores the data URL for location, replacing any
	// previous image. Returns domain.ErrValidation for non-image payloads
	// or images over MaxImageBytes.
	Put(ctx context.Context, location, dataURL string) error

	// Delete removes the image for location. Absent entries are not an error.
	Delete(ctx context.Context, location string) error
}

type kvImageRepo struct {
	store storage.Store
	mu    sync.Mutex
}

// NewImageRepo constructs an ImageRepo over the given store.
func NewImageRepo(store storage.Store) ImageRepo {
	return &kvImageRepo{store: store}
}

func (r *kvImageRepo) Get(ctx context.Context, location string) (string, error) {
	images, err := r.load(ctx)
	if err != nil {
		return "", fmt.Errorf("repo.ImageRepo.Get: %w", err)
	}
	url, ok := images[location]
	if !ok {
		return "", fmt.Errorf("repo.ImageRepo.Get: %w", domain.ErrNotFound)
	}
	return url, nil
}

func (r *kvImageRepo) Put(ctx context.Context, location, dataURL string) error {
	if err := validateImageDataURL(dataURL); err != nil {
		return fmt.Errorf("repo.ImageRepo.Put: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	images, err := r.load(ctx)
	if err != nil {
		return fmt.Errorf("repo.ImageRepo.Put: %w", err)
	}
	images[location] = dataURL

	if err := r.save(ctx, images); err != nil {
		return fmt.Errorf("repo.ImageRepo.Put: %w", err)
	}
	return nil
}

func (r *kvImageRepo) Delete(ctx context.Context, location string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	images, err := r.load(ctx)
	if err != nil {
		return fmt.Errorf("repo.ImageRepo.Delete: %w", err)
	}
	if _, ok := images[location]; !ok {
		return nil
	}
	delete(images, location)

	if err := r.save(ctx, images); err != nil {
		return fmt.Errorf("repo.ImageRepo.Delete: %w", err)
	}
	return nil
}

// validateImageDataURL enforces the upload contract: an image MIME data URL
// whose decoded payload is at most MaxImageBytes.
func validateImageDataURL(dataURL string) error {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return fmt.Errorf("%w: only image data URLs are accepted", domain.ErrValidation)
	}
	idx := strings.Index(dataURL, ";base64,")
	if idx < 0 {
		return fmt.Errorf("%w: image must be base64-encoded", domain.ErrValidation)
	}
	payload := dataURL[idx+len(";base64,"):]
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes {
		return fmt.Errorf("%w: image exceeds the 5MB limit", domain.ErrValidation)
	}
	return nil
}

func (r *kvImageRepo) load(ctx context.Context) (map[string]string, error) {
	raw, ok, err := r.store.Get(ctx, imagesKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]string{}, nil
	}
	var images map[string]string
	if err := json.Unmarshal(raw, &images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	return images, nil
}

func (r *kvImageRepo) save(ctx context.Context, images map[string]string) error {
	raw, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}
	return r.store.Set(ctx, imagesKey, raw)
}
