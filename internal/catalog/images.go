package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/imagestore"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
)

// recordImage inserts img, assigning the next display order when none was given,
// and keeps it the only primary among its siblings.
func (s *Service) recordImage(ctx context.Context, tx Store, img *models.PropertyImage) error {
	if img.DisplayOrder < 0 {
		order, err := tx.NextDisplayOrder(ctx, img.PropertyID, img.UnitID)
		if err != nil {
			return err
		}
		img.DisplayOrder = order
	}
	if err := tx.CreateImage(ctx, img); err != nil {
		return err
	}
	if img.IsPrimary {
		return tx.UnsetOtherPrimaries(ctx, img)
	}
	return nil
}

// ownedImage resolves an image attached to the property or to one of its units.
func (s *Service) ownedImage(ctx context.Context, st Store, propertyID, imageID string) (*models.PropertyImage, error) {
	img, err := st.GetImage(ctx, imageID)
	if errors.Is(err, ErrNotFound) {
		return nil, notFound("image", imageID)
	}
	if err != nil {
		return nil, err
	}
	if img.BelongsTo(propertyID) {
		return img, nil
	}
	if img.UnitID != nil {
		if _, err := st.GetUnit(ctx, propertyID, *img.UnitID); err == nil {
			return img, nil
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, notFound("image", imageID)
}

// UploadImage stores the bytes first and records the image afterwards. If recording
// fails the stored blob is removed again.
func (s *Service) UploadImage(ctx context.Context, propertyID, callerID string, up ImageUpload) (*models.PropertyImage, error) {
	if len(up.Data) == 0 {
		return nil, validationf("image data is required")
	}
	if int64(len(up.Data)) > s.maxImageBytes {
		return nil, validationf("image exceeds %d bytes", s.maxImageBytes)
	}
	if up.Type != "" && !up.Type.Valid() {
		return nil, validationf("unknown image type %q", up.Type)
	}
	if up.DisplayOrder != nil && *up.DisplayOrder < 0 {
		return nil, validationf("displayOrder must not be negative")
	}
	info, err := imagestore.Inspect(up.Data)
	if err != nil {
		return nil, validationf("%v", err)
	}

	if _, err := s.ownedProperty(ctx, s.store, propertyID, callerID); err != nil {
		return nil, s.fail(ctx, "upload image", err)
	}
	if up.UnitID != "" {
		if _, err := s.store.GetUnit(ctx, propertyID, up.UnitID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, notFound("unit", up.UnitID)
			}
			return nil, s.fail(ctx, "upload image", err)
		}
	}

	img := newUploadedImage(propertyID, up, info)
	url, err := s.blobs.Put(ctx, imagestore.Key(propertyID, img.ID, info.Extension), up.Data, info.MimeType)
	if err != nil {
		s.log(ctx).Error("Failed to store image", "property_id", propertyID, "error", err)
		return nil, fmt.Errorf("%w: store image", ErrUpload)
	}
	img.URL = url

	err = s.store.Transaction(ctx, func(tx Store) error {
		return s.recordImage(ctx, tx, img)
	})
	if err != nil {
		if derr := s.blobs.Delete(ctx, url); derr != nil {
			s.log(ctx).Warn("Failed to clean up orphaned image", "url", url, "error", derr)
		}
		return nil, s.fail(ctx, "record image", err)
	}
	s.log(ctx).Info("Image uploaded", "property_id", propertyID, "image_id", img.ID, "bytes", info.Size)
	s.refreshIndex(ctx, propertyID)
	return img, nil
}

// BatchItem is the outcome of one file of a batch upload.
type BatchItem struct {
	Index    int
	Filename string
	Image    *models.PropertyImage
	Err      error
}

// UploadImages uploads each file independently. Ownership is checked once;
// a failing file does not stop the others.
func (s *Service) UploadImages(ctx context.Context, propertyID, callerID string, uploads []ImageUpload) ([]BatchItem, error) {
	if len(uploads) == 0 {
		return nil, validationf("no files provided")
	}
	if _, err := s.ownedProperty(ctx, s.store, propertyID, callerID); err != nil {
		return nil, s.fail(ctx, "upload images", err)
	}
	items := make([]BatchItem, len(uploads))
	for i, up := range uploads {
		img, err := s.UploadImage(ctx, propertyID, callerID, up)
		items[i] = BatchItem{Index: i, Filename: up.Filename, Image: img, Err: err}
	}
	return items, nil
}

func newUploadedImage(propertyID string, up ImageUpload, info imagestore.Info) *models.PropertyImage {
	t := up.Type
	if t == "" {
		t = models.ImageTypeOther
	}
	size := info.Size
	img := &models.PropertyImage{
		ID:           uuid.NewString(),
		Type:         t,
		Title:        up.Title,
		Caption:      up.Caption,
		AltText:      up.AltText,
		DisplayOrder: -1,
		IsPrimary:    up.IsPrimary,
		IsFeatured:   up.IsFeatured,
		Is360View:    t == models.ImageType360View,
		FileSize:     &size,
		Format:       info.Format,
		MimeType:     info.MimeType,
	}
	if up.UnitID != "" {
		unitID := up.UnitID
		img.UnitID = &unitID
	} else {
		pid := propertyID
		img.PropertyID = &pid
	}
	if up.DisplayOrder != nil {
		img.DisplayOrder = *up.DisplayOrder
	}
	if info.Width > 0 && info.Height > 0 {
		w, h := info.Width, info.Height
		img.Width, img.Height = &w, &h
	}
	return img
}

// ListImages returns the property's images followed by its units' images.
func (s *Service) ListImages(ctx context.Context, propertyID, callerID string) ([]models.PropertyImage, error) {
	if _, err := s.ownedProperty(ctx, s.store, propertyID, callerID); err != nil {
		return nil, s.fail(ctx, "list images", err)
	}
	units, err := s.store.ListUnits(ctx, []string{propertyID})
	if err != nil {
		return nil, s.fail(ctx, "list images", err)
	}
	unitIDs := make([]string, len(units))
	for i := range units {
		unitIDs[i] = units[i].ID
	}
	images, err := s.store.ListImages(ctx, []string{propertyID}, unitIDs)
	if err != nil {
		return nil, s.fail(ctx, "list images", err)
	}
	return nonNil(images), nil
}

// DeleteImage soft-deletes the record and then removes its blobs. A blob that
// cannot be removed is logged; no live row ever points at a missing blob.
func (s *Service) DeleteImage(ctx context.Context, propertyID, imageID, callerID string) error {
	var img *models.PropertyImage
	err := s.store.Transaction(ctx, func(tx Store) error {
		if _, err := s.ownedProperty(ctx, tx, propertyID, callerID); err != nil {
			return err
		}
		var err error
		img, err = s.ownedImage(ctx, tx, propertyID, imageID)
		if err != nil {
			return err
		}
		n, err := tx.SoftDeleteImage(ctx, imageID)
		if err != nil {
			return err
		}
		if n == 0 {
			return notFound("image", imageID)
		}
		return nil
	})
	if err != nil {
		return s.fail(ctx, "delete image", err)
	}

	for _, url := range []string{img.URL, img.ThumbnailURL} {
		if url == "" {
			continue
		}
		if err := s.blobs.Delete(ctx, url); err != nil {
			s.log(ctx).Warn("Failed to delete image blob", "image_id", imageID, "url", url, "error", err)
		}
	}
	s.log(ctx).Info("Image deleted", "property_id", propertyID, "image_id", imageID)
	s.refreshIndex(ctx, propertyID)
	return nil
}

// SetPrimaryImage marks the image primary and clears the flag on its siblings.
func (s *Service) SetPrimaryImage(ctx context.Context, propertyID, imageID, callerID string) (*models.PropertyImage, error) {
	var img *models.PropertyImage
	err := s.store.Transaction(ctx, func(tx Store) error {
		if _, err := s.ownedProperty(ctx, tx, propertyID, callerID); err != nil {
			return err
		}
		var err error
		img, err = s.ownedImage(ctx, tx, propertyID, imageID)
		if err != nil {
			return err
		}
		if err := tx.MarkPrimary(ctx, imageID); err != nil {
			return err
		}
		img.IsPrimary = true
		return tx.UnsetOtherPrimaries(ctx, img)
	})
	if err != nil {
		return nil, s.fail(ctx, "set primary image", err)
	}
	return img, nil
}
