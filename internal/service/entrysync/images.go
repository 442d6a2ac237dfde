package entrysync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/himalink/internal/adapter/blob"
)

// ImageUpload is a file to attach to an entry.
type ImageUpload struct {
	Filename    string
	ContentType string
	Caption     *string
	Body        io.Reader
}

// UploadImage stores the file, registers its public URL on the entry and
// re-reads the entry's image list.
//
// When registration fails after a successful upload the object stays in
// storage; nothing sweeps it.
func (s *Service) UploadImage(ctx context.Context, entryID uuid.UUID, file ImageUpload) (err error) {
	const op = "upload_image"
	defer observe(op, time.Now(), &err)

	gen := s.issue(entryID, slotImages)[0]

	path := blob.ImagePath(entryID, s.now(), blob.Extension(file.Filename, file.ContentType))
	url, err := s.blobs.Upload(ctx, path, file.ContentType, file.Body)
	if err != nil {
		return s.fail(ctx, op, entryID, fmt.Errorf("upload image: %w", err))
	}

	if _, err = s.images.Add(ctx, entryID, url, file.Caption); err != nil {
		s.log.WarnContext(ctx, "image uploaded but not registered",
			slog.String("entry_id", entryID.String()),
			slog.String("path", path),
		)
		return s.fail(ctx, op, entryID, fmt.Errorf("add image: %w", err))
	}

	return s.reloadImages(ctx, op, entryID, gen)
}

// DeleteImage removes the stored object behind imageURL, deletes the image
// row and re-reads the entry's image list. A URL without a storage path is
// rejected before any gateway call.
func (s *Service) DeleteImage(ctx context.Context, entryID, imageID uuid.UUID, imageURL string) (err error) {
	path, err := blob.StoragePathFromURL(imageURL)
	if err != nil {
		return err
	}

	const op = "delete_image"
	defer observe(op, time.Now(), &err)

	gen := s.issue(entryID, slotImages)[0]

	if err = s.blobs.Remove(ctx, path); err != nil {
		return s.fail(ctx, op, entryID, fmt.Errorf("remove image: %w", err))
	}
	if err = s.images.Delete(ctx, entryID, imageID); err != nil {
		return s.fail(ctx, op, entryID, fmt.Errorf("delete image: %w", err))
	}

	return s.reloadImages(ctx, op, entryID, gen)
}

func (s *Service) reloadImages(ctx context.Context, op string, entryID uuid.UUID, gen uint64) error {
	images, err := s.images.ListByEntry(ctx, entryID)
	if err != nil {
		return s.fail(ctx, op, entryID, fmt.Errorf("get images: %w", err))
	}
	s.commit(ctx, op, entryID, update{slot: slotImages, gen: gen, set: setImages(images)})
	return nil
}
