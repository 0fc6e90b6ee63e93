package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-metabox/pkg/field"
)

// ErrItemRequired is returned by stores when a meta operation has no item id.
var ErrItemRequired = errors.New("storage: item id is required")

// Reader reads stored values. The boolean result reports whether a value was
// present; absent values read as the empty string.
type Reader interface {
	ItemMeta(ctx context.Context, itemID, key string) (string, bool, error)
	SiteOption(ctx context.Context, key string) (string, bool, error)
}

// Writer persists values. Writes are last-write-wins.
type Writer interface {
	SetItemMeta(ctx context.Context, itemID, key, value string) error
	SetSiteOption(ctx context.Context, key, value string) error
}

// Store is the full storage collaborator.
type Store interface {
	Reader
	Writer
}

// ReadValue reads the stored value of f for itemID, dispatching on the field's
// storage type.
func ReadValue(ctx context.Context, r Reader, f field.Field, itemID string) (string, error) {
	base := f.Base()
	var (
		value string
		err   error
	)
	switch base.Storage {
	case field.StorageOption:
		value, _, err = r.SiteOption(ctx, base.Name)
	case field.StorageMeta, "":
		value, _, err = r.ItemMeta(ctx, itemID, base.Name)
	default:
		return "", fmt.Errorf("%w: %q", field.ErrUnknownStorage, base.Storage)
	}
	if err != nil {
		return "", fmt.Errorf("storage: read %q: %w", base.Name, err)
	}
	return value, nil
}

// WriteValue writes an encoded value for f, dispatching on the field's storage
// type.
func WriteValue(ctx context.Context, w Writer, f field.Field, itemID, value string) error {
	base := f.Base()
	var err error
	switch base.Storage {
	case field.StorageOption:
		err = w.SetSiteOption(ctx, base.Name, value)
	case field.StorageMeta, "":
		err = w.SetItemMeta(ctx, itemID, base.Name, value)
	default:
		return fmt.Errorf("%w: %q", field.ErrUnknownStorage, base.Storage)
	}
	if err != nil {
		return fmt.Errorf("storage: write %q: %w", base.Name, err)
	}
	return nil
}

// AttachmentResolver turns an attachment identifier into a URL suitable for a
// preview image of the requested size.
type AttachmentResolver interface {
	AttachmentURL(ctx context.Context, attachmentID, size string) (string, error)
}

// AttachmentResolverFunc adapts a function to AttachmentResolver.
type AttachmentResolverFunc func(ctx context.Context, attachmentID, size string) (string, error)

// AttachmentURL calls fn.
func (fn AttachmentResolverFunc) AttachmentURL(ctx context.Context, attachmentID, size string) (string, error) {
	return fn(ctx, attachmentID, size)
}

// DefaultAttachmentPattern is used by URLPattern when no pattern is configured.
const DefaultAttachmentPattern = "/media/{id}/{size}"

// URLPattern resolves attachments by substituting {id} and {size} into a URL
// template. Both values are path-escaped. An empty id resolves to "".
type URLPattern string

// AttachmentURL implements AttachmentResolver.
func (p URLPattern) AttachmentURL(_ context.Context, attachmentID, size string) (string, error) {
	attachmentID = strings.TrimSpace(attachmentID)
	if attachmentID == "" {
		return "", nil
	}
	pattern := string(p)
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultAttachmentPattern
	}
	replacer := strings.NewReplacer(
		"{id}", url.PathEscape(attachmentID),
		"{size}", url.PathEscape(size),
	)
	return replacer.Replace(pattern), nil
}
