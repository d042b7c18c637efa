package job

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ytget/mediafetch/internal/fetch"
)

// Name placeholders used when metadata is absent
const (
	PlaceholderName   = "Unknown"
	PlaceholderArtist = "Unknown Artist"

	// SingleBucket is the album folder for items not grouped into a
	// collection
	SingleBucket = "Single"
)

// Characters allowed in addition to letters and digits
const extraNameRunes = " .-_"

// SanitizeName makes a metadata field safe to use as a path segment:
// anything that is not a letter, digit, space, dot, hyphen, or
// underscore is stripped. An empty result maps to PlaceholderName.
// Sanitizing an already-sanitized name returns it unchanged.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(extraNameRunes, r) {
			b.WriteRune(r)
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return PlaceholderName
	}
	return out
}

// resolveTitle picks the item title: explicit track tag first, then the
// platform title, then a positional placeholder. index is 1-based.
func resolveTitle(item fetch.Item, index int) string {
	if item.Track != "" {
		return item.Track
	}
	if item.Title != "" {
		return item.Title
	}
	return fmt.Sprintf("Track %d", index)
}

// resolveArtist picks the artist: explicit tag first, then the
// uploader/channel name, then the fixed placeholder
func resolveArtist(item fetch.Item) string {
	if item.Artist != "" {
		return item.Artist
	}
	if item.Uploader != "" {
		return item.Uploader
	}
	return PlaceholderArtist
}

// resolveAlbum picks the collection name shared by every item of the
// batch. Only the explicit collection flag groups items under the batch
// title; without it everything lands in the fixed single bucket.
func resolveAlbum(isCollection bool, batchTitle string) string {
	if isCollection && batchTitle != "" {
		return batchTitle
	}
	return SingleBucket
}
