package tagger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bogem/id3v2/v2"
	"go.uber.org/zap"
)

// Limits for cover art fetches
const (
	coverFetchTimeout = 15 * time.Second
	maxCoverBytes     = 10 << 20
)

// Metadata is the resolved tag set for one finished audio file
type Metadata struct {
	Title    string
	Artist   string
	Album    string
	CoverURL string // optional
}

// Tagger embeds metadata into a finished audio file
type Tagger interface {
	Apply(ctx context.Context, path string, md Metadata) error
}

// ID3Tagger writes ID3v2 frames and, when a cover URL is present, an
// attached front-cover picture
type ID3Tagger struct {
	client *http.Client
	log    *zap.Logger
}

// NewID3Tagger creates a tagger with a timeout-bounded HTTP client for
// cover art
func NewID3Tagger(log *zap.Logger) *ID3Tagger {
	return &ID3Tagger{
		client: &http.Client{Timeout: coverFetchTimeout},
		log:    log,
	}
}

// Apply writes title/artist/album frames and the cover image to path.
// A cover fetch failure downgrades to tagging without art; it does not
// fail the call.
func (t *ID3Tagger) Apply(ctx context.Context, path string, md Metadata) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open %s for tagging: %w", path, err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(md.Title)
	tag.SetArtist(md.Artist)
	tag.SetAlbum(md.Album)

	if md.CoverURL != "" {
		cover, err := t.fetchCover(ctx, md.CoverURL)
		if err != nil {
			t.log.Warn("cover art fetch failed",
				zap.String("url", md.CoverURL),
				zap.Error(err))
		} else {
			tag.AddAttachedPicture(id3v2.PictureFrame{
				Encoding:    id3v2.EncodingUTF8,
				MimeType:    "image/jpeg",
				PictureType: id3v2.PTFrontCover,
				Description: "Front cover",
				Picture:     cover,
			})
		}
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags for %s: %w", path, err)
	}
	return nil
}

// fetchCover downloads the cover image, bounded in time and size
func (t *ID3Tagger) fetchCover(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCoverBytes))
	if err != nil {
		return nil, err
	}
	return data, nil
}
