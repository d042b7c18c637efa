package job

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/ytget/mediafetch/internal/config"
	"github.com/ytget/mediafetch/internal/fetch"
)

// Per-format quality defaults applied when the request leaves quality
// empty
const (
	defaultAudioQuality = "192"
	defaultVideoQuality = fetch.QualityBest
)

// ValidationError marks bad submit input. It surfaces through the job
// record (terminal error status), never as a transport-level rejection.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// jobSpec is a validated, normalized submit request
type jobSpec struct {
	url          string
	format       string
	quality      string
	root         string
	isCollection bool
}

// validate normalizes req into a jobSpec or returns a ValidationError
func (s *Service) validate(req Request) (jobSpec, error) {
	target, err := validateURL(req.URL)
	if err != nil {
		return jobSpec{}, err
	}

	format, err := validateFormat(req.Format, s.cfg.Downloads.AllowedFormats)
	if err != nil {
		return jobSpec{}, err
	}

	quality, err := s.validateQuality(req.Quality, format)
	if err != nil {
		return jobSpec{}, err
	}

	root, err := s.validateLocation(req.Location)
	if err != nil {
		return jobSpec{}, err
	}

	return jobSpec{
		url:          target,
		format:       format,
		quality:      quality,
		root:         root,
		isCollection: req.IsCollection,
	}, nil
}

// validateURL requires a well-formed absolute http(s) URL
func validateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &ValidationError{Field: "url", Message: "must be a non-empty string"}
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", &ValidationError{Field: "url", Message: err.Error()}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", &ValidationError{Field: "url", Message: "scheme must be http or https"}
	}
	if parsed.Host == "" {
		return "", &ValidationError{Field: "url", Message: "missing host"}
	}

	return raw, nil
}

// validateFormat defaults an empty format to mp3 and rejects anything
// outside the allow-list
func validateFormat(format string, allowed []string) (string, error) {
	if format == "" {
		return fetch.FormatMP3, nil
	}
	if !slices.Contains(allowed, format) {
		return "", &ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("%q is not one of %v", format, allowed),
		}
	}
	return format, nil
}

// validateQuality defaults an empty quality per format and checks the
// format-appropriate allow-list
func (s *Service) validateQuality(quality, format string) (string, error) {
	allowed := s.cfg.Downloads.VideoQualities
	fallback := defaultVideoQuality
	if format == fetch.FormatMP3 {
		allowed = s.cfg.Downloads.AudioQualities
		fallback = defaultAudioQuality
	}

	if quality == "" {
		return fallback, nil
	}
	if !slices.Contains(allowed, quality) {
		return "", &ValidationError{
			Field:   "quality",
			Message: fmt.Sprintf("%q is not one of %v for %s", quality, allowed, format),
		}
	}
	return quality, nil
}

// validateLocation defaults an empty location key and maps it to the
// configured filesystem root
func (s *Service) validateLocation(location string) (string, error) {
	if location == "" {
		location = config.LocationDefault
	}

	root, ok := s.cfg.Root(location)
	if !ok {
		return "", &ValidationError{
			Field:   "location",
			Message: fmt.Sprintf("unknown location key %q", location),
		}
	}
	return root, nil
}
