package service

import (
	"fmt"
	"net/url"
)

// ImageConfig describes the third-party image-generation endpoint. The
// service only synthesizes a URL; the image itself is rendered lazily by the
// endpoint when the client fetches it.
type ImageConfig struct {
	BaseURL string
	Width   int
	Height  int
}

// BuildImageURL percent-encodes the prompt into the templated endpoint URL.
// The seed keeps repeated prompts from colliding in the endpoint's cache.
func BuildImageURL(cfg ImageConfig, prompt string, seed int64) string {
	return fmt.Sprintf("%s/%s?width=%d&height=%d&seed=%d&nologo=true",
		cfg.BaseURL, url.PathEscape(prompt), cfg.Width, cfg.Height, seed)
}
