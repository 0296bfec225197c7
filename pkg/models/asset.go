package models

import (
	"encoding/json"
	"strings"
)

// Asset is a media file referenced by an entry.
type Asset struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

// UnmarshalJSON accepts a plain URL string, a resolved content store asset
// ({"sys":..., "fields":{"file":...}}) or the flat form produced by Marshal.
func (a *Asset) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		*a = Asset{URL: normalizeAssetURL(url)}
		return nil
	}

	var resolved struct {
		Fields *struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			File        struct {
				URL         string `json:"url"`
				ContentType string `json:"contentType"`
				Details     struct {
					Image struct {
						Width  int `json:"width"`
						Height int `json:"height"`
					} `json:"image"`
				} `json:"details"`
			} `json:"file"`
		} `json:"fields"`
	}
	if err := json.Unmarshal(data, &resolved); err != nil {
		return err
	}
	if resolved.Fields != nil {
		f := resolved.Fields
		*a = Asset{
			URL:         normalizeAssetURL(f.File.URL),
			Title:       f.Title,
			Description: f.Description,
			ContentType: f.File.ContentType,
			Width:       f.File.Details.Image.Width,
			Height:      f.File.Details.Image.Height,
		}
		return nil
	}

	type flat Asset
	var v flat
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Asset(v)
	a.URL = normalizeAssetURL(a.URL)
	return nil
}

// IsImage reports whether the asset can be shown in an <img> tag.
func (a *Asset) IsImage() bool {
	if a == nil {
		return false
	}
	if a.ContentType == "" {
		return true
	}
	return strings.HasPrefix(a.ContentType, "image/")
}

// The content store hands out protocol-relative URLs.
func normalizeAssetURL(url string) string {
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	return url
}
