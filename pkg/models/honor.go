package models

import (
	"strings"
	"time"
)

type HonorType string

const (
	HonorChampions HonorType = "champions"
	HonorRunnersUp HonorType = "runners-up"
)

// Medal maps the honor type onto the medal tier used for styling.
func (t HonorType) Medal() string {
	switch t {
	case HonorChampions:
		return "gold"
	case HonorRunnersUp:
		return "silver"
	default:
		return "bronze"
	}
}

func (t HonorType) Label() string {
	return strings.ToUpper(string(t))
}

// Honor is a trophy or placing won by the club.
type Honor struct {
	ID          string    `json:"id"`
	Type        HonorType `json:"type"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Format      string    `json:"format"`
	Logo        *Asset    `json:"logo,omitempty"`
	Description string    `json:"description"`
}

func HonorFromEntry(e Entry) Honor {
	f := e.Fields
	return Honor{
		ID:          e.Sys.ID,
		Type:        HonorType(f.Text("type")),
		Title:       f.Text("title"),
		Date:        f.Time("date"),
		Format:      f.Text("format"),
		Logo:        f.Asset("logo"),
		Description: f.Text("description"),
	}
}
