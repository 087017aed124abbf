package models

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rohanthewiz/serr"
)

// Card label defaults, matching what the page renders.
const (
	NoProvinceLabel = "N/A"
	WebsiteLabel    = "Visit Website"
)

// Card is the visual unit for one university: what the grid shows and what
// an export rasterizes. The website URL is only used for the link target;
// it never appears in the exported image.
type Card struct {
	Name          string `json:"name" msgpack:"name"`
	ProvinceLabel string `json:"province_label" msgpack:"province_label"`
	LinkLabel     string `json:"link_label" msgpack:"link_label"`
	Website       string `json:"website" msgpack:"website"`
}

// NewCard builds the card for u.
func NewCard(u University) Card {
	province := u.Province()
	if province == "" {
		province = NoProvinceLabel
	}
	return Card{
		Name:          u.Name,
		ProvinceLabel: province,
		LinkLabel:     WebsiteLabel,
		Website:       u.Website(),
	}
}

// CardFilename is the download name of the card at index.
func CardFilename(index int) string {
	return fmt.Sprintf("university_card_%d.jpg", index)
}

// CardRef points at a rendered card. Resolve reports false once the card is
// no longer rendered, e.g. because the filter or a new search removed it.
type CardRef interface {
	Resolve() (Card, bool)
}

// CardRefFunc adapts a function to CardRef.
type CardRefFunc func() (Card, bool)

func (f CardRefFunc) Resolve() (Card, bool) { return f() }

// CardRef returns a reference to the card at index of the filtered view.
// It is resolved against the controller state at export time, not now.
func (sc *SearchController) CardRef(index int) CardRef {
	return CardRefFunc(func() (Card, bool) {
		return sc.Snapshot().Card(index)
	})
}

// Sink receives an exported artifact.
type Sink interface {
	Deliver(filename string, data []byte) error
}

// FileSink writes artifacts into Dir.
type FileSink struct {
	Dir string
}

// Deliver writes data to Dir/filename, creating Dir if needed.
func (fs FileSink) Deliver(filename string, data []byte) error {
	dir := fs.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return serr.Wrap(err, "failed to create export directory")
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0o644); err != nil {
		return serr.Wrap(err, "failed to write card file")
	}
	return nil
}
