package models

import (
	"fmt"

	"github.com/rohanthewiz/serr"
)

// University is one record of the public university directory.
// The upstream JSON uses "state-province" (with a dash) and sends null
// for universities without a subdivision, hence the pointer.
type University struct {
	Name          string   `json:"name" msgpack:"name"`
	StateProvince *string  `json:"state-province" msgpack:"state-province"`
	WebPages      []string `json:"web_pages" msgpack:"web_pages"`
	Country       string   `json:"country,omitempty" msgpack:"country,omitempty"`
	AlphaTwoCode  string   `json:"alpha_two_code,omitempty" msgpack:"alpha_two_code,omitempty"`
	Domains       []string `json:"domains,omitempty" msgpack:"domains,omitempty"`
}

// Province returns the state/province or "" when the directory has none.
func (u University) Province() string {
	if u.StateProvince == nil {
		return ""
	}
	return *u.StateProvince
}

// Website returns the first listed web page, which is what the card links to.
func (u University) Website() string {
	if len(u.WebPages) == 0 {
		return ""
	}
	return u.WebPages[0]
}

// Validate checks the shape guarantees the rest of the app relies on.
func (u University) Validate() error {
	if u.Name == "" {
		return serr.New("university record has no name")
	}
	if len(u.WebPages) == 0 {
		return serr.New(fmt.Sprintf("university %q has no web pages", u.Name))
	}
	return nil
}

// StrPtr is a small helper for building records in code and tests.
func StrPtr(s string) *string {
	return &s
}
