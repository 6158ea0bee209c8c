package statement

import (
	"encoding/json"
	"slices"
)

// Security is a security mentioned in the statement.
type Security struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

// Directory lists the securities of a statement by ticker, in order of appearance.
type Directory struct {
	securities []Security
	index      map[string]int
}

// NewDirectory returns a new empty directory.
func NewDirectory() *Directory {
	return &Directory{index: make(map[string]int)}
}

// Add adds a security unless its ticker is already known. The first name wins.
func (d *Directory) Add(ticker, name string) bool {
	if ticker == "" || d.Has(ticker) {
		return false
	}
	d.index[ticker] = len(d.securities)
	d.securities = append(d.securities, Security{Ticker: ticker, Name: name})
	return true
}

func (d *Directory) Has(ticker string) bool {
	_, ok := d.index[ticker]
	return ok
}

// Name returns the name of a ticker, "" if it is unknown.
func (d *Directory) Name(ticker string) string {
	i, ok := d.index[ticker]
	if !ok {
		return ""
	}
	return d.securities[i].Name
}

func (d *Directory) Len() int { return len(d.securities) }

// All returns the securities in order of appearance.
func (d *Directory) All() []Security { return slices.Clone(d.securities) }

// MarshalJSON implements the json.Marshaler interface for Directory.
func (d *Directory) MarshalJSON() ([]byte, error) {
	if len(d.securities) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(d.securities)
}
