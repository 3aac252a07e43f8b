// Package agency holds the static catalog of agencies a conversation can be
// scoped to, and the search used by the catalog view.
package agency

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	gserrors "github.com/botenders/govsimplify/internal/errors"
)

//go:embed agencies.yaml
var agenciesYAML []byte

// Record is one agency in the catalog. Records are immutable and identified by ID.
type Record struct {
	ID        string `yaml:"id"`
	ShortName string `yaml:"name"`
	FullName  string `yaml:"full_name"`
	Logo      string `yaml:"logo"`
	Category  string `yaml:"category"`
}

// LogoPath is the server-relative path of the agency's logo asset.
func (r Record) LogoPath() string {
	return "/agencies/" + r.Logo
}

// IconPath is the relative path of the agency's icon asset.
func (r Record) IconPath() string {
	return "agencies/" + r.ID + ".svg"
}

// Announcement is the status text raised when the record is selected.
func (r Record) Announcement() string {
	return "Selected " + r.FullName
}

// Matches reports whether the short or full name contains query, ignoring case.
func (r Record) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.ShortName), q) ||
		strings.Contains(strings.ToLower(r.FullName), q)
}

// Catalog is an ordered, read-only set of agency records.
type Catalog struct {
	records []Record
	byID    map[string]int
}

// Parse builds a catalog from YAML, rejecting incomplete or duplicate records.
func Parse(data []byte) (*Catalog, error) {
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, gserrors.CatalogInvalid(err.Error())
	}
	return New(records)
}

// New builds a catalog from records in display order.
func New(records []Record) (*Catalog, error) {
	c := &Catalog{
		records: make([]Record, 0, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	for i, r := range records {
		if r.ID == "" || r.ShortName == "" || r.FullName == "" {
			return nil, gserrors.CatalogInvalid(fmt.Sprintf("record %d is missing id or name", i))
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, gserrors.CatalogInvalid(fmt.Sprintf("duplicate agency id %s", r.ID))
		}
		c.byID[r.ID] = len(c.records)
		c.records = append(c.records, r)
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(agenciesYAML)
	})
	return defaultCatalog, defaultErr
}

// All returns every record in display order.
func (c *Catalog) All() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Get looks up a record by ID.
func (c *Catalog) Get(id string) (Record, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Record{}, false
	}
	return c.records[i], true
}

// Lookup is Get with a structured not-found error.
func (c *Catalog) Lookup(id string) (Record, error) {
	r, ok := c.Get(id)
	if !ok {
		return Record{}, gserrors.AgencyNotFound(id)
	}
	return r, nil
}

// Filter returns the records whose short or full name contains query,
// case-insensitively, in display order. An empty query returns all records.
func (c *Catalog) Filter(query string) []Record {
	if query == "" {
		return c.All()
	}
	var out []Record
	for _, r := range c.records {
		if r.Matches(query) {
			out = append(out, r)
		}
	}
	return out
}
