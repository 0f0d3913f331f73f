// Package reference loads the static option catalogs consumed by the schema
// and by the form drivers: issuing districts and genders.
package reference

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"insurtech/internal/applicant/models"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// District is one administrative district.
type District struct {
	Code     string `yaml:"code" json:"code"`
	Name     string `yaml:"name" json:"name"`
	Province string `yaml:"province" json:"province"`
}

// Option is a generic code/label pair.
type Option struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

// Catalog is an immutable, pre-loaded set of valid codes.
type Catalog struct {
	districts []District
	genders   []Option
	byCode    map[string]District
}

type catalogDTO struct {
	Districts []District `yaml:"districts"`
	Genders   []Option   `yaml:"genders"`
}

// Load parses a YAML catalog. District codes must be unique and non-empty,
// and every gender code must be a known models.Gender.
func Load(data []byte) (*Catalog, error) {
	var dto catalogDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(dto.Districts) == 0 {
		return nil, errors.New("catalog: no districts defined")
	}

	byCode := make(map[string]District, len(dto.Districts))
	for i, d := range dto.Districts {
		code := strings.TrimSpace(d.Code)
		if code == "" {
			return nil, fmt.Errorf("catalog: district %d has no code", i)
		}
		if _, dup := byCode[code]; dup {
			return nil, fmt.Errorf("catalog: duplicate district code %q", code)
		}
		d.Code = code
		dto.Districts[i] = d
		byCode[code] = d
	}
	for _, g := range dto.Genders {
		if !models.Gender(g.Code).IsValid() {
			return nil, fmt.Errorf("catalog: unknown gender code %q", g.Code)
		}
	}

	return &Catalog{districts: dto.Districts, genders: dto.Genders, byCode: byCode}, nil
}

var defaultCatalog = mustLoad(embeddedCatalog)

func mustLoad(data []byte) *Catalog {
	c, err := Load(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the embedded catalog.
func Default() *Catalog {
	return defaultCatalog
}

// Districts returns every district in catalog order.
func (c *Catalog) Districts() []District {
	return append([]District(nil), c.districts...)
}

// Genders returns the gender options in catalog order.
func (c *Catalog) Genders() []Option {
	return append([]Option(nil), c.genders...)
}

// IsDistrict reports whether code is a recognized district code.
func (c *Catalog) IsDistrict(code string) bool {
	_, ok := c.byCode[code]
	return ok
}

// District looks up a district by code.
func (c *Catalog) District(code string) (District, bool) {
	d, ok := c.byCode[code]
	return d, ok
}
