package repositoryImp

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"kisan/entities"
	"kisan/pkg/scheme/repository"
)

//go:embed schemes.yaml
var schemesYAML []byte

type catalog struct{ schemes []entities.Scheme }

// New loads the built-in catalog.
func New() (repository.SchemeCatalog, error) {
	return Parse(schemesYAML)
}

func Parse(data []byte) (repository.SchemeCatalog, error) {
	var out []entities.Scheme
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse scheme catalog: %w", err)
	}
	for i, s := range out {
		switch s.Status {
		case entities.SchemeActive, entities.SchemeClosingSoon, entities.SchemeUpcoming:
		default:
			return nil, fmt.Errorf("scheme %d (%s): unknown status %q", i, s.Name, s.Status)
		}
	}
	return &catalog{schemes: out}, nil
}

// All returns a copy; callers may not alter the catalog.
func (c *catalog) All() []entities.Scheme { return slices.Clone(c.schemes) }
