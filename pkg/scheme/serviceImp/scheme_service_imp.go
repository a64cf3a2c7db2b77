package serviceImp

import (
	"strings"

	"kisan/entities"
	"kisan/pkg/scheme/repository"
	"kisan/pkg/scheme/service"
)

var (
	categories = []string{"All", "Financial Support", "Input Subsidy", "Equipment Subsidy", "Soil Testing", "Insurance"}
	states     = []string{"Karnataka", "All India"}
)

type schemeSvc struct{ catalog repository.SchemeCatalog }

func New(catalog repository.SchemeCatalog) service.SchemeService { return &schemeSvc{catalog} }

// Filter keeps schemes whose name or description contains Query, whose
// category equals Category and whose state contains State, all ignoring
// case. An empty or "all" Category or State matches every scheme.
func (s *schemeSvc) Filter(f service.Filter) []entities.Scheme {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	cat := strings.ToLower(strings.TrimSpace(f.Category))
	st := strings.ToLower(strings.TrimSpace(f.State))

	out := []entities.Scheme{}
	for _, sc := range s.catalog.All() {
		if q != "" && !strings.Contains(strings.ToLower(sc.Name), q) && !strings.Contains(strings.ToLower(sc.Description), q) {
			continue
		}
		if cat != "" && cat != "all" && strings.ToLower(sc.Category) != cat {
			continue
		}
		if st != "" && st != "all" && !strings.Contains(strings.ToLower(sc.State), st) {
			continue
		}
		out = append(out, sc)
	}
	return out
}

func (s *schemeSvc) Options() service.Options {
	return service.Options{Categories: categories, States: states}
}
