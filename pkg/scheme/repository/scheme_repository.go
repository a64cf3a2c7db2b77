package repository

import "kisan/entities"

// SchemeCatalog is the read-only list of government schemes.
type SchemeCatalog interface {
	All() []entities.Scheme
}
