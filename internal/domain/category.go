package domain

import (
	"sort"
	"strings"
)

// DefaultCategories is the catalog used when no categories file is configured
var DefaultCategories = []string{
	"Экскаватор", "Мини-экскаватор", "Погрузчик", "Мини-погрузчик",
	"Самосвал", "Манипулятор", "Автовышка", "Кран",
	"Бетонный насос",
	"Демонтажная бригада", "Кладочные работы", "Отделочные работы",
	"Сантехника", "Электрика", "Кровля", "Сварочные работы",
}

// Catalog is the fixed, ordered list of category labels shared by
// order creation and executor registration.
type Catalog struct {
	names []string
	index map[string]struct{}
}

// NewCatalog builds a catalog, dropping blanks and duplicates while keeping order
func NewCatalog(names []string) *Catalog {
	c := &Catalog{index: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := c.index[n]; dup {
			continue
		}
		c.index[n] = struct{}{}
		c.names = append(c.names, n)
	}
	return c
}

// Names returns the categories in display order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Contains reports whether name is part of the catalog.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.names)
}

// CategorySet is an unordered set of category labels.
// Values are treated as immutable: mutating helpers return a copy.
type CategorySet map[string]struct{}

// NewCategorySet builds a set from names.
func NewCategorySet(names ...string) CategorySet {
	s := make(CategorySet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set.
func (s CategorySet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Toggled returns a copy of the set with name added if absent or removed if present.
func (s CategorySet) Toggled(name string) CategorySet {
	out := s.Clone()
	if out.Has(name) {
		delete(out, name)
	} else {
		out[name] = struct{}{}
	}
	return out
}

// Clone returns an independent copy of the set.
func (s CategorySet) Clone() CategorySet {
	out := make(CategorySet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// Sorted returns the members in lexical order.
func (s CategorySet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Join renders the set as a comma separated list, or dash when empty.
func (s CategorySet) Join() string {
	if len(s) == 0 {
		return "—"
	}
	return strings.Join(s.Sorted(), ", ")
}
