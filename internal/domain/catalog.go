package domain

type Studio struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// DefaultStudios is the fixed catalog used when the config does not override it.
var DefaultStudios = []Studio{
	{ID: "studio-1", Name: "Studio 1"},
	{ID: "studio-2", Name: "Studio 2"},
	{ID: "studio-3", Name: "Studio 3"},
	{ID: "studio-4", Name: "Studio 4"},
	{ID: "golden-studio", Name: "312 Golden Studio"},
	{ID: "sargasan-studio-1", Name: "Sargasan Studio 1"},
	{ID: "sargasan-studio-2", Name: "Sargasan Studio 2"},
}

// Catalog is the finite set of bookable studios, known at startup. Catalog
// position drives export ordering.
type Catalog struct {
	studios []Studio
	order   map[string]int
}

func NewCatalog(studios []Studio) *Catalog {
	if len(studios) == 0 {
		studios = DefaultStudios
	}
	order := make(map[string]int, len(studios))
	for i, s := range studios {
		order[s.ID] = i
	}
	return &Catalog{studios: studios, order: order}
}

func (c *Catalog) Studios() []Studio {
	return c.studios
}

func (c *Catalog) Contains(id string) bool {
	_, ok := c.order[id]
	return ok
}

// Position returns the catalog index of a studio id; unknown ids sort last.
func (c *Catalog) Position(id string) int {
	if i, ok := c.order[id]; ok {
		return i
	}
	return len(c.studios)
}

// DisplayName returns the studio name, falling back to the raw id when the id
// is not in the catalog.
func (c *Catalog) DisplayName(id string) string {
	if i, ok := c.order[id]; ok {
		return c.studios[i].Name
	}
	return id
}
