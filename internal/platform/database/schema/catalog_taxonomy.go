package schema

// CatalogTaxonomyTable represents a slug-keyed lookup table such as
// 'catalog.category' or 'catalog.genre'.
type CatalogTaxonomyTable struct {
	Table string
	Slug  string
	Name  string
}

// CatalogCategory is the schema definition for catalog.category
var CatalogCategory = CatalogTaxonomyTable{
	Table: "catalog.category",
	Slug:  "slug",
	Name:  "name",
}

// CatalogGenre is the schema definition for catalog.genre
var CatalogGenre = CatalogTaxonomyTable{
	Table: "catalog.genre",
	Slug:  "slug",
	Name:  "name",
}

// Columns returns all standard column names
func (t CatalogTaxonomyTable) Columns() []string {
	return []string{t.Slug, t.Name}
}
