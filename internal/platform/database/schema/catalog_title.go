package schema

// CatalogTitleTable represents the 'catalog.title' table
type CatalogTitleTable struct {
	Table        string
	ID           string
	Name         string
	Year         string
	Description  string
	CategorySlug string
	CreatedAt    string
	UpdatedAt    string
}

// CatalogTitle is the schema definition for catalog.title
var CatalogTitle = CatalogTitleTable{
	Table:        "catalog.title",
	ID:           "id",
	Name:         "name",
	Year:         "year",
	Description:  "description",
	CategorySlug: "categoryslug",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t CatalogTitleTable) Columns() []string {
	return []string{t.ID, t.Name, t.Year, t.Description, t.CategorySlug, t.CreatedAt, t.UpdatedAt}
}
