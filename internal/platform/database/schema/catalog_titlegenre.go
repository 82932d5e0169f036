package schema

// CatalogTitleGenreTable represents the 'catalog.titlegenre' junction table
type CatalogTitleGenreTable struct {
	Table     string
	TitleID   string
	GenreSlug string
}

// CatalogTitleGenre is the schema definition for catalog.titlegenre
var CatalogTitleGenre = CatalogTitleGenreTable{
	Table:     "catalog.titlegenre",
	TitleID:   "titleid",
	GenreSlug: "genreslug",
}
