package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table     string
	ID        string
	ReviewID  string
	AuthorID  string
	Text      string
	PubDate   string
	UpdatedAt string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:     "social.comment",
	ID:        "id",
	ReviewID:  "reviewid",
	AuthorID:  "authorid",
	Text:      "text",
	PubDate:   "pubdate",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t SocialCommentTable) Columns() []string {
	return []string{t.ID, t.ReviewID, t.AuthorID, t.Text, t.PubDate, t.UpdatedAt}
}
