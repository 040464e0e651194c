package model

// DefaultPostAuthor is shown when a post is saved without an author.
const DefaultPostAuthor = "Admin"

// Post is a blog article
type Post struct {
	BaseModel
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Slug    string `gorm:"type:varchar(280);uniqueIndex;not null" json:"slug"`
	Excerpt string `gorm:"type:text" json:"excerpt,omitempty"`
	Content string `gorm:"type:text;not null" json:"content"`
	Image   string `gorm:"type:text" json:"image,omitempty"`
	Author  string `gorm:"type:varchar(100)" json:"author"`
}
