package model

type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Filled by the repository with a COUNT subquery; not a column.
	ProductCount int64 `gorm:"->;-:migration" json:"productCount"`
}
