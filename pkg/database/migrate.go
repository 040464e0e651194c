package database

import (
	"microsite-shop/internal/model"

	"gorm.io/gorm"
)

// Models lists every table in dependency order.
var Models = []interface{}{
	&model.User{},
	&model.Category{},
	&model.Product{},
	&model.Order{},
	&model.OrderItem{},
	&model.StoreSetting{},
	&model.Post{},
	&model.Province{},
	&model.City{},
	&model.District{},
}

// Migrate creates or updates the schema. A dedicated migration tool is preferable in production.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}
