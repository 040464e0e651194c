// Command seed loads the demo catalog and store settings.
package main

import (
	"flag"

	"microsite-shop/internal/config"
	"microsite-shop/internal/logger"
	"microsite-shop/internal/model"
	"microsite-shop/internal/repository"
	"microsite-shop/internal/service"
	"microsite-shop/pkg/database"
	"microsite-shop/pkg/slug"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	reset := flag.Bool("reset", true, "delete orders, products and settings before seeding")
	flag.Parse()

	// 1. Load Env
	cfg, envLoaded, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log, err := logger.Init(cfg.Log)
	if err != nil {
		logrus.Fatalf("logger: %v", err)
	}
	if !envLoaded {
		log.Warn(".env file not found, relying on system env")
	}

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.DSN(), log)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	// 3. Clear existing data to avoid duplicates
	if *reset {
		if err := wipe(db); err != nil {
			log.WithError(err).Fatal("reset failed")
		}
		log.Info("Cleared orders, products and store settings")
	}

	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	categories := service.NewCategoryService(categoryRepo, productRepo)
	products := service.NewProductService(productRepo, categoryRepo, nil)
	settings := service.NewSettingService(repository.NewSettingRepo(db))

	// 4. Categories and products
	categoryIDs := map[string]uint{}
	for _, item := range catalog {
		id, ok := categoryIDs[item.Category]
		if !ok {
			id, err = ensureCategory(categoryRepo, categories, item.Category)
			if err != nil {
				log.WithError(err).WithField("category", item.Category).Fatal("seed category")
			}
			categoryIDs[item.Category] = id
		}

		categoryID := id
		p, err := products.CreateProduct(&service.ProductRequest{
			Name:        item.Name,
			Price:       decimal.NewFromInt(item.Price),
			CategoryID:  &categoryID,
			Image:       item.Image,
			Description: item.Description,
			Stock:       item.Stock,
			Type:        item.Type,
			FileURL:     item.FileURL,
		})
		if err != nil {
			log.WithError(err).WithField("product", item.Name).Fatal("seed product")
		}
		log.Infof("Created %s product: %s", p.Type, p.Name)
	}

	// 5. Store settings
	if *reset {
		if _, err := settings.UpdateSettings(&demoSettings); err != nil {
			log.WithError(err).Fatal("seed settings")
		}
		log.Info("Created default store settings")
	} else if _, err := settings.GetSettings(); err != nil {
		log.WithError(err).Fatal("seed settings")
	}

	log.Info("Seeding finished")
}

func wipe(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, m := range []interface{}{&model.OrderItem{}, &model.Order{}, &model.Product{}, &model.StoreSetting{}} {
			if err := all.Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ensureCategory returns the id of the category called name, creating it if needed.
func ensureCategory(repo repository.CategoryRepository, svc service.CategoryService, name string) (uint, error) {
	if existing, err := repo.FindBySlug(slug.Make(name)); err == nil {
		return existing.ID, nil
	}
	created, err := svc.CreateCategory(&service.CategoryRequest{Name: name})
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}
