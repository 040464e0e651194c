package repository

import (
	"microsite-shop/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	// Get returns the singleton row, creating it with defaults on first use.
	Get() (*model.StoreSetting, error)
	Save(setting *model.StoreSetting) error
}

type settingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db}
}

func (r *settingRepo) Get() (*model.StoreSetting, error) {
	setting := model.DefaultStoreSetting()
	err := r.db.Where(model.StoreSetting{ID: model.StoreSettingID}).FirstOrCreate(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Save upserts the singleton row.
func (r *settingRepo) Save(setting *model.StoreSetting) error {
	setting.ID = model.StoreSettingID
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(setting).Error
}
