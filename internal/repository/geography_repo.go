package repository

import (
	"microsite-shop/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GeographyRepository is the local cache of RajaOngkir provinces, cities and districts.
type GeographyRepository interface {
	Provinces() ([]model.Province, error)
	CitiesByProvince(provinceID uint) ([]model.City, error)
	DistrictsByCity(cityID uint) ([]model.District, error)

	ProvinceExists(id uint) (bool, error)
	CityExists(id uint) (bool, error)

	// Save* insert rows, silently skipping ids that are already cached.
	SaveProvinces(provinces []model.Province) error
	SaveCities(cities []model.City) error
	SaveDistricts(districts []model.District) error
}

type geographyRepo struct {
	db *gorm.DB
}

func NewGeographyRepo(db *gorm.DB) GeographyRepository {
	return &geographyRepo{db}
}

func (r *geographyRepo) Provinces() ([]model.Province, error) {
	var rows []model.Province
	err := r.db.Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *geographyRepo) CitiesByProvince(provinceID uint) ([]model.City, error) {
	var rows []model.City
	err := r.db.Where("province_id = ?", provinceID).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *geographyRepo) DistrictsByCity(cityID uint) ([]model.District, error) {
	var rows []model.District
	err := r.db.Where("city_id = ?", cityID).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *geographyRepo) ProvinceExists(id uint) (bool, error) {
	var n int64
	err := r.db.Model(&model.Province{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *geographyRepo) CityExists(id uint) (bool, error) {
	var n int64
	err := r.db.Model(&model.City{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *geographyRepo) SaveProvinces(provinces []model.Province) error {
	if len(provinces) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&provinces).Error
}

func (r *geographyRepo) SaveCities(cities []model.City) error {
	if len(cities) == 0 {
		return nil
	}
	return r.db.Omit("Province").Clauses(clause.OnConflict{DoNothing: true}).Create(&cities).Error
}

func (r *geographyRepo) SaveDistricts(districts []model.District) error {
	if len(districts) == 0 {
		return nil
	}
	return r.db.Omit("City").Clauses(clause.OnConflict{DoNothing: true}).Create(&districts).Error
}
