package model

// Shipping geography cached from RajaOngkir. Primary keys are the upstream ids.

type Province struct {
	ID   uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

type City struct {
	ID         uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ProvinceID uint      `gorm:"index;not null" json:"provinceId"`
	Province   *Province `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	ZipCode    string    `gorm:"type:varchar(10)" json:"zipCode,omitempty"`
}

type District struct {
	ID      uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CityID  uint   `gorm:"index;not null" json:"cityId"`
	City    *City  `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Name    string `gorm:"type:varchar(100);not null" json:"name"`
	ZipCode string `gorm:"type:varchar(10)" json:"zipCode,omitempty"`
}

// Location is the shape returned to the storefront for any geography level.
type Location struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	ZipCode string `json:"zipCode,omitempty"`
}
