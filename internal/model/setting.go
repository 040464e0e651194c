package model

import "time"

// StoreSettingID is the fixed primary key of the singleton settings row.
const StoreSettingID = 1

type StoreSetting struct {
	ID               uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	StoreName        string    `gorm:"type:varchar(255);not null" json:"storeName"`
	StoreDescription string    `gorm:"type:text" json:"storeDescription"`
	LogoURL          string    `gorm:"type:text" json:"logoUrl"`
	BannerURL        string    `gorm:"type:text" json:"bannerUrl"`
	Whatsapp         string    `gorm:"type:varchar(50)" json:"whatsapp"`
	Instagram        string    `gorm:"type:varchar(255)" json:"instagram"`
	Facebook         string    `gorm:"type:varchar(255)" json:"facebook"`
	Twitter          string    `gorm:"type:varchar(255)" json:"twitter"`
	Tiktok           string    `gorm:"type:varchar(255)" json:"tiktok"`
	SupportEmail     string    `gorm:"type:varchar(255)" json:"supportEmail"`
	StoreAddress     string    `gorm:"type:text" json:"storeAddress"`
	StoreProvinceID  string    `gorm:"type:varchar(20)" json:"storeProvinceId"`
	StoreCityID      string    `gorm:"type:varchar(20)" json:"storeCityId"`
	StoreDistrictID  string    `gorm:"type:varchar(20)" json:"storeDistrictId"` // shipping origin
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// DefaultStoreSetting is what a fresh shop shows before an admin saves anything.
func DefaultStoreSetting() StoreSetting {
	return StoreSetting{
		ID:               StoreSettingID,
		StoreName:        "Microsite Shop",
		StoreDescription: "Welcome to our shop",
		BannerURL:        "https://images.unsplash.com/photo-1441986300917-64674bd600d8",
	}
}
