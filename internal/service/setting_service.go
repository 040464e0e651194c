package service

import (
	"strings"

	"microsite-shop/internal/apperr"
	"microsite-shop/internal/model"
	"microsite-shop/internal/repository"
)

type SettingService interface {
	GetSettings() (*model.StoreSetting, error)
	UpdateSettings(req *SettingRequest) (*model.StoreSetting, error)
}

// SettingRequest is a partial update: nil fields keep their stored value.
type SettingRequest struct {
	StoreName        *string `json:"storeName" validate:"omitempty,max=255"`
	StoreDescription *string `json:"storeDescription"`
	LogoURL          *string `json:"logoUrl"`
	BannerURL        *string `json:"bannerUrl"`
	Whatsapp         *string `json:"whatsapp" validate:"omitempty,max=50"`
	Instagram        *string `json:"instagram" validate:"omitempty,max=255"`
	Facebook         *string `json:"facebook" validate:"omitempty,max=255"`
	Twitter          *string `json:"twitter" validate:"omitempty,max=255"`
	Tiktok           *string `json:"tiktok" validate:"omitempty,max=255"`
	SupportEmail     *string `json:"supportEmail" validate:"omitempty,email"`
	StoreAddress     *string `json:"storeAddress"`
	StoreProvinceID  *string `json:"storeProvinceId" validate:"omitempty,max=20"`
	StoreCityID      *string `json:"storeCityId" validate:"omitempty,max=20"`
	StoreDistrictID  *string `json:"storeDistrictId" validate:"omitempty,max=20"`
}

type settingService struct {
	repo repository.SettingRepository
}

func NewSettingService(repo repository.SettingRepository) SettingService {
	return &settingService{repo: repo}
}

func (s *settingService) GetSettings() (*model.StoreSetting, error) {
	setting, err := s.repo.Get()
	if err != nil {
		return nil, apperr.Internal("Failed to fetch settings", err)
	}
	return setting, nil
}

func (s *settingService) UpdateSettings(req *SettingRequest) (*model.StoreSetting, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if req.StoreName != nil && strings.TrimSpace(*req.StoreName) == "" {
		return nil, apperr.Validation("Store name cannot be empty")
	}

	setting, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&setting.StoreName, req.StoreName)
	set(&setting.StoreDescription, req.StoreDescription)
	set(&setting.LogoURL, req.LogoURL)
	set(&setting.BannerURL, req.BannerURL)
	set(&setting.Whatsapp, req.Whatsapp)
	set(&setting.Instagram, req.Instagram)
	set(&setting.Facebook, req.Facebook)
	set(&setting.Twitter, req.Twitter)
	set(&setting.Tiktok, req.Tiktok)
	set(&setting.SupportEmail, req.SupportEmail)
	set(&setting.StoreAddress, req.StoreAddress)
	set(&setting.StoreProvinceID, req.StoreProvinceID)
	set(&setting.StoreCityID, req.StoreCityID)
	set(&setting.StoreDistrictID, req.StoreDistrictID)

	if err := s.repo.Save(setting); err != nil {
		return nil, apperr.Internal("Failed to update settings", err)
	}
	return setting, nil
}
