package service

import (
	"context"
	"encoding/json"
	"errors"

	"microsite-shop/internal/apperr"
	"microsite-shop/internal/logger"
	"microsite-shop/internal/model"
	"microsite-shop/internal/repository"
	"microsite-shop/pkg/rajaongkir"
)

// GeographyClient is the subset of the RajaOngkir client the shipping service needs.
type GeographyClient interface {
	Configured() bool
	Provinces(ctx context.Context) ([]rajaongkir.Location, error)
	Cities(ctx context.Context, provinceID int) ([]rajaongkir.Location, error)
	Districts(ctx context.Context, cityID int) ([]rajaongkir.Location, error)
	Cost(ctx context.Context, req rajaongkir.CostRequest) (json.RawMessage, error)
}

type ShippingService interface {
	Provinces(ctx context.Context) ([]model.Location, error)
	Cities(ctx context.Context, provinceID uint) ([]model.Location, error)
	Districts(ctx context.Context, cityID uint) ([]model.Location, error)
	Cost(ctx context.Context, req *rajaongkir.CostRequest) (json.RawMessage, error)
}

type shippingService struct {
	repo   repository.GeographyRepository
	client GeographyClient
}

func NewShippingService(repo repository.GeographyRepository, client GeographyClient) ShippingService {
	return &shippingService{repo: repo, client: client}
}

// Provinces serves the cached list, filling it from upstream on first use.
func (s *shippingService) Provinces(ctx context.Context) ([]model.Location, error) {
	cached, err := s.repo.Provinces()
	if err != nil {
		return nil, apperr.Internal("Failed to fetch provinces", err)
	}
	if len(cached) > 0 {
		out := make([]model.Location, 0, len(cached))
		for _, p := range cached {
			out = append(out, model.Location{ID: p.ID, Name: p.Name})
		}
		return out, nil
	}

	if !s.client.Configured() {
		return nil, errNotConfigured()
	}
	fresh, err := s.client.Provinces(ctx)
	if err != nil {
		return nil, upstreamError("Failed to fetch provinces", err)
	}

	rows := make([]model.Province, 0, len(fresh))
	for _, loc := range fresh {
		if loc.ID > 0 {
			rows = append(rows, model.Province{ID: uint(loc.ID), Name: loc.Name})
		}
	}
	if err := s.repo.SaveProvinces(rows); err != nil {
		logger.Get().WithError(err).Warn("geography cache: save provinces")
	}
	return toLocations(fresh), nil
}

func (s *shippingService) Cities(ctx context.Context, provinceID uint) ([]model.Location, error) {
	cached, err := s.repo.CitiesByProvince(provinceID)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch cities", err)
	}
	if len(cached) > 0 {
		out := make([]model.Location, 0, len(cached))
		for _, c := range cached {
			out = append(out, model.Location{ID: c.ID, Name: c.Name, ZipCode: c.ZipCode})
		}
		return out, nil
	}

	if !s.client.Configured() {
		return nil, errNotConfigured()
	}
	fresh, err := s.client.Cities(ctx, int(provinceID))
	if err != nil {
		return nil, upstreamError("Failed to fetch cities", err)
	}

	// Cities are only cached under a province we already know.
	if ok, err := s.repo.ProvinceExists(provinceID); err != nil {
		logger.Get().WithError(err).Warn("geography cache: check province")
	} else if ok {
		rows := make([]model.City, 0, len(fresh))
		for _, loc := range fresh {
			if loc.ID > 0 {
				rows = append(rows, model.City{ID: uint(loc.ID), ProvinceID: provinceID, Name: loc.Name, ZipCode: loc.ZipCode})
			}
		}
		if err := s.repo.SaveCities(rows); err != nil {
			logger.Get().WithError(err).WithField("province_id", provinceID).Warn("geography cache: save cities")
		}
	}
	return toLocations(fresh), nil
}

func (s *shippingService) Districts(ctx context.Context, cityID uint) ([]model.Location, error) {
	cached, err := s.repo.DistrictsByCity(cityID)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch districts", err)
	}
	if len(cached) > 0 {
		out := make([]model.Location, 0, len(cached))
		for _, d := range cached {
			out = append(out, model.Location{ID: d.ID, Name: d.Name, ZipCode: d.ZipCode})
		}
		return out, nil
	}

	if !s.client.Configured() {
		return nil, errNotConfigured()
	}
	fresh, err := s.client.Districts(ctx, int(cityID))
	if err != nil {
		return nil, upstreamError("Failed to fetch districts", err)
	}

	if ok, err := s.repo.CityExists(cityID); err != nil {
		logger.Get().WithError(err).Warn("geography cache: check city")
	} else if ok {
		rows := make([]model.District, 0, len(fresh))
		for _, loc := range fresh {
			if loc.ID > 0 {
				rows = append(rows, model.District{ID: uint(loc.ID), CityID: cityID, Name: loc.Name, ZipCode: loc.ZipCode})
			}
		}
		if err := s.repo.SaveDistricts(rows); err != nil {
			logger.Get().WithError(err).WithField("city_id", cityID).Warn("geography cache: save districts")
		}
	}
	return toLocations(fresh), nil
}

// Cost is a straight pass-through; quotes are never cached.
func (s *shippingService) Cost(ctx context.Context, req *rajaongkir.CostRequest) (json.RawMessage, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if !s.client.Configured() {
		return nil, errNotConfigured()
	}
	data, err := s.client.Cost(ctx, *req)
	if err != nil {
		return nil, upstreamError("Failed to calculate shipping cost", err)
	}
	return data, nil
}

func toLocations(in []rajaongkir.Location) []model.Location {
	out := make([]model.Location, 0, len(in))
	for _, loc := range in {
		out = append(out, model.Location{ID: uint(loc.ID), Name: loc.Name, ZipCode: loc.ZipCode})
	}
	return out
}

func errNotConfigured() error {
	return apperr.Internal("API Key not configured", rajaongkir.ErrNotConfigured)
}

func upstreamError(msg string, err error) error {
	if errors.Is(err, rajaongkir.ErrNotConfigured) {
		return errNotConfigured()
	}
	var se *rajaongkir.StatusError
	if errors.As(err, &se) {
		return apperr.Upstream(msg, se.StatusCode, se.Body, err)
	}
	return apperr.Upstream(msg, 0, nil, err)
}
