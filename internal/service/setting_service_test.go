package service

import (
	"testing"

	"microsite-shop/internal/apperr"
	"microsite-shop/internal/model"
	"microsite-shop/internal/repository"
	"microsite-shop/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSettingsPartialUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewSettingService(repository.NewSettingRepo(db))

	initial, err := svc.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultStoreSetting().StoreName, initial.StoreName)

	updated, err := svc.UpdateSettings(&SettingRequest{
		StoreName:       strPtr("Toko Sari"),
		Whatsapp:        strPtr("628123456789"),
		StoreDistrictID: strPtr("501"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Toko Sari", updated.StoreName)
	assert.Equal(t, initial.StoreDescription, updated.StoreDescription)

	again, err := svc.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "Toko Sari", again.StoreName)
	assert.Equal(t, "501", again.StoreDistrictID)
	assert.EqualValues(t, model.StoreSettingID, again.ID)
	assert.EqualValues(t, 1, countRows(t, db, &model.StoreSetting{}))

	_, err = svc.UpdateSettings(&SettingRequest{StoreName: strPtr("  ")})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	_, err = svc.UpdateSettings(&SettingRequest{SupportEmail: strPtr("nope")})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
