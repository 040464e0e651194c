package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"microsite-shop/internal/apperr"
	"microsite-shop/internal/model"
	"microsite-shop/internal/repository"
	"microsite-shop/internal/testutil"
	"microsite-shop/pkg/rajaongkir"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUpstream struct {
	srv   *httptest.Server
	calls atomic.Int32
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{}
	mux := http.NewServeMux()
	mux.HandleFunc("/destination/province", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		w.Write([]byte(`{"meta":{"code":200},"data":[{"id":9,"name":"Jawa Barat"},{"id":"11","name":"Jawa Timur"}]}`))
	})
	mux.HandleFunc("/destination/city/9", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		w.Write([]byte(`{"data":[{"id":23,"name":"Bandung","zip_code":"40111"}]}`))
	})
	mux.HandleFunc("/destination/city/77", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		w.Write([]byte(`{"data":[{"id":501,"name":"Nowhere"}]}`))
	})
	mux.HandleFunc("/destination/district/23", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		w.Write([]byte(`{"data":[{"id":501,"name":"Coblong","zip_code":"40132"}]}`))
	})
	mux.HandleFunc("/destination/district/88", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		w.Write([]byte(`{"data":[{"id":777,"name":"Loose"}]}`))
	})
	mux.HandleFunc("/destination/district/66", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"meta":{"code":429,"message":"limit"}}`))
	})
	mux.HandleFunc("/calculate/domestic-cost", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		w.Write([]byte(`{"data":[{"code":"jne","service":"REG","cost":18000}]}`))
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func newShippingService(t *testing.T, baseURL, key string) (ShippingService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	client := rajaongkir.NewClient(baseURL, key, 5*time.Second, nil)
	return NewShippingService(repository.NewGeographyRepo(db), client), db
}

func TestProvincesCacheAside(t *testing.T) {
	up := newFakeUpstream(t)
	svc, db := newShippingService(t, up.srv.URL, "test-key")
	ctx := context.Background()

	first, err := svc.Provinces(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.EqualValues(t, 1, up.calls.Load())
	assert.EqualValues(t, 2, countRows(t, db, &model.Province{}))

	second, err := svc.Provinces(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, up.calls.Load(), "second read must come from the cache")
	assert.ElementsMatch(t, first, second)
}

func TestCitiesCachedOnlyUnderKnownProvince(t *testing.T) {
	up := newFakeUpstream(t)
	svc, db := newShippingService(t, up.srv.URL, "test-key")
	ctx := context.Background()

	_, err := svc.Provinces(ctx)
	require.NoError(t, err)

	cities, err := svc.Cities(ctx, 9)
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, model.Location{ID: 23, Name: "Bandung", ZipCode: "40111"}, cities[0])

	_, err = svc.Cities(ctx, 9)
	require.NoError(t, err)
	assert.EqualValues(t, 2, up.calls.Load())

	// Province 77 is not cached, so its cities are returned but not stored.
	orphans, err := svc.Cities(ctx, 77)
	require.NoError(t, err)
	assert.Len(t, orphans, 1)
	assert.EqualValues(t, 1, countRows(t, db, &model.City{}))
}

func TestDistrictsCachedOnlyUnderKnownCity(t *testing.T) {
	up := newFakeUpstream(t)
	svc, db := newShippingService(t, up.srv.URL, "test-key")
	ctx := context.Background()

	_, err := svc.Provinces(ctx)
	require.NoError(t, err)
	_, err = svc.Cities(ctx, 9)
	require.NoError(t, err)
	require.EqualValues(t, 2, up.calls.Load())

	first, err := svc.Districts(ctx, 23)
	require.NoError(t, err)
	assert.Equal(t, []model.Location{{ID: 501, Name: "Coblong", ZipCode: "40132"}}, first)
	assert.EqualValues(t, 3, up.calls.Load())
	assert.EqualValues(t, 1, countRows(t, db, &model.District{}))

	second, err := svc.Districts(ctx, 23)
	require.NoError(t, err)
	assert.EqualValues(t, 3, up.calls.Load(), "second read must come from the cache")
	assert.Equal(t, first, second)

	// City 88 is not cached, so its districts are returned but not stored.
	loose, err := svc.Districts(ctx, 88)
	require.NoError(t, err)
	assert.Equal(t, []model.Location{{ID: 777, Name: "Loose"}}, loose)
	assert.EqualValues(t, 1, countRows(t, db, &model.District{}))
}

func TestUpstreamErrorIsForwarded(t *testing.T) {
	up := newFakeUpstream(t)
	svc, _ := newShippingService(t, up.srv.URL, "test-key")

	_, err := svc.Districts(context.Background(), 66)
	require.Error(t, err)

	ae := apperr.As(err)
	assert.Equal(t, apperr.KindUpstream, ae.Kind)
	assert.Equal(t, http.StatusTooManyRequests, ae.StatusCode())
	assert.JSONEq(t, `{"meta":{"code":429,"message":"limit"}}`, string(ae.UpstreamBody))
}

func TestMissingAPIKey(t *testing.T) {
	up := newFakeUpstream(t)
	svc, _ := newShippingService(t, up.srv.URL, "")

	_, err := svc.Provinces(context.Background())
	require.Error(t, err)
	assert.Equal(t, "API Key not configured", apperr.As(err).Message)
	assert.Equal(t, http.StatusInternalServerError, apperr.As(err).StatusCode())
	assert.Zero(t, up.calls.Load())
}

func TestCostIsNeverCached(t *testing.T) {
	up := newFakeUpstream(t)
	svc, _ := newShippingService(t, up.srv.URL, "test-key")
	req := &rajaongkir.CostRequest{Origin: "501", Destination: "23", Weight: 1000, Courier: "jne"}

	for i := 0; i < 2; i++ {
		data, err := svc.Cost(context.Background(), req)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"code":"jne","service":"REG","cost":18000}]`, string(data))
	}
	assert.EqualValues(t, 2, up.calls.Load())

	_, err := svc.Cost(context.Background(), &rajaongkir.CostRequest{Origin: "1"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
