package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/catalog"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/cleanup"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/config"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/database/dbtest"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/imagestore"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/logging"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/ratelimit"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/scheduler"
)

const (
	landlord   = "landlord-1"
	adminToken = "s3cret"
)

type testServer struct {
	router  *gin.Engine
	limiter *ratelimit.Limiter
}

func newTestServer(t *testing.T, perMinute int) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	db := dbtest.NewTestDB(t)
	blobs, err := imagestore.NewFileStore(t.TempDir(), "http://media.test")
	require.NoError(t, err)
	svc := catalog.NewService(db, blobs, catalog.WithLogger(logging.Discard()))

	limiter := ratelimit.New(perMinute, 10000, true)
	cfg := config.DefaultConfig()
	cl := cleanup.NewService(db.DB(), blobs, logging.Discard())
	sched := scheduler.NewScheduler(cfg, scheduler.Jobs{Featured: svc, Purger: cl, Limiter: limiter}, logging.Discard())

	r := gin.New()
	Register(r, Routes{
		Properties: NewPropertyHandler(svc),
		Admin: NewAdminHandler(svc, cl, sched, limiter, cleanup.CleanupConfig{
			RetentionDays: cfg.Cleanup.RetentionDays, MaxDeletionCount: cfg.Cleanup.MaxDeletionCount,
		}),
		AdminAccess: config.AdminConfig{UserIDs: []string{"ops"}, Token: adminToken},
		Limiter:     limiter,
		DB:          db,
		Logger:      logging.Discard(),
	})
	return &testServer{router: r, limiter: limiter}
}

func (s *testServer) do(t *testing.T, method, path, caller string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rdr = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			rdr = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if caller != "" {
		req.Header.Set(CallerHeader, caller)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type aggregateBody struct {
	Property struct {
		ID          string   `json:"id"`
		OwnerID     string   `json:"ownerId"`
		Name        string   `json:"name"`
		Status      string   `json:"status"`
		MonthlyRent *float64 `json:"monthlyRent"`
		ViewCount   int64    `json:"viewCount"`
	} `json:"property"`
	Tags  []string `json:"tags"`
	Units []struct {
		ID          string  `json:"id"`
		UnitNumber  string  `json:"unitNumber"`
		MonthlyRent float64 `json:"monthlyRent"`
	} `json:"units"`
	Metrics struct {
		UnitCount           int     `json:"unitCount"`
		OccupancyRate       float64 `json:"occupancyRate"`
		TotalMonthlyRevenue float64 `json:"totalMonthlyRevenue"`
	} `json:"metrics"`
}

type pageBody[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
}

const duplexJSON = `{
	"name": "Riverside Duplex",
	"propertyType": "duplex",
	"address": {"streetAddress": "12 River Rd", "city": "Austin", "state": "TX", "zipCode": "78701"},
	"monthlyRent": 2500,
	"tags": ["River View", "garden"],
	"units": [
		{"monthlyRent": 1200},
		{"monthlyRent": 1300, "status": "rented"}
	]
}`

func createDuplex(t *testing.T, s *testServer) aggregateBody {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/properties", landlord, duplexJSON)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[aggregateBody](t, w)
}

func TestMissingCallerIsUnauthorized(t *testing.T) {
	s := newTestServer(t, 100)
	w := s.do(t, http.MethodGet, "/api/v1/properties/my-properties", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), CallerHeader)
}

func TestCreateAndGetProperty(t *testing.T) {
	s := newTestServer(t, 100)
	created := createDuplex(t, s)
	assert.Equal(t, landlord, created.Property.OwnerID)
	assert.Equal(t, "draft", created.Property.Status)
	assert.Equal(t, []string{"garden", "river view"}, created.Tags)
	assert.Equal(t, 2, created.Metrics.UnitCount)
	assert.InDelta(t, 50.0, created.Metrics.OccupancyRate, 0.001)
	assert.InDelta(t, 1300.0, created.Metrics.TotalMonthlyRevenue, 0.001)

	w := s.do(t, http.MethodGet, "/api/v1/properties/"+created.Property.ID, landlord, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[aggregateBody](t, w)
	assert.Equal(t, created.Property.ID, got.Property.ID)
	assert.NotEmpty(t, w.Header().Get(TraceHeader))

	w = s.do(t, http.MethodGet, "/api/v1/properties/"+created.Property.ID, "someone-else", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePropertyValidation(t *testing.T) {
	s := newTestServer(t, 100)

	w := s.do(t, http.MethodPost, "/api/v1/properties", landlord, `{"propertyType": "house"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/properties", landlord,
		`{"name": "Loft", "propertyType": "house", "leaseMinMonths": 12, "leaseMaxMonths": 6}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "LeaseMaxMonths")

	w = s.do(t, http.MethodPost, "/api/v1/properties", landlord, `{"name": "Loft", "propertyType": "castle"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/properties", landlord, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePropertyPatch(t *testing.T) {
	s := newTestServer(t, 100)
	created := createDuplex(t, s)
	path := "/api/v1/properties/" + created.Property.ID

	w := s.do(t, http.MethodPut, path, landlord, `{"name": "Riverside Duplex II", "monthlyRent": null}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[aggregateBody](t, w)
	assert.Equal(t, "Riverside Duplex II", got.Property.Name)
	assert.Nil(t, got.Property.MonthlyRent)
	assert.Equal(t, []string{"garden", "river view"}, got.Tags, "absent tags stay untouched")

	w = s.do(t, http.MethodPut, path, "someone-else", `{"name": "Hijacked"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProperty(t *testing.T) {
	s := newTestServer(t, 100)
	created := createDuplex(t, s)
	path := "/api/v1/properties/" + created.Property.ID

	w := s.do(t, http.MethodDelete, path, landlord, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, path, landlord, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodGet, path+"/units", landlord, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchAndListing(t *testing.T) {
	s := newTestServer(t, 100)
	createDuplex(t, s)
	w := s.do(t, http.MethodPost, "/api/v1/properties", "landlord-2",
		`{"name": "Studio", "propertyType": "studio", "monthlyRent": 900, "address": {"city": "Dallas"}}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/properties/search?minRent=1000", landlord, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decode[pageBody[aggregateBody]](t, w)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Riverside Duplex", page.Content[0].Property.Name)

	w = s.do(t, http.MethodGet, "/api/v1/properties/search?city=Dallas&page=1&limit=5", landlord, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page = decode[pageBody[aggregateBody]](t, w)
	assert.EqualValues(t, 1, page.TotalElements)
	assert.Equal(t, 5, page.Size)

	w = s.do(t, http.MethodGet, "/api/v1/properties/search?tags=river+view", landlord, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[pageBody[aggregateBody]](t, w).Content, 1)

	w = s.do(t, http.MethodGet, "/api/v1/properties/search?latitude=30.2", landlord, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodGet, "/api/v1/properties/search?minRent=cheap", landlord, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/properties/my-properties", "landlord-2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[pageBody[aggregateBody]](t, w)
	require.Len(t, mine.Content, 1)
	assert.Equal(t, "Studio", mine.Content[0].Property.Name)
}

func TestStatistics(t *testing.T) {
	s := newTestServer(t, 100)
	createDuplex(t, s)

	w := s.do(t, http.MethodGet, "/api/v1/properties/statistics", landlord, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[catalog.Statistics](t, w)
	assert.EqualValues(t, 1, stats.TotalProperties)
	assert.InDelta(t, 1300.0, stats.TotalMonthlyRevenue, 0.001)
	assert.InDelta(t, 50.0, stats.AverageOccupancyRate, 0.001)
}

func TestUnitRoutes(t *testing.T) {
	s := newTestServer(t, 100)
	created := createDuplex(t, s)
	base := "/api/v1/properties/" + created.Property.ID + "/units"

	w := s.do(t, http.MethodPost, base, landlord, `{"monthlyRent": 1500, "bedrooms": 2}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var unit struct {
		ID         string `json:"id"`
		UnitNumber string `json:"unitNumber"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unit))
	assert.Equal(t, "3", unit.UnitNumber)

	w = s.do(t, http.MethodGet, base, landlord, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":3`)

	w = s.do(t, http.MethodPut, base+"/"+unit.ID, landlord, `{"unitName": "Garden flat"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Garden flat")

	w = s.do(t, http.MethodGet, "/api/v1/units/search?minRent=1250&maxRent=1400", landlord, nil)
	require.Equal(t, http.StatusOK, w.Code)
	units := decode[pageBody[struct {
		UnitNumber string `json:"unitNumber"`
	}]](t, w)
	require.Len(t, units.Content, 1)
	assert.Equal(t, "2", units.Content[0].UnitNumber)

	w = s.do(t, http.MethodPost, base, landlord, `{"leaseMinMonths": 24, "leaseMaxMonths": 12}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, base+"/"+unit.ID, landlord, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodGet, base+"/"+unit.ID, landlord, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{G: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func (s *testServer) upload(t *testing.T, path string, fields map[string]string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile("file", "front.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(CallerHeader, landlord)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestImageRoutes(t *testing.T) {
	s := newTestServer(t, 100)
	created := createDuplex(t, s)
	base := "/api/v1/properties/" + created.Property.ID + "/images"

	type imageBody struct {
		ID        string `json:"id"`
		URL       string `json:"url"`
		IsPrimary bool   `json:"isPrimary"`
		ImageType string `json:"imageType"`
	}

	w := s.upload(t, base, map[string]string{"imageType": "exterior", "isPrimary": "true"}, pngBytes(t))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode[imageBody](t, w)
	assert.True(t, first.IsPrimary)
	assert.Equal(t, "exterior", first.ImageType)
	assert.True(t, strings.HasPrefix(first.URL, "http://media.test/"))

	w = s.upload(t, base, map[string]string{"title": "Kitchen"}, pngBytes(t))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	second := decode[imageBody](t, w)
	assert.Equal(t, "other", second.ImageType)

	w = s.do(t, http.MethodPut, base+"/"+second.ID+"/primary", landlord, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, base, landlord, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Images []imageBody `json:"images"`
		Count  int         `json:"count"`
	}](t, w)
	require.Equal(t, 2, list.Count)
	for _, img := range list.Images {
		assert.Equal(t, img.ID == second.ID, img.IsPrimary, img.ID)
	}

	w = s.upload(t, base, nil, []byte("definitely not an image"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, base+"/"+first.ID, landlord, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodDelete, base+"/"+first.ID, landlord, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func (s *testServer) uploadBatch(t *testing.T, path string, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, name := range []string{"a.png", "b.txt", "c.png"} {
		data, ok := files[name]
		if !ok {
			continue
		}
		part, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(CallerHeader, landlord)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestBatchImageUpload(t *testing.T) {
	s := newTestServer(t, 100)
	created := createDuplex(t, s)
	base := "/api/v1/properties/" + created.Property.ID + "/images"

	w := s.uploadBatch(t, base+"/batch", map[string][]byte{
		"a.png": pngBytes(t),
		"b.txt": []byte("not an image"),
		"c.png": pngBytes(t),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[struct {
		UploadedImages map[string]string `json:"uploadedImages"`
		Results        []struct {
			Index    int    `json:"index"`
			Filename string `json:"filename"`
			ImageID  string `json:"imageId"`
			Error    string `json:"error"`
		} `json:"results"`
		Uploaded int `json:"uploaded"`
		Failed   int `json:"failed"`
	}](t, w)
	assert.Equal(t, 2, res.Uploaded)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Results, 3)
	assert.Equal(t, "b.txt", res.Results[1].Filename)
	assert.NotEmpty(t, res.Results[1].Error)
	assert.Contains(t, res.UploadedImages, "image_0")
	assert.Contains(t, res.UploadedImages, "image_2")

	w = s.do(t, http.MethodGet, base, landlord, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
	assert.Contains(t, w.Body.String(), `"imageType":"interior"`)

	w = s.uploadBatch(t, base+"/batch", map[string][]byte{"b.txt": []byte("still not an image")})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.uploadBatch(t, base+"/batch", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOwnerRoutes(t *testing.T) {
	s := newTestServer(t, 100)
	created := createDuplex(t, s)
	createDuplex(t, s)
	path := "/api/v1/properties/owner/" + landlord

	w := s.do(t, http.MethodGet, path, landlord, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 2, decode[pageBody[aggregateBody]](t, w).TotalElements)

	w = s.do(t, http.MethodGet, path, "tenant-9", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decode[pageBody[aggregateBody]](t, w).TotalElements, "drafts stay private")

	w = s.do(t, http.MethodPut, "/api/v1/properties/"+created.Property.ID, landlord, `{"status": "published"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.do(t, http.MethodGet, path, "tenant-9", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[pageBody[aggregateBody]](t, w)
	require.EqualValues(t, 1, page.TotalElements)
	assert.Equal(t, created.Property.ID, page.Content[0].Property.ID)

	w = s.do(t, http.MethodGet, path+"/statistics", landlord, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode[catalog.Statistics](t, w).TotalProperties)

	w = s.do(t, http.MethodGet, path+"/statistics", "tenant-9", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, path+"/statistics", "ops", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMutationsAreRateLimited(t *testing.T) {
	s := newTestServer(t, 1)
	createDuplex(t, s)

	w := s.do(t, http.MethodPost, "/api/v1/properties", landlord, duplexJSON)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// reads are not limited
	w = s.do(t, http.MethodGet, "/api/v1/properties/my-properties", landlord, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 100)
	w := s.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t, 100)
	created := createDuplex(t, s)
	w := s.do(t, http.MethodDelete, "/api/v1/properties/"+created.Property.ID, landlord, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/admin/cleanup/run", "ops", `{"retention_days": 30}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[cleanup.CleanupResult](t, w)
	assert.True(t, result.DryRun)
	assert.Zero(t, result.TargetCount, "deleted today, inside retention")

	w = s.do(t, http.MethodGet, "/api/v1/admin/cleanup/stats", "ops", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pending_soft_deleted":1`)

	w = s.do(t, http.MethodGet, "/api/v1/admin/cleanup/logs?limit=5", "ops", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)

	w = s.do(t, http.MethodPost, "/api/v1/admin/search/reindex", "ops", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/admin/jobs/nope", "ops", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/admin/ratelimit/stats?caller="+landlord, "ops", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"enabled":true`)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	s := newTestServer(t, 100)
	created := createDuplex(t, s)
	w := s.do(t, http.MethodDelete, "/api/v1/properties/"+created.Property.ID, landlord, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/admin/cleanup/run", landlord, `{"dry_run": false, "retention_days": 1}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(t, http.MethodPost, "/api/v1/admin/jobs/purge", landlord, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(t, http.MethodGet, "/api/v1/admin/cleanup/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/cleanup/stats", nil)
	req.Header.Set(CallerHeader, landlord)
	req.Header.Set(AdminTokenHeader, "wrong")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/cleanup/stats", nil)
	req.Header.Set(CallerHeader, landlord)
	req.Header.Set(AdminTokenHeader, adminToken)
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pending_soft_deleted":1`)
}

func TestAdminRoutesClosedWithoutConfiguration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RequireCaller(), RequireAdmin(config.AdminConfig{}), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(CallerHeader, "anyone")
	req.Header.Set(AdminTokenHeader, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRespondErrorHidesBackendDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{fmt.Errorf("%w: property p1", catalog.ErrNotFound), http.StatusNotFound, "not found: property p1"},
		{fmt.Errorf("%w: name is required", catalog.ErrValidation), http.StatusBadRequest, "name is required"},
		{fmt.Errorf("%w: store image", catalog.ErrUpload), http.StatusBadGateway, catalog.ErrUpload.Error()},
		{fmt.Errorf("%w: insert: dial tcp 10.0.0.5:3306", catalog.ErrStorage), http.StatusInternalServerError, catalog.ErrStorage.Error()},
		{errors.New("boom"), http.StatusInternalServerError, "internal error"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background())
		respondError(c, tc.err)
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		assert.Contains(t, w.Body.String(), tc.body)
		assert.NotContains(t, w.Body.String(), "10.0.0.5")
	}
}
