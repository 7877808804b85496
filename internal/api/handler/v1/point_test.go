package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopontos/ecopontos-api/internal/config"
	"github.com/ecopontos/ecopontos-api/internal/domain"
	"github.com/ecopontos/ecopontos-api/internal/service"
)

type fakePointService struct {
	registerFn  func(ctx context.Context, point domain.Point, rawCategoryIDs string) (domain.Point, error)
	searchFn    func(ctx context.Context, city, uf, rawCategoryIDs string) ([]domain.Point, error)
	getDetailFn func(ctx context.Context, id uint) (domain.PointDetail, error)
}

func (f *fakePointService) Register(ctx context.Context, point domain.Point, rawCategoryIDs string) (domain.Point, error) {
	return f.registerFn(ctx, point, rawCategoryIDs)
}

func (f *fakePointService) Search(ctx context.Context, city, uf, rawCategoryIDs string) ([]domain.Point, error) {
	return f.searchFn(ctx, city, uf, rawCategoryIDs)
}

func (f *fakePointService) GetDetail(ctx context.Context, id uint) (domain.PointDetail, error) {
	return f.getDetailFn(ctx, id)
}

func newPointTestRouter(t *testing.T, svc PointService) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewPointHandler(&config.APIConfig{UploadsDir: t.TempDir()}, svc)
	router.GET("/points", handler.HandleSearchPoints)
	router.GET("/points/:pointID", handler.HandleGetPoint)
	router.POST("/points", handler.HandleRegisterPoint)

	return router
}

func TestHandleSearchPoints(t *testing.T) {
	t.Run("returns matching points", func(t *testing.T) {
		svc := &fakePointService{
			searchFn: func(ctx context.Context, city, uf, rawCategoryIDs string) ([]domain.Point, error) {
				assert.Equal(t, "Springfield", city)
				assert.Equal(t, "SP", uf)
				assert.Equal(t, "1,2", rawCategoryIDs)
				return []domain.Point{{ID: 1, City: city, UF: uf}}, nil
			},
		}
		router := newPointTestRouter(t, svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/points?city=Springfield&uf=SP&categories=1,2", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var points []domain.Point
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &points))
		require.Len(t, points, 1)
		assert.Equal(t, uint(1), points[0].ID)
	})

	t.Run("no matches renders an empty array", func(t *testing.T) {
		svc := &fakePointService{
			searchFn: func(ctx context.Context, city, uf, rawCategoryIDs string) ([]domain.Point, error) {
				return []domain.Point{}, nil
			},
		}
		router := newPointTestRouter(t, svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/points?city=Nowhere&uf=XX&categories=1", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("unparseable category list is a 400", func(t *testing.T) {
		svc := &fakePointService{
			searchFn: func(ctx context.Context, city, uf, rawCategoryIDs string) ([]domain.Point, error) {
				return nil, service.ErrInvalidCategoryIDs
			},
		}
		router := newPointTestRouter(t, svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/points?city=Springfield&uf=SP&categories=abc", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store failure is a 500", func(t *testing.T) {
		svc := &fakePointService{
			searchFn: func(ctx context.Context, city, uf, rawCategoryIDs string) ([]domain.Point, error) {
				return nil, errors.New("connection refused")
			},
		}
		router := newPointTestRouter(t, svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/points?city=Springfield&uf=SP", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandleGetPoint(t *testing.T) {
	t.Run("returns point with categories", func(t *testing.T) {
		svc := &fakePointService{
			getDetailFn: func(ctx context.Context, id uint) (domain.PointDetail, error) {
				return domain.PointDetail{
					Point:      domain.Point{ID: id, Name: "Mercado Central"},
					Categories: []string{"Lâmpadas", "Papéis e Papelão"},
				}, nil
			},
		}
		router := newPointTestRouter(t, svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/points/7", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var detail domain.PointDetail
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
		assert.Equal(t, uint(7), detail.Point.ID)
		assert.Equal(t, []string{"Lâmpadas", "Papéis e Papelão"}, detail.Categories)
	})

	t.Run("unknown id renders the not-found message", func(t *testing.T) {
		svc := &fakePointService{
			getDetailFn: func(ctx context.Context, id uint) (domain.PointDetail, error) {
				return domain.PointDetail{}, service.ErrPointNotFound
			},
		}
		router := newPointTestRouter(t, svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/points/999", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"Point not found"}`, w.Body.String())
	})

	t.Run("non-numeric id is a 400", func(t *testing.T) {
		router := newPointTestRouter(t, &fakePointService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/points/abc", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func buildRegisterForm(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if withImage {
		part, err := writer.CreateFormFile("image", "photo.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func validRegisterFields() map[string]string {
	return map[string]string{
		"name":       "Mercado Central",
		"email":      "contato@mercado.com",
		"whatsapp":   "5511999999999",
		"latitude":   "-23.55052",
		"longitude":  "-46.633308",
		"city":       "Springfield",
		"uf":         "SP",
		"categories": "1,3",
	}
}

func TestHandleRegisterPoint(t *testing.T) {
	t.Run("creates the point", func(t *testing.T) {
		svc := &fakePointService{
			registerFn: func(ctx context.Context, point domain.Point, rawCategoryIDs string) (domain.Point, error) {
				assert.Equal(t, "Mercado Central", point.Name)
				assert.Equal(t, "Springfield", point.City)
				assert.Equal(t, "SP", point.UF)
				assert.Equal(t, "1,3", rawCategoryIDs)
				assert.True(t, strings.HasSuffix(point.Image, ".jpg"))

				point.ID = 42
				return point, nil
			},
		}
		router := newPointTestRouter(t, svc)

		body, contentType := buildRegisterForm(t, validRegisterFields(), true)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/points", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var created domain.Point
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, uint(42), created.ID)
	})

	t.Run("missing required field is a 400 with no write", func(t *testing.T) {
		registerCalled := false
		svc := &fakePointService{
			registerFn: func(ctx context.Context, point domain.Point, rawCategoryIDs string) (domain.Point, error) {
				registerCalled = true
				return point, nil
			},
		}
		router := newPointTestRouter(t, svc)

		fields := validRegisterFields()
		delete(fields, "email")
		body, contentType := buildRegisterForm(t, fields, true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/points", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, registerCalled)
	})

	t.Run("missing coordinates are a 400 with no write", func(t *testing.T) {
		registerCalled := false
		svc := &fakePointService{
			registerFn: func(ctx context.Context, point domain.Point, rawCategoryIDs string) (domain.Point, error) {
				registerCalled = true
				return point, nil
			},
		}
		router := newPointTestRouter(t, svc)

		fields := validRegisterFields()
		delete(fields, "latitude")
		delete(fields, "longitude")
		body, contentType := buildRegisterForm(t, fields, true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/points", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, registerCalled, "a point must never be persisted without coordinates")
	})

	t.Run("missing image file is a 400", func(t *testing.T) {
		router := newPointTestRouter(t, &fakePointService{})

		body, contentType := buildRegisterForm(t, validRegisterFields(), false)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/points", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown category id is a 422", func(t *testing.T) {
		svc := &fakePointService{
			registerFn: func(ctx context.Context, point domain.Point, rawCategoryIDs string) (domain.Point, error) {
				return domain.Point{}, service.ErrCategoryNotFound
			},
		}
		router := newPointTestRouter(t, svc)

		fields := validRegisterFields()
		fields["categories"] = "999"
		body, contentType := buildRegisterForm(t, fields, true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/points", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestHandleSearchPoints_QueryEncoding(t *testing.T) {
	svc := &fakePointService{
		searchFn: func(ctx context.Context, city, uf, rawCategoryIDs string) ([]domain.Point, error) {
			assert.Equal(t, "São Paulo", city)
			return []domain.Point{}, nil
		},
	}
	router := newPointTestRouter(t, svc)

	query := url.Values{}
	query.Set("city", "São Paulo")
	query.Set("uf", "SP")
	query.Set("categories", "1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/points?"+query.Encode(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
