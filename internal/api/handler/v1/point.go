package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ecopontos/ecopontos-api/internal/api/handler/v1/request"
	"github.com/ecopontos/ecopontos-api/internal/api/handler/v1/response"
	"github.com/ecopontos/ecopontos-api/internal/config"
	"github.com/ecopontos/ecopontos-api/internal/domain"
	"github.com/ecopontos/ecopontos-api/internal/service"
)

type PointService interface {
	Register(ctx context.Context, point domain.Point, rawCategoryIDs string) (domain.Point, error)
	Search(ctx context.Context, city, uf, rawCategoryIDs string) ([]domain.Point, error)
	GetDetail(ctx context.Context, id uint) (domain.PointDetail, error)
}

type PointHandler struct {
	conf *config.APIConfig
	svc  PointService
}

func NewPointHandler(conf *config.APIConfig, svc PointService) *PointHandler {
	return &PointHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleSearchPoints godoc
// @Summary      Search collection points
// @Description  Filters points by exact city/uf and a comma-separated category-id list
// @Tags         points
// @Produce      json
// @Param        city        query     string  false  "city name"
// @Param        uf          query     string  false  "2-letter state code"
// @Param        categories  query     string  false  "comma-separated category ids"
// @Success      200  {array}   domain.Point
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /points [get]
func (h *PointHandler) HandleSearchPoints(ctx *gin.Context) {
	city := ctx.Query("city")
	uf := ctx.Query("uf")
	categories := ctx.Query("categories")

	points, err := h.svc.Search(ctx.Request.Context(), city, uf, categories)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCategoryIDs) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidCategoryIDs))
			return
		}

		err = fmt.Errorf("HandleSearchPoints -> h.svc.Search -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, points)
}

// HandleGetPoint godoc
// @Summary      Get one collection point
// @Description  Retrieves a point and the titles of the categories it accepts
// @Tags         points
// @Produce      json
// @Param        pointID  path      int  true  "point ID"
// @Success      200  {object}  domain.PointDetail
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /points/{pointID} [get]
func (h *PointHandler) HandleGetPoint(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("pointID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid point ID %q", ctx.Param("pointID"))))
		return
	}

	detail, err := h.svc.GetDetail(ctx.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrPointNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("Point"))
			return
		}

		err = fmt.Errorf("HandleGetPoint -> h.svc.GetDetail -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// HandleRegisterPoint godoc
// @Summary      Register a collection point
// @Description  Stores the uploaded image and creates the point with its accepted categories atomically
// @Tags         points
// @Accept       multipart/form-data
// @Produce      json
// @Param        name        formData  string  true   "entity name"
// @Param        email       formData  string  true   "contact email"
// @Param        whatsapp    formData  string  true   "contact whatsapp"
// @Param        latitude    formData  number  true   "latitude"
// @Param        longitude   formData  number  true   "longitude"
// @Param        city        formData  string  true   "city name"
// @Param        uf          formData  string  true   "2-letter state code"
// @Param        categories  formData  string  true   "comma-separated category ids"
// @Param        image       formData  file    true   "point photo"
// @Success      201  {object}  domain.Point
// @Failure      400  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /points [post]
func (h *PointHandler) HandleRegisterPoint(ctx *gin.Context) {
	var req request.RegisterPointRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("image file is required")))
		return
	}

	// Store the upload before touching the database. A stored file without a
	// point row is harmless; the reverse would be a dangling reference.
	filename := uuid.NewString() + filepath.Ext(file.Filename)
	if err = ctx.SaveUploadedFile(file, filepath.Join(h.conf.UploadsDir, filename)); err != nil {
		err = fmt.Errorf("HandleRegisterPoint -> ctx.SaveUploadedFile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	point := domain.Point{
		Name:      req.Name,
		Email:     req.Email,
		Whatsapp:  req.Whatsapp,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		City:      req.City,
		UF:        req.UF,
		Image:     filename,
	}

	created, err := h.svc.Register(ctx.Request.Context(), point, req.Categories)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCategoryIDs):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidCategoryIDs))
		case errors.Is(err, service.ErrCategoryNotFound):
			response.RenderErr(ctx, response.ErrUnprocessableEntity(service.ErrCategoryNotFound))
		case errors.Is(err, service.ErrConstraintViolation):
			response.RenderErr(ctx, response.ErrUnprocessableEntity(service.ErrConstraintViolation))
		default:
			err = fmt.Errorf("HandleRegisterPoint -> h.svc.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}
