package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/ecopontos/ecopontos-api/docs"
	v1 "github.com/ecopontos/ecopontos-api/internal/api/handler/v1"
	"github.com/ecopontos/ecopontos-api/internal/api/middleware"
	"github.com/ecopontos/ecopontos-api/internal/config"
	"github.com/ecopontos/ecopontos-api/internal/repository"
	"github.com/ecopontos/ecopontos-api/internal/repository/dao"
	"github.com/ecopontos/ecopontos-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	categoryHandler := s.initCategoryHandler(db)
	pointHandler := s.initPointHandler(db)
	s.MountHandlers(categoryHandler, pointHandler)

	return s
}

func (s *Server) initCategoryHandler(db *gorm.DB) *v1.CategoryHandler {
	categoryDAO := dao.NewCategoryDAO(db)
	repo := repository.NewCategoryRepository(categoryDAO)
	svc := service.NewCategoryService(repo, s.Config.API.UploadsBaseURL)
	handler := v1.NewCategoryHandler(svc)

	return handler
}

func (s *Server) initPointHandler(db *gorm.DB) *v1.PointHandler {
	pointDAO := dao.NewPointDAO(db, s.Config.API.SearchMatchesAllWithoutCategories)
	repo := repository.NewPointRepository(pointDAO)
	svc := service.NewPointService(repo, s.Config.API.UploadsBaseURL)
	handler := v1.NewPointHandler(s.Config.API, svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(categoryHandler *v1.CategoryHandler, pointHandler *v1.PointHandler) {
	const basePath = "/api/v1"

	points := s.Router.Group(basePath)
	{
		points.GET("/categories", categoryHandler.HandleListCategories)
		points.GET("/points", pointHandler.HandleSearchPoints)
		points.GET("/points/:pointID", pointHandler.HandleGetPoint)
		points.POST("/points", pointHandler.HandleRegisterPoint)
	}

	s.Router.Static("/uploads", s.Config.API.UploadsDir)

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Ecopontos API"
	docs.SwaggerInfo.Description = "Directory service for recycling collection points."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
