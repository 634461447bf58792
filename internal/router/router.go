package router

import (
	"github.com/Gouveia04K/GA-Financas/internal/config"
	"github.com/Gouveia04K/GA-Financas/internal/handler"
	"github.com/Gouveia04K/GA-Financas/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the /api routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api")

	// login/register and token issuance do not require auth
	authHandler := handler.NewAuthHandler(db, cfg)
	api.POST("/login/", authHandler.Login)
	api.POST("/register/", authHandler.Register)
	api.POST("/token/", authHandler.TokenObtain)
	api.POST("/token/refresh/", authHandler.TokenRefresh)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret, db))

	userHandler := handler.NewUserHandler(db)
	protected.GET("/users/me/", userHandler.GetMe)
	protected.PUT("/users/me/", userHandler.UpdateMe)
	protected.PATCH("/users/me/", userHandler.UpdateMe)

	categoriaHandler := handler.NewCategoriaHandler(db)
	protected.GET("/categorias/", categoriaHandler.List)
	protected.POST("/categorias/", categoriaHandler.Create)
	protected.GET("/categorias/:id/", categoriaHandler.Retrieve)
	protected.PUT("/categorias/:id/", categoriaHandler.Update)
	protected.PATCH("/categorias/:id/", categoriaHandler.Update)
	protected.DELETE("/categorias/:id/", categoriaHandler.Delete)

	transacaoHandler := handler.NewTransacaoHandler(db)
	protected.GET("/transacoes/", transacaoHandler.List)
	protected.POST("/transacoes/", transacaoHandler.Create)
	protected.GET("/transacoes/estatisticas/", transacaoHandler.Estatisticas)
	protected.GET("/transacoes/:id/", transacaoHandler.Retrieve)
	protected.PUT("/transacoes/:id/", transacaoHandler.Update)
	protected.PATCH("/transacoes/:id/", transacaoHandler.Update)
	protected.DELETE("/transacoes/:id/", transacaoHandler.Delete)

	metaHandler := handler.NewMetaHandler(db)
	protected.GET("/metas/", metaHandler.List)
	protected.POST("/metas/", metaHandler.Create)
	protected.GET("/metas/:id/", metaHandler.Retrieve)
	protected.PUT("/metas/:id/", metaHandler.Update)
	protected.PATCH("/metas/:id/", metaHandler.Update)
	protected.DELETE("/metas/:id/", metaHandler.Delete)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
