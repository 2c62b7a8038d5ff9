package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	JWTSecret []byte
	Log       *zap.Logger
}

func NewRouter(cfg RouterConfig, carts *CartHandler, products *ProductHandler) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	api := r.Group("/api")

	productRoutes := api.Group("/products")
	{
		productRoutes.GET("", products.List)
		productRoutes.GET("/:id", products.Get)
	}

	adminProductRoutes := api.Group("/products")
	adminProductRoutes.Use(Auth(cfg.JWTSecret), Admin())
	{
		adminProductRoutes.POST("", products.Create)
		adminProductRoutes.PUT("/:id", products.Update)
		adminProductRoutes.DELETE("/:id", products.Delete)
	}

	cartRoutes := api.Group("/cart")
	cartRoutes.Use(Auth(cfg.JWTSecret))
	{
		cartRoutes.GET("", carts.View)
		cartRoutes.POST("/add", carts.AddItem)
		cartRoutes.DELETE("/remove", carts.RemoveItem)
		cartRoutes.GET("/availability/:productId", carts.Availability)
	}

	return r
}
