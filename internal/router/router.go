package router

import (
	"storefront/internal/dto"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Deps struct {
	Auth     handlers.Authenticator
	Tokens   service.TokenProvider
	Orders   service.OrderService
	Catalog  service.CatalogService
	Settings service.SettingsService
	Health   map[string]handlers.Pinger

	UploadDir string
}

func Router(d Deps, log *zap.Logger) *gin.Engine {
	// неизвестные поля в JSON: ошибка валидации
	binding.EnableDecoderDisallowUnknownFields = true
	dto.UseJSONFieldNames()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if d.UploadDir != "" {
		r.Static("/uploads", d.UploadDir)
	}

	health := handlers.NewHealthHandler(d.Health, log)
	r.GET("/health", health.Health)

	authRequired := middleware.AuthRequired(d.Tokens, log)
	admin := []gin.HandlerFunc{authRequired, middleware.AdminRequired()}

	authHandler := handlers.NewAuthHandler(d.Auth, log)
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", authRequired, authHandler.Me)
	}

	orders := handlers.NewOrderHandler(d.Orders, log)
	r.POST("/orders", orders.PlaceOrder)
	orderAdmin := r.Group("/orders", admin...)
	{
		orderAdmin.GET("", orders.ListOrders)
		orderAdmin.GET("/:id", orders.GetOrder)
		orderAdmin.PUT("/:id/status", orders.UpdateOrderStatus)
		orderAdmin.DELETE("/:id", orders.DeleteOrder)
	}

	products := handlers.NewProductHandler(d.Catalog, log)
	r.GET("/products", products.ListPublished)
	r.GET("/products/:sku", products.GetBySKU)
	r.POST("/products", append(admin, products.Create)...)
	r.PUT("/products/:id", append(admin, products.Update)...)
	r.DELETE("/products/:id", append(admin, products.Delete)...)
	adminGroup := r.Group("/admin", admin...)
	{
		adminGroup.GET("/products", products.ListAll)
		adminGroup.GET("/products/:id", products.GetByID)
	}

	colors := handlers.NewColorHandler(d.Catalog, log)
	crud(r, "/product-colors", admin, colors.List, colors.Get, colors.Create, colors.Update, colors.Delete)

	media := handlers.NewMediaHandler(d.Catalog, log)
	crud(r, "/product-images", admin, media.ListProductImages, nil, media.AddProductImage, media.UpdateProductImage, media.DeleteProductImage)
	crud(r, "/product-color-images", admin, media.ListColorImages, nil, media.AddColorImage, media.UpdateColorImage, media.DeleteColorImage)
	crud(r, "/site-images", admin, media.ListSiteImages, nil, media.AddSiteImage, nil, media.DeleteSiteImage)

	taxonomy := handlers.NewTaxonomyHandler(d.Catalog, log)
	crud(r, "/categories", admin, taxonomy.ListCategories, taxonomy.GetCategory, taxonomy.CreateCategory, taxonomy.UpdateCategory, taxonomy.DeleteCategory)
	crud(r, "/subcategories", admin, taxonomy.ListSubcategories, taxonomy.GetSubcategory, taxonomy.CreateSubcategory, taxonomy.UpdateSubcategory, taxonomy.DeleteSubcategory)
	crud(r, "/companies", admin, taxonomy.ListCompanies, taxonomy.GetCompany, taxonomy.CreateCompany, taxonomy.UpdateCompany, taxonomy.DeleteCompany)

	settings := handlers.NewSettingsHandler(d.Settings, log)
	r.GET("/settings", settings.List)
	r.GET("/settings/:key", settings.Get)
	r.PUT("/settings/:key", append(admin, settings.Put)...)
	r.DELETE("/settings/:key", append(admin, settings.Delete)...)

	return r
}

// crud регистрирует типовой набор маршрутов: чтение открыто, запись только для админа.
// nil-обработчик означает, что маршрута нет.
func crud(r *gin.Engine, base string, admin []gin.HandlerFunc, list, get, create, update, del gin.HandlerFunc) {
	if list != nil {
		r.GET(base, list)
	}
	if get != nil {
		r.GET(base+"/:id", get)
	}
	g := r.Group(base, admin...)
	if create != nil {
		g.POST("", create)
	}
	if update != nil {
		g.PUT("/:id", update)
	}
	if del != nil {
		g.DELETE("/:id", del)
	}
}
