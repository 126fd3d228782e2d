package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"befit/internal/addresses"
	"befit/internal/auth"
	"befit/internal/cache"
	"befit/internal/campaigns"
	"befit/internal/catalog"
	"befit/internal/checkout"
	"befit/internal/config"
	"befit/internal/coupons"
	"befit/internal/db"
	"befit/internal/favorites"
	"befit/internal/mail"
	"befit/internal/orders"
	"befit/internal/payments"
	"befit/internal/products"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
	cfg := config.Load()

	pool, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	// Redis is optional; without it the catalog listing just skips caching.
	var listingCache *cache.Cache
	if rdb, err := db.NewRedis(cfg.RedisAddr); err != nil {
		log.Printf("redis unavailable, caching disabled: %v", err)
	} else {
		listingCache = cache.New(rdb, 5*time.Minute)
	}

	mailer := mail.NewSMTPMailer(mail.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	})

	jwtMgr := auth.NewJWTManager(auth.JWTConfig{
		Issuer:   cfg.JWTIssuer,
		Secret:   cfg.JWTSecret,
		TTLHours: cfg.AccessTokenTTLHours,
	})

	shippingFlat, err := decimal.NewFromString(cfg.ShippingFlatRate)
	if err != nil {
		log.Fatalf("invalid SHIPPING_FLAT_RATE: %v", err)
	}
	freeThreshold, err := decimal.NewFromString(cfg.FreeShippingThreshold)
	if err != nil {
		log.Fatalf("invalid FREE_SHIPPING_THRESHOLD: %v", err)
	}

	userRepo := auth.NewUserRepo(pool)
	catalogRepo := catalog.NewRepo(pool)
	productRepo := products.NewRepo(pool)
	couponRepo := coupons.NewRepo(pool)
	addressRepo := addresses.NewRepo(pool)
	paymentRepo := payments.NewRepo(pool)
	orderRepo := orders.NewRepo(pool)
	favoriteRepo := favorites.NewRepo(pool)
	campaignRepo := campaigns.NewRepo(pool)

	gateway := payments.NewGateway(payments.GatewayConfig{
		MultibancoEntity: cfg.MultibancoEntity,
		CardRedirectBase: cfg.CardRedirectBase,
	})

	checkoutSvc := checkout.NewService(checkout.Config{
		ShippingFlatRate:      shippingFlat,
		FreeShippingThreshold: freeThreshold,
	}, addressRepo, paymentRepo, productRepo, couponRepo, orderRepo, mailer)

	authHandler := auth.NewHandler(jwtMgr, userRepo)
	catalogHandler := catalog.NewHandler(catalogRepo)
	productHandler := products.NewHandler(productRepo, listingCache)
	imageHandler := products.NewImageHandler(productRepo, cfg.UploadDir)
	couponHandler := coupons.NewHandler(couponRepo)
	addressHandler := addresses.NewHandler(addressRepo)
	paymentHandler := payments.NewHandler(gateway, paymentRepo)
	checkoutHandler := checkout.NewHandler(checkoutSvc)
	orderHandler := orders.NewHandler(orderRepo)
	favoriteHandler := favorites.NewHandler(favoriteRepo)
	campaignHandler := campaigns.NewHandler(campaignRepo)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/uploads", cfg.UploadDir)

	api := r.Group("/api")

	// Public storefront.
	api.POST("/users/register", authHandler.Register)
	api.POST("/users/login", authHandler.Login)
	api.GET("/products/listar", productHandler.List)
	api.GET("/products/listar/:id", productHandler.Get)
	api.GET("/categories/listar", catalogHandler.ListCategories)
	api.GET("/brands/listar", catalogHandler.ListBrands)
	api.GET("/flavors/listar", catalogHandler.ListFlavors)
	api.GET("/campaigns/listar", campaignHandler.ListActive)

	// Signed-in shoppers.
	authed := api.Group("", auth.AuthMiddleware(jwtMgr))
	authed.GET("/users/me", authHandler.Me)
	authed.GET("/favorites/listar", favoriteHandler.List)
	authed.POST("/favorites/:productID", favoriteHandler.Add)
	authed.DELETE("/favorites/:productID", favoriteHandler.Remove)
	authed.POST("/cupoes/apply", couponHandler.Apply)
	authed.POST("/addresses/morada", addressHandler.Create)
	authed.POST("/referencia/:metodo/create", paymentHandler.Create)
	authed.POST("/orders/checkout", checkoutHandler.Checkout)
	authed.GET("/orders/listar/proprias", orderHandler.ListOwn)

	// Back office.
	admin := api.Group("", auth.AuthMiddleware(jwtMgr), auth.RequireAdmin())
	admin.POST("/products/admin/create", productHandler.AdminCreate)
	admin.PUT("/products/admin/:id", productHandler.AdminUpdate)
	admin.DELETE("/products/admin/:id", productHandler.AdminDelete)
	admin.POST("/products/admin/:id/variants", productHandler.AdminAddVariant)
	admin.PUT("/products/admin/variants/:id", productHandler.AdminUpdateVariant)
	admin.DELETE("/products/admin/variants/:id", productHandler.AdminDeleteVariant)
	admin.POST("/products/admin/:id/image", imageHandler.AdminUpload)

	admin.GET("/cupoes/listar", couponHandler.AdminList)
	admin.POST("/cupoes/create", couponHandler.AdminCreate)
	admin.PUT("/cupoes/:id", couponHandler.AdminUpdate)
	admin.DELETE("/cupoes/:id", couponHandler.AdminDelete)

	admin.GET("/users/admin/listar", authHandler.AdminList)
	admin.PUT("/users/admin/:id", authHandler.AdminUpdate)
	admin.DELETE("/users/admin/:id", authHandler.AdminDelete)

	admin.GET("/orders/admin/encomendas", orderHandler.AdminList)
	admin.GET("/orders/admin/encomendas/:id", orderHandler.AdminGet)
	admin.PUT("/orders/admin/encomendas/:id/status", orderHandler.AdminUpdateStatus)
	admin.GET("/orders/admin/dashboard", orderHandler.AdminDashboard)

	admin.GET("/categories/admin/listar", catalogHandler.AdminListCategories)
	admin.POST("/categories/admin/create", catalogHandler.AdminCreateCategory)
	admin.PUT("/categories/admin/:id", catalogHandler.AdminUpdateCategory)
	admin.POST("/brands/admin/create", catalogHandler.AdminCreateBrand)
	admin.DELETE("/brands/admin/:id", catalogHandler.AdminDeleteBrand)
	admin.POST("/flavors/admin/create", catalogHandler.AdminCreateFlavor)
	admin.DELETE("/flavors/admin/:id", catalogHandler.AdminDeleteFlavor)

	admin.GET("/campaigns/admin/listar", campaignHandler.AdminList)
	admin.POST("/campaigns/admin/create", campaignHandler.AdminCreate)
	admin.PUT("/campaigns/admin/:id", campaignHandler.AdminUpdate)
	admin.DELETE("/campaigns/admin/:id", campaignHandler.AdminDelete)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
