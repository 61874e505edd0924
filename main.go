package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/mailer"
	"storefront/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}
	if err := database.EnsureRefreshTokenIndexes(db); err != nil {
		log.Printf("⚠️ refresh token index warning: %v", err)
	}

	if err := cache.Init(config.AppEnv.RedisAddr, config.AppEnv.RedisPassword); err != nil {
		log.Printf("⚠️ redis warning, continuing without cache: %v", err)
	}
	defer cache.Close()

	mail := mailer.New(
		config.AppEnv.SMTPHost,
		config.AppEnv.SMTPPort,
		config.AppEnv.SMTPUsername,
		config.AppEnv.SMTPPassword,
		config.AppEnv.MailFrom,
	)

	r := gin.Default()

	r.POST("/auth/register", handlers.Register(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL, config.AppEnv.RefreshTokenTTL))
	r.POST("/auth/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL, config.AppEnv.RefreshTokenTTL))
	r.POST("/auth/refresh", handlers.Refresh(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL, config.AppEnv.RefreshTokenTTL))
	r.POST("/auth/logout", handlers.Logout(db))
	r.POST("/auth/reset-password", handlers.RequestPasswordReset(db, mail, config.AppEnv.ResetURLBase, config.AppEnv.ResetTokenTTL))
	r.POST("/auth/reset-password/confirm", handlers.ConfirmPasswordReset(db))

	r.GET("/products", handlers.GetProducts(db))

	user := r.Group("/user")
	user.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		user.GET("/cart", handlers.GetCart(db))
		user.POST("/cart/items", handlers.AddToCart(db))
		user.PATCH("/cart/items/:productId", handlers.ChangeCartCount(db))
		user.DELETE("/cart/items/:productId", handlers.RemoveFromCart(db))

		user.POST("/checkout", handlers.Checkout(db))

		user.GET("/orders", handlers.GetMyOrders(db))
		user.PATCH("/orders/:id/cancel", handlers.CancelOrder(db))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))

		admin.GET("/users", handlers.GetUsers(db))
		admin.PATCH("/users/:id/block", handlers.ToggleBlock(db))
		admin.GET("/users/:id/orders", handlers.GetUserOrders(db))
		admin.PATCH("/users/:id/orders/:orderId/status", handlers.SetOrderStatus(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
