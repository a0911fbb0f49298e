// @title ThreadHub API
// @version 1.0
// @description Community discussion API: communities, posts, threaded comments, votes, and live notifications.
// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	_ "threadhub/docs"

	"threadhub/bootstrap"
	"threadhub/config"
	"threadhub/database"
	"threadhub/internal/controllers"
	"threadhub/internal/middleware"
	"threadhub/internal/realtime"
	"threadhub/internal/repository"
	"threadhub/internal/routes"
	"threadhub/internal/services"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		panic("JWT_SECRET is required")
	}

	client := database.ConnectMongo(cfg.MongoURI, cfg.MongoDB)
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB)
	if err := bootstrap.EnsureIndexes(db); err != nil {
		log.Fatalf("ensure indexes failed: %v", err)
	}

	// Feed cache is optional; without REDIS_ADDR every lookup goes to Mongo.
	var cache *repository.FeedCache
	if cfg.RedisAddr != "" {
		var err error
		cache, err = repository.NewFeedCache(context.Background(), cfg.RedisAddr)
		if err != nil {
			log.Fatalf("redis connect failed: %v", err)
		}
		defer cache.Close()
	}

	hub := realtime.NewHub()

	users := &repository.UserRepository{Col: db.Collection("users")}
	communities := &repository.CommunityRepository{Col: db.Collection("communities")}
	posts := &repository.PostRepository{Col: db.Collection("posts")}
	comments := &repository.CommentRepository{
		Client:      client,
		ColComments: db.Collection("comments"),
		ColPosts:    db.Collection("posts"),
	}
	notifications := &repository.NotificationRepository{Col: db.Collection("notifications")}

	notifier := &services.Notifier{Store: notifications, Push: hub}

	authH := &controllers.AuthHandler{Users: users, Secret: cfg.JWTSecret}
	communityH := &controllers.CommunityHandler{Repo: communities}
	postH := &controllers.PostHandler{
		Posts:       posts,
		Communities: communities,
		Users:       users,
		Notifier:    notifier,
		Cache:       cache,
	}
	commentH := &controllers.CommentHandler{
		Comments: comments,
		Posts:    posts,
		Users:    users,
		Notifier: notifier,
	}
	notificationH := &controllers.NotificationHandler{Repo: notifications, Notifier: notifier}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger API document
	app.Get("/docs/*", swagger.HandlerDefault)

	// Health
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	routes.AuthRoutes(app, authH)

	app.Use(middleware.JWTUidOnly(cfg.JWTSecret))

	routes.CommunityRoutes(app, communityH, postH)
	routes.PostRoutes(app, postH, commentH)
	routes.CommentRoutes(app, commentH)
	routes.NotificationRoutes(app, notificationH)
	routes.WSRoutes(app, hub)

	log.Fatal(app.Listen(":" + cfg.Port))
}
