package config

import (
	"Foodgram-Backend/internal/api/handlers"
	"Foodgram-Backend/internal/api/routes"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/cache"
	"Foodgram-Backend/internal/utils/mailing"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/ingredient"
	"Foodgram-Backend/pkg/jwt"
	"Foodgram-Backend/pkg/recipe"
	"Foodgram-Backend/pkg/shoppingcart"
	"Foodgram-Backend/pkg/subscription"
	"Foodgram-Backend/pkg/tag"
	"Foodgram-Backend/pkg/user"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// openAccessLog opens ./logs/app.log for the HTTP access logger.
func openAccessLog() (io.Writer, error) {
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	return file, nil
}

// limiterStorage shares limiter counters through Redis when REDIS_ADDR is
// set and falls back to fiber's in-memory storage otherwise.
func limiterStorage(ctx context.Context, log *zap.Logger) fiber.Storage {
	addr := utils.GetConfig("REDIS_ADDR")
	if addr == "" {
		return nil
	}

	store := cache.NewRedisStorage(addr, "foodgram")
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		log.Warn("redis unavailable, using in-memory limiter", zap.String("addr", addr), zap.Error(err))
		_ = store.Close()
		return nil
	}
	return store
}

func NewApp(db *gorm.DB, log *zap.Logger) (*fiber.App, error) {
	ctx := context.Background()
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: utils.GetConfig("APP_ENV") != "production",
		StrictRouting:     false,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	accessLog, err := openAccessLog()
	if err != nil {
		return nil, err
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
		Output:     accessLog,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
		Storage:    limiterStorage(ctx, log),
	}))

	// utils
	artifacts, err := storage.NewArtifactStore(ctx, utils.GetConfig("ARTIFACT_STORAGE"), utils.GetConfig("ARTIFACT_DIR"))
	if err != nil {
		return nil, err
	}
	delivery, err := shoppingcart.NewDeliveryAdapter(artifacts, utils.GetConfig("SHOPPING_CART_EXT"), log)
	if err != nil {
		return nil, err
	}
	mailer := mailing.NewMailer()

	// Repository
	userRepository := user.NewUserRepository(db)
	tagRepository := tag.NewTagRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	cartRepository := shoppingcart.NewCartRepository(db)
	subscriptionRepository := subscription.NewSubscriptionRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	subscriptionService := subscription.NewSubscriptionService(subscriptionRepository)
	userService := user.NewUserService(userRepository, jwtService, subscriptionService, log)
	tagService := tag.NewTagService(tagRepository)
	ingredientService := ingredient.NewIngredientService(ingredientRepository, log)
	shoppingCartService := shoppingcart.NewShoppingCartService(cartRepository, userRepository, delivery, mailer, log)
	recipeService := recipe.NewRecipeService(recipeRepository, shoppingCartService, subscriptionService, log)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	tagHandler := handlers.NewTagHandler(tagService)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	shoppingCartHandler := handlers.NewShoppingCartHandler(shoppingCartService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		TagHandler:          tagHandler,
		IngredientHandler:   ingredientHandler,
		RecipeHandler:       recipeHandler,
		ShoppingCartHandler: shoppingCartHandler,
		SubscriptionHandler: subscriptionHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
