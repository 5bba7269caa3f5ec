package config

import (
	"context"
	"os"
	"time"

	"fridgepal/internal/api/handlers"
	"fridgepal/internal/api/routes"
	"fridgepal/internal/middleware"
	"fridgepal/internal/utils"
	"fridgepal/internal/utils/storage"
	"fridgepal/pkg/enrichment"
	"fridgepal/pkg/fridge"
	"fridgepal/pkg/goal"
	"fridgepal/pkg/item"
	"fridgepal/pkg/jwt"
	"fridgepal/pkg/recipe"
	"fridgepal/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	enricher := enrichment.NewGeminiClient()

	// Repository
	userRepository := user.NewUserRepository(db)
	fridgeRepository := fridge.NewFridgeRepository(db)
	itemRepository := item.NewItemRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	fridgeService := fridge.NewFridgeService(fridgeRepository, enricher)
	itemService := item.NewItemService(itemRepository, fridgeRepository, userRepository, enricher, s3)
	recipeService := recipe.NewRecipeService(recipeRepository, itemRepository, enricher)
	goalService := goal.NewGoalService(itemRepository, enricher)

	ownerID, err := userService.EnsureOwner(context.Background())
	if err != nil {
		log.Fatalf("error ensuring owner user: %v", err)
	}

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	fridgeHandler := handlers.NewFridgeHandler(fridgeService, validator)
	itemHandler := handlers.NewItemHandler(itemService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	goalHandler := handlers.NewGoalHandler(goalService, validator)

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		FridgeHandler: fridgeHandler,
		ItemHandler:   itemHandler,
		RecipeHandler: recipeHandler,
		GoalHandler:   goalHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
		OwnerID:       ownerID,
	}
	routesConfig.Setup()
	return app, nil
}
