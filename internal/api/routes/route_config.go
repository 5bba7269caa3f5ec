package routes

import (
	"fridgepal/internal/api/handlers"
	"fridgepal/internal/middleware"
	"fridgepal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	FridgeHandler handlers.FridgeHandler
	ItemHandler   handlers.ItemHandler
	RecipeHandler handlers.RecipeHandler
	GoalHandler   handlers.GoalHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
	OwnerID       string
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Probes()
	c.User()
	c.Fridges()
	c.Items()
	c.Recipes()
	c.Goals()
}

func (c *Config) Probes() {
	c.App.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "fridgepal api"})
	})
	c.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func (c *Config) User() {
	user := c.App.Group("/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
	}
}

func (c *Config) Fridges() {
	fridges := c.App.Group("/fridges", c.Middleware.OwnerMiddleware(c.OwnerID))
	{
		fridges.Post("", c.FridgeHandler.CreateFridge)
		fridges.Get("", c.FridgeHandler.GetFridges)
		fridges.Get("/:id", c.FridgeHandler.GetFridge)
		fridges.Delete("/:id", c.FridgeHandler.DeleteFridge)

		fridges.Post("/:id/items", c.ItemHandler.AddItem)
		fridges.Get("/:id/items", c.ItemHandler.GetItems)
		fridges.Get("/:id/analysis", c.FridgeHandler.AnalyzeFridge)
	}
}

func (c *Config) Items() {
	items := c.App.Group("/items", c.Middleware.OwnerMiddleware(c.OwnerID))
	{
		// Registered before /:id so "expiring" is not captured as an item id.
		items.Get("/expiring", c.ItemHandler.GetExpiringItems)
		items.Post("/expiring/notify", c.ItemHandler.NotifyExpiringItems)

		items.Put("/:id", c.ItemHandler.UpdateItem)
		items.Delete("/:id", c.ItemHandler.DeleteItem)
		items.Post("/:id/image", c.ItemHandler.UploadItemImage)
	}

	c.App.Post("/scan-nutrition", c.Middleware.OwnerMiddleware(c.OwnerID), c.ItemHandler.ScanNutritionLabel)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/recipes", c.Middleware.OwnerMiddleware(c.OwnerID))
	{
		recipes.Post("/generate", c.RecipeHandler.GenerateRecipes)
		recipes.Post("/save", c.RecipeHandler.SaveRecipe)
		recipes.Get("", c.RecipeHandler.GetRecipes)
		recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)
	}
}

func (c *Config) Goals() {
	goals := c.App.Group("/goals", c.Middleware.OwnerMiddleware(c.OwnerID))
	{
		goals.Post("/advice", c.GoalHandler.GetAdvice)
	}
}
