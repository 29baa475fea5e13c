package routes

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/handlers"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	TagHandler          handlers.TagHandler
	IngredientHandler   handlers.IngredientHandler
	RecipeHandler       handlers.RecipeHandler
	ShoppingCartHandler handlers.ShoppingCartHandler
	SubscriptionHandler handlers.SubscriptionHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.Tags()
	c.Ingredients()
	c.Recipes()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": domain.MessageSuccessPing})
	})
}

func (c *Config) User() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	c.App.Post("/api/auth/token/login/", c.UserHandler.Login)

	user := c.App.Group("/api/users")
	// static paths go before /:id/
	{
		user.Post("/", c.UserHandler.Register)
		user.Get("/me/", auth, c.UserHandler.Me)
		user.Post("/set_password/", auth, c.UserHandler.SetPassword)
		user.Get("/subscriptions/", auth, c.SubscriptionHandler.GetSubscriptions)
		user.Get("/:id/", auth, c.UserHandler.GetUser)
		user.Post("/:id/subscribe/", auth, c.SubscriptionHandler.Subscribe)
		user.Delete("/:id/subscribe/", auth, c.SubscriptionHandler.Unsubscribe)
	}
}

func (c *Config) Tags() {
	tags := c.App.Group("/api/tags")
	tags.Get("/", c.TagHandler.GetTags)
	tags.Get("/:id/", c.TagHandler.GetTag)
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/ingredients")
	ingredients.Get("/", c.IngredientHandler.GetIngredients)
	ingredients.Get("/:id/", c.IngredientHandler.GetIngredient)
}

func (c *Config) Recipes() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optionalAuth := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	recipes := c.App.Group("/api/recipes")
	{
		recipes.Get("/download_shopping_cart/", auth, c.ShoppingCartHandler.DownloadShoppingCart)
		recipes.Post("/send_shopping_cart/", auth, c.ShoppingCartHandler.SendShoppingCart)

		recipes.Get("/", optionalAuth, c.RecipeHandler.GetRecipes)
		recipes.Post("/", auth, c.RecipeHandler.CreateRecipe)
		recipes.Get("/:id/", optionalAuth, c.RecipeHandler.GetRecipeDetail)
		recipes.Patch("/:id/", auth, c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id/", auth, c.RecipeHandler.DeleteRecipe)

		recipes.Post("/:id/favorite/", auth, c.RecipeHandler.AddFavorite)
		recipes.Delete("/:id/favorite/", auth, c.RecipeHandler.RemoveFavorite)
		recipes.Post("/:id/shopping_cart/", auth, c.ShoppingCartHandler.AddToCart)
		recipes.Delete("/:id/shopping_cart/", auth, c.ShoppingCartHandler.RemoveFromCart)
	}
}
