package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/picshare/picshare/pkg/internal/feed"
	"github.com/picshare/picshare/pkg/internal/services"
	"github.com/picshare/picshare/pkg/internal/storage"
)

// Deps carries every component the handlers touch; there is no ambient
// state, everything is injected from main.
type Deps struct {
	Auth          *services.Auth
	Directory     *services.Directory
	Graph         *services.GraphStore
	Fanout        *services.Fanout
	Feed          *feed.Cache
	Notifications *services.NotificationStore
	Uploader      storage.Uploader
}

func (v *Deps) MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		users := api.Group("/users").Name("Users API")
		{
			users.Post("/signup", v.doSignup)
			users.Post("/login", v.doLogin)
			users.Delete("/logout", v.authenticated, v.doLogout)
			users.Get("/me", v.authenticated, v.getMe)

			users.Patch("/:id/follow", v.authenticated, v.doFollow)
			users.Patch("/:id/unfollow", v.authenticated, v.doUnfollow)

			users.Post("/posts", v.authenticated, v.createPost)
			users.Get("/feeds", v.authenticated, v.listFeed)
			users.Get("/notifications", v.authenticated, v.listNotifications)
		}
	}
}
