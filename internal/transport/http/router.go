package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"moments/backend/internal/handler"
	"moments/backend/internal/transport/http/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Post       *handler.PostHandler
	Publish    *handler.PublishHandler
	Friendship *handler.FriendshipHandler
	Follow     *handler.FollowHandler
	Search     *handler.SearchHandler
	Media      *handler.MediaHandler
	Admin      *handler.AdminHandler
}

// NewRouter wires all routes. Legacy clients send trailing slashes, hence
// StripSlashes.
func NewRouter(h Handlers, auth *middleware.Authenticator, mediaRoot string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.StripSlashes)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.With(auth.RequireAuth).Post("/logout", h.Auth.Logout)
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Get("/", h.User.GetMe)
			r.Patch("/", h.User.UpdateMe)
			r.Post("/avatar", h.User.UploadAvatar)
			r.Post("/password", h.User.ChangePassword)
		})

		// Read surfaces work anonymously; a presented token still narrows
		// or widens what the viewer sees.
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuth)
			r.Get("/search", h.Search.Search)
			r.Get("/tags/hot", h.Search.HotTags)
			r.Get("/search/suggestions", h.Search.Suggestions)
			r.Get("/posts", h.Post.Feed)
			r.Get("/posts/{id}/comments", h.Post.ListComments)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)

			r.Get("/search/history", h.Search.History)
			r.Post("/search/history", h.Search.SaveHistory)
			r.Delete("/search/history/clear", h.Search.ClearHistory)

			r.Post("/friends/request", h.Friendship.SendRequest)
			r.Post("/friends/{id}/respond", h.Friendship.Respond)
			r.Get("/friends/requests", h.Friendship.PendingRequests)
			r.Get("/friends", h.Friendship.Friends)

			r.Post("/follow/{id}", h.Follow.Follow)
			r.Post("/unfollow/{id}", h.Follow.Unfollow)
			r.Get("/following", h.Follow.Following)
			r.Get("/followers", h.Follow.Followers)

			r.Post("/posts/{id}/like", h.Post.Like)
			r.Post("/posts/{id}/comments", h.Post.CreateComment)
			r.Delete("/posts/{id}/delete", h.Post.Delete)

			r.Route("/publish", func(r chi.Router) {
				r.Post("/posts", h.Publish.CreatePost)
				r.Get("/posts", h.Publish.ListOwnPosts)
				r.Post("/upload/image", h.Publish.UploadImage)
				r.Post("/upload/video", h.Publish.UploadVideo)
				r.Get("/tags/common", h.Publish.CommonTags)
				r.Post("/tags", h.Publish.CreateTag)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireStaff)
				r.Get("/users", h.Admin.ListUsers)
				r.Put("/users/{id}/toggle", h.Admin.ToggleUser)
				r.Get("/posts", h.Admin.ListPosts)
				r.Delete("/posts/{id}", h.Admin.DeletePost)
			})
		})
	})

	// Videos get manual Range handling; everything else under /media is a
	// plain file.
	r.Get("/media/uploads/videos/{filename}", h.Media.ServeVideo)
	fileServer := http.StripPrefix("/media/", http.FileServer(http.Dir(mediaRoot)))
	r.Get("/media/*", fileServer.ServeHTTP)

	return r
}
