package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/triplog/triplog-backend/internal/config"
	"github.com/triplog/triplog-backend/internal/handlers"
	"github.com/triplog/triplog-backend/internal/middleware"
	"github.com/triplog/triplog-backend/internal/services"
)

// SetupRoutes wires the full route table: public auth/media routes,
// token-protected journal routes, and the static file surfaces.
func SetupRoutes(
	r *chi.Mux,
	cfg *config.Config,
	tokens *services.TokenService,
	auth *handlers.AuthHandler,
	journals *handlers.JournalHandler,
	media *handlers.MediaHandler,
) {
	// Public routes
	r.Post("/create-account", auth.Register)
	r.Post("/login", auth.Login)
	r.Post("/image-upload", media.Upload)
	r.Delete("/delete-image", media.Delete)

	// Token-protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens))

		r.Get("/get-user", auth.GetUser)
		r.Post("/add-travel-journal", journals.Create)
		r.Get("/get-all-journals", journals.All)
		r.Put("/edit-journal/{id}", journals.Edit)
		r.Delete("/delete-journal/{id}", journals.Delete)
		r.Put("/update-is-favourite/{id}", journals.UpdateFavourite)
		r.Get("/search", journals.Search)
		r.Get("/travel-journals/filter", journals.FilterByDate)
	})

	// Uploaded images and static assets
	fileServer(r, "/uploads", cfg.UploadDir)
	fileServer(r, "/assets", cfg.AssetsDir)

	// Static SPA at the root
	r.Handle("/*", http.FileServer(http.Dir(cfg.WebDir)))
}

func fileServer(r chi.Router, prefix, dir string) {
	fs := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(dir)))
	r.Get(prefix+"/*", fs.ServeHTTP)
}
