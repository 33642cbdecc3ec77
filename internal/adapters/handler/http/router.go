package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

func NewHandler(pollHandler *PollHandler, voteHandler *VoteHandler, resultHandler *ResultHandler, userHandler *UserHandler, authHandler *AuthHandler, jwtSecret []byte, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(corsMiddleware(allowedOrigins))

	auth := AuthMiddleware(jwtSecret)

	if authHandler != nil {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/google/callback", authHandler.GoogleCallback)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})
	}

	r.Route("/api", func(r chi.Router) {
		if userHandler != nil {
			r.With(auth).Get("/users/me", userHandler.GetMe)
		}

		r.Route("/polls", func(r chi.Router) {
			r.Get("/", pollHandler.ListActivePolls)
			r.With(auth).Post("/", pollHandler.CreatePoll)
			r.With(auth).Get("/mine", pollHandler.ListMyPolls)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", pollHandler.GetPoll)
				r.With(auth).Patch("/", pollHandler.EditPoll)
				r.With(auth).Post("/status", pollHandler.ToggleStatus)
				r.With(auth).Delete("/", pollHandler.DeletePoll)

				r.Post("/votes", voteHandler.VoteOnPoll)
				r.With(auth).Get("/results", resultHandler.GetResults)
			})
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}

func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	allowAll := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (allowAll || allowed[origin]) {
				if allowAll {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				} else {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
