package delivery

import (
	"github.com/Vovarama1992/streamgate/internal/ports"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, sessions ports.SessionService, hToken *TokenHandler, hProxy *ProxyHandler) {

	// issuing and revoking require an authenticated platform session
	r.Group(func(g chi.Router) {
		g.Use(AuthMiddleware(sessions))
		g.Post("/video/token", hToken.Issue)
		g.Post("/video/token/revoke", hToken.Revoke)
	})

	// the player authenticates with the capability token itself
	r.Get("/video-proxy/*", hProxy.Serve)
}
