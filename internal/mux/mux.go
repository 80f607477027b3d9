package mux

import (
	"context"
	"net/http"
	"seotda-server/internal/jwt"
	"seotda-server/pkg/room"
	"strings"

	gmux "github.com/gorilla/mux"
)

type ctxKey int

const (
	ctxPlayerIDKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, pitBoss *room.PitBoss) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	}

	// requires an access token when tokens are enabled
	{
		r := this.authRouter
		r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())
	}

	return this
}

// authMiddleware stores the token's player id on the request context
// Without a configured secret every request is let through anonymously
func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !jwt.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		playerID, err := jwt.ValidPlayerID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerIDKey, playerID)
		w.Header().Set("Seotda-PlayerID", playerID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// authPlayerID returns the authenticated player id, empty when anonymous
func authPlayerID(r *http.Request) string {
	playerID, _ := r.Context().Value(ctxPlayerIDKey).(string)
	return playerID
}
