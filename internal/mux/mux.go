package mux

import (
	"context"
	"net/http"
	"strings"

	"shed-server/internal/jwt"
	"shed-server/pkg/room"

	gmux "github.com/gorilla/mux"
)

type ctxKey int

const (
	ctxUserIDKey ctxKey = iota
	ctxGameIDKey
)

// gameIDPattern matches a game UUID
const gameIDPattern = `{id:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}`

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

	// requires bearer authorization
	{
		r := this.authRouter

		r.Methods(http.MethodPost).Path("/game").Handler(this.postGame())
		r.Methods(http.MethodPost).Path("/game/solo").Handler(this.postGameSolo())

		gr := r.PathPrefix("/game/" + gameIDPattern).Subrouter()
		gr.Use(this.gameMiddleware)

		gr.Methods(http.MethodGet).Path("").Handler(this.getGameID())
		gr.Methods(http.MethodGet).Path("/ws").Handler(this.getGameIDWS())
		gr.Methods(http.MethodPost).Path("/play").Handler(this.postGameIDPlay())
		gr.Methods(http.MethodPost).Path("/draw").Handler(this.postGameIDDraw())
		gr.Methods(http.MethodPost).Path("/pickup").Handler(this.postGameIDPickUp())
	}

	return this
}

// authMiddleware resolves the caller from a bearer token or the access_token parameter
func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		userID, err := jwt.ValidUserID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxUserIDKey, userID)
		w.Header().Set("Shed-UserID", userID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// gameMiddleware puts the game ID from the path into the context
func (m *Mux) gameMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gameID := strings.ToLower(gmux.Vars(r)["id"])
		newCtx := context.WithValue(r.Context(), ctxGameIDKey, gameID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func userID(r *http.Request) string {
	return r.Context().Value(ctxUserIDKey).(string)
}

func gameID(r *http.Request) string {
	return r.Context().Value(ctxGameIDKey).(string)
}
