package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Le-JDL-La-Roche/Le-JDL-API/internal/middleware"
)

// Router wires every endpoint with its middleware.
func (h *Handlers) Router(authMW *middleware.Auth, questionLimiter *middleware.RateLimiterMiddleware) *mux.Router {
	r := mux.NewRouter()

	admin := authMW.RequireAdmin
	any := authMW.RequireAny

	// Auth
	r.HandleFunc("/auth", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/man", h.LoginManager).Methods(http.MethodPost)
	r.HandleFunc("/verify", h.Verify).Methods(http.MethodGet)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodDelete)

	// Articles
	r.HandleFunc("/articles", h.GetPublishedArticles).Methods(http.MethodGet)
	r.Handle("/articles/all", admin(http.HandlerFunc(h.GetAllArticles))).Methods(http.MethodGet)
	r.HandleFunc("/articles/{id:[0-9]+}", h.GetArticle).Methods(http.MethodGet)
	r.Handle("/articles", admin(http.HandlerFunc(h.CreateArticle))).Methods(http.MethodPost)
	r.Handle("/articles/{id:[0-9]+}", admin(http.HandlerFunc(h.UpdateArticle))).Methods(http.MethodPut)
	r.Handle("/articles/{id:[0-9]+}", admin(http.HandlerFunc(h.DeleteArticle))).Methods(http.MethodDelete)

	// Videos
	r.HandleFunc("/videos", h.GetPublishedVideos).Methods(http.MethodGet)
	r.Handle("/videos/all", any(http.HandlerFunc(h.GetAllVideos))).Methods(http.MethodGet)
	r.HandleFunc("/videos/{id:[0-9]+}", h.GetVideo).Methods(http.MethodGet)
	r.Handle("/videos", admin(http.HandlerFunc(h.CreateVideo))).Methods(http.MethodPost)
	r.Handle("/videos/{id:[0-9]+}", admin(http.HandlerFunc(h.UpdateVideo))).Methods(http.MethodPut)
	r.Handle("/videos/{id:[0-9]+}", admin(http.HandlerFunc(h.DeleteVideo))).Methods(http.MethodDelete)

	// Webradio
	r.HandleFunc("/webradio/shows", h.GetPublishedShows).Methods(http.MethodGet)
	r.HandleFunc("/webradio/shows/current", h.GetCurrentShow).Methods(http.MethodGet)
	r.Handle("/webradio/shows/all", any(http.HandlerFunc(h.GetAllShows))).Methods(http.MethodGet)
	r.HandleFunc("/webradio/shows/{id:[0-9]+}", h.GetShow).Methods(http.MethodGet)
	r.Handle("/webradio/shows", admin(http.HandlerFunc(h.CreateShow))).Methods(http.MethodPost)
	r.Handle("/webradio/shows/{id:[0-9]+}", admin(http.HandlerFunc(h.UpdateShow))).Methods(http.MethodPut)
	r.Handle("/webradio/shows/{id:[0-9]+}", admin(http.HandlerFunc(h.DeleteShow))).Methods(http.MethodDelete)
	r.HandleFunc("/webradio/questions", h.GetCurrentQuestions).Methods(http.MethodGet)
	r.Handle("/webradio/questions", questionLimiter.Middleware(http.HandlerFunc(h.PostQuestion))).Methods(http.MethodPost)
	r.Handle("/webradio/questions/{id:[0-9]+}", admin(http.HandlerFunc(h.DeleteQuestion))).Methods(http.MethodDelete)
	r.HandleFunc("/webradio/podcasts.rss", h.GetPodcastFeed).Methods(http.MethodGet)

	// Authorizations
	r.Handle("/authorizations", any(http.HandlerFunc(h.ListAuthorizations))).Methods(http.MethodGet)
	r.Handle("/authorizations/{id:[0-9]+}", any(http.HandlerFunc(h.GetAuthorization))).Methods(http.MethodGet)
	r.Handle("/authorizations", admin(http.HandlerFunc(h.SubmitAuthorization))).Methods(http.MethodPost)
	// Role dispatch happens inside: editors edit drafts, managers respond.
	r.HandleFunc("/authorizations/{id:[0-9]+}", h.UpdateAuthorization).Methods(http.MethodPut)
	r.Handle("/authorizations/{id:[0-9]+}", admin(http.HandlerFunc(h.DeleteAuthorization))).Methods(http.MethodDelete)

	// Agenda
	r.HandleFunc("/agenda", h.GetAgenda).Methods(http.MethodGet)
	r.Handle("/agenda", admin(http.HandlerFunc(h.CreateEvent))).Methods(http.MethodPost)
	r.Handle("/agenda/{id:[0-9]+}", admin(http.HandlerFunc(h.UpdateEvent))).Methods(http.MethodPut)
	r.Handle("/agenda/{id:[0-9]+}", admin(http.HandlerFunc(h.DeleteEvent))).Methods(http.MethodDelete)

	// Info banners
	r.HandleFunc("/info", h.GetInfo).Methods(http.MethodGet)
	r.Handle("/info", admin(http.HandlerFunc(h.CreateInfo))).Methods(http.MethodPost)
	r.Handle("/info/{id:[0-9]+}", admin(http.HandlerFunc(h.UpdateInfo))).Methods(http.MethodPut)
	r.Handle("/info/{id:[0-9]+}", admin(http.HandlerFunc(h.DeleteInfo))).Methods(http.MethodDelete)

	// Realtime
	r.HandleFunc("/ws", h.ServeWS)

	return r
}
