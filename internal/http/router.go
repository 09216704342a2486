package httpserver

import "net/http"

// Routes aggregates the handlers exposed by the service. Nil entries are
// simply not routed; the Enphase diagnostic stays nil unless the integration
// is configured and enabled.
type Routes struct {
	Health            http.Handler
	SessionOpen       http.Handler
	SessionState      http.Handler
	AdminView         http.Handler
	Back              http.Handler
	Login             http.Handler
	AdminLogin        http.Handler
	Logout            http.Handler
	Dashboard         http.Handler
	AdminClients      http.Handler
	AdminClientUpdate http.Handler
	EnphaseSum        http.Handler
}

// NewRouter wires all HTTP routes.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	if routes.SessionOpen != nil {
		mux.Handle("/session", method(http.MethodPost, routes.SessionOpen))
	}
	if routes.SessionState != nil {
		mux.Handle("/session/state", method(http.MethodGet, routes.SessionState))
	}
	if routes.AdminView != nil {
		mux.Handle("/session/admin-view", method(http.MethodPost, routes.AdminView))
	}
	if routes.Back != nil {
		mux.Handle("/session/back", method(http.MethodPost, routes.Back))
	}
	if routes.Login != nil {
		mux.Handle("/auth/login", method(http.MethodPost, routes.Login))
	}
	if routes.AdminLogin != nil {
		mux.Handle("/auth/admin/login", method(http.MethodPost, routes.AdminLogin))
	}
	if routes.Logout != nil {
		mux.Handle("/auth/logout", method(http.MethodPost, routes.Logout))
	}
	if routes.Dashboard != nil {
		mux.Handle("/dashboard/summary", method(http.MethodGet, routes.Dashboard))
	}
	if routes.AdminClients != nil {
		mux.Handle("/admin/clients", routes.AdminClients)
	}
	if routes.AdminClientUpdate != nil {
		mux.Handle("PUT /admin/clients/{id}", routes.AdminClientUpdate)
	}
	if routes.EnphaseSum != nil {
		mux.Handle("/internal/enphase/sum", method(http.MethodPost, routes.EnphaseSum))
	}
	return mux
}

func method(expected string, handler http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	}
}
