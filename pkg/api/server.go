package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Register a new account
	// (POST /register)
	Register(w http.ResponseWriter, r *http.Request)
	// Deposit funds through the payment gateway
	// (POST /deposit)
	Deposit(w http.ResponseWriter, r *http.Request)
	// Get an account balance
	// (GET /balance/{email})
	GetBalance(w http.ResponseWriter, r *http.Request, email string)
	// List the credits applied to an account, newest first
	// (GET /balance/{email}/history)
	GetBalanceHistory(w http.ResponseWriter, r *http.Request, email string, params GetBalanceHistoryParams)
	// List ads
	// (GET /ads)
	ListAds(w http.ResponseWriter, r *http.Request)
	// Watch an ad and earn its reward
	// (POST /watch-ad)
	WatchAd(w http.ResponseWriter, r *http.Request)
	// Create an ad
	// (POST /admin/add-ad)
	AddAd(w http.ResponseWriter, r *http.Request)
	// Delete an ad
	// (DELETE /admin/delete-ad/{id})
	DeleteAd(w http.ResponseWriter, r *http.Request, id string)
	// Update an ad
	// (PUT /admin/update-ad/{id})
	UpdateAd(w http.ResponseWriter, r *http.Request, id string)
	// Liveness probe
	// (GET /healthz)
	Healthz(w http.ResponseWriter, r *http.Request)
}

// ServerInterfaceWrapper converts path and query parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

type MiddlewareFunc func(http.Handler) http.Handler

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	handler := http.Handler(fn)
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

func (siw *ServerInterfaceWrapper) pathParam(w http.ResponseWriter, r *http.Request, name string, dest *string) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
		return false
	}
	return true
}

func (siw *ServerInterfaceWrapper) Register(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.Register)
}

func (siw *ServerInterfaceWrapper) Deposit(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.Deposit)
}

func (siw *ServerInterfaceWrapper) GetBalance(w http.ResponseWriter, r *http.Request) {
	var email string
	if !siw.pathParam(w, r, "email", &email) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetBalance(w, r, email)
	})
}

func (siw *ServerInterfaceWrapper) GetBalanceHistory(w http.ResponseWriter, r *http.Request) {
	var email string
	if !siw.pathParam(w, r, "email", &email) {
		return
	}

	var params GetBalanceHistoryParams
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetBalanceHistory(w, r, email, params)
	})
}

func (siw *ServerInterfaceWrapper) ListAds(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.ListAds)
}

func (siw *ServerInterfaceWrapper) WatchAd(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.WatchAd)
}

func (siw *ServerInterfaceWrapper) AddAd(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.AddAd)
}

func (siw *ServerInterfaceWrapper) DeleteAd(w http.ResponseWriter, r *http.Request) {
	var id string
	if !siw.pathParam(w, r, "id", &id) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.DeleteAd(w, r, id)
	})
}

func (siw *ServerInterfaceWrapper) UpdateAd(w http.ResponseWriter, r *http.Request) {
	var id string
	if !siw.pathParam(w, r, "id", &id) {
		return
	}
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.UpdateAd(w, r, id)
	})
}

func (siw *ServerInterfaceWrapper) Healthz(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.Healthz)
}

// InvalidParamFormatError is reported when a path or query parameter cannot be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
	// RouteMiddlewares are applied to single routes, keyed by "METHOD /path".
	RouteMiddlewares map[string][]func(http.Handler) http.Handler
}

// Handler creates http.Handler with routing matching the API.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerFromMux creates http.Handler with routing matching the API, mounted on r.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseRouter: r,
	})
}

// HandlerWithOptions creates http.Handler with additional options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			WriteError(w, http.StatusBadRequest, Error{Message: err.Error(), Code: "invalid_parameter"})
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	route := func(method, pattern string, h http.HandlerFunc) {
		var handler http.Handler = h
		for _, mw := range options.RouteMiddlewares[method+" "+pattern] {
			handler = mw(handler)
		}
		r.Method(method, options.BaseURL+pattern, handler)
	}

	route(http.MethodPost, "/register", wrapper.Register)
	route(http.MethodPost, "/deposit", wrapper.Deposit)
	route(http.MethodGet, "/balance/{email}", wrapper.GetBalance)
	route(http.MethodGet, "/balance/{email}/history", wrapper.GetBalanceHistory)
	route(http.MethodGet, "/ads", wrapper.ListAds)
	route(http.MethodPost, "/watch-ad", wrapper.WatchAd)
	route(http.MethodPost, "/admin/add-ad", wrapper.AddAd)
	route(http.MethodDelete, "/admin/delete-ad/{id}", wrapper.DeleteAd)
	route(http.MethodPut, "/admin/update-ad/{id}", wrapper.UpdateAd)
	route(http.MethodGet, "/healthz", wrapper.Healthz)

	return r
}
