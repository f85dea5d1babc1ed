// routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mangemate/handlers"
	"mangemate/middleware"
	"mangemate/websocket"
)

var (
	MethodsGetOnly    = []string{"GET", "OPTIONS"}
	MethodsPostOnly   = []string{"POST", "OPTIONS"}
	MethodsPutOnly    = []string{"PUT", "OPTIONS"}
	MethodsPatchOnly  = []string{"PATCH", "OPTIONS"}
	MethodsDeleteOnly = []string{"DELETE", "OPTIONS"}
)

// RegisterRoutes wires the full route table. Credential-guarded routes
// wrap their handler in middleware.RequireAuth individually because
// public and guarded routes share path prefixes.
func RegisterRoutes(r *mux.Router, users *handlers.UserHandler, assets *handlers.AssetHandler, requests *handlers.RequestHandler, hub *websocket.Hub) {
	guarded := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}

	// Health and observability
	r.HandleFunc("/", handlers.Home).Methods(MethodsGetOnly...)
	r.HandleFunc("/health", handlers.HealthCheck).Methods(MethodsGetOnly...)
	r.Handle("/metrics", promhttp.Handler()).Methods(MethodsGetOnly...)

	// Session credential
	r.HandleFunc("/jwt", handlers.IssueToken).Methods(MethodsPostOnly...)
	r.HandleFunc("/logout", handlers.Logout).Methods(MethodsGetOnly...)

	// Users
	r.HandleFunc("/users", users.ListUsers).Methods(MethodsGetOnly...)
	r.HandleFunc("/users/role/{email}", users.GetRole).Methods(MethodsGetOnly...)
	r.HandleFunc("/users/{email}", users.RegisterOrFetch).Methods(MethodsPostOnly...)
	r.HandleFunc("/users/{email}", users.GetUser).Methods(MethodsGetOnly...)
	r.HandleFunc("/my-hr-email/{email}", users.GetMyHREmail).Methods(MethodsGetOnly...)
	r.HandleFunc("/team-members/{hrEmail}", users.TeamMembers).Methods(MethodsGetOnly...)
	r.HandleFunc("/hr-employee-limit/{email}", users.EmployeeLimit).Methods(MethodsGetOnly...)
	r.HandleFunc("/requested-user", users.RequestedUsers).Methods(MethodsGetOnly...)
	r.HandleFunc("/approve-user/{userId}", users.ApproveUser).Methods(MethodsPatchOnly...)
	r.HandleFunc("/my-employ", users.MyEmployees).Methods(MethodsGetOnly...)
	r.HandleFunc("/cancel-employ/{id}", users.CancelEmploy).Methods(MethodsPatchOnly...)

	// Assets: catalog reads are public, mutations require the credential
	r.Handle("/assets/hr", guarded(assets.ListByHR)).Methods(MethodsGetOnly...)
	r.HandleFunc("/assets/quantity/{id}", assets.AdjustQuantity).Methods(MethodsPatchOnly...)
	r.HandleFunc("/assets", assets.ListAll).Methods(MethodsGetOnly...)
	r.Handle("/assets", guarded(assets.Create)).Methods(MethodsPostOnly...)
	r.HandleFunc("/assets/{id}", assets.GetByID).Methods(MethodsGetOnly...)
	r.Handle("/assets/{id}", guarded(assets.Update)).Methods(MethodsPutOnly...)
	r.Handle("/assets/{id}", guarded(assets.Delete)).Methods(MethodsDeleteOnly...)

	// Requests
	r.Handle("/requests", guarded(requests.Create)).Methods(MethodsPostOnly...)
	r.Handle("/employ-request/{email}", guarded(requests.ListForEmploy)).Methods(MethodsGetOnly...)
	r.Handle("/hr-request/{email}", guarded(requests.ListForHR)).Methods(MethodsGetOnly...)
	r.HandleFunc("/request/approve/{id}", requests.Approve).Methods(MethodsPatchOnly...)
	r.Handle("/request/{id}", guarded(requests.Delete)).Methods(MethodsDeleteOnly...)

	// Live request updates
	r.HandleFunc("/ws/requests", hub.ServeWS)
}
