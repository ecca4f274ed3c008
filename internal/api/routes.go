package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tasklist-api/internal/api/middleware"
)

// RegisterRoutes mounts the user and task routes on r, which is expected to
// be mounted at the API prefix. Every route carrying a token is wrapped in
// the ownership guard.
func RegisterRoutes(
	r chi.Router,
	users *UserHandler,
	tasks *TaskHandler,
	guard *middleware.OwnershipGuard,
) {
	r.Post("/users", users.CreateUser)

	r.Group(func(r chi.Router) {
		r.Use(guard.Require)

		r.Get("/users/{token}", users.GetUser)
		r.Delete("/users/{token}", users.DeleteUser)

		r.Get("/tasks/{token}", tasks.ListTasks)
		r.Post("/tasks/{token}", tasks.CreateTask)
		r.Get("/tasks/{id:[0-9]+}/{token}", tasks.GetTask)
		r.Put("/tasks/{id:[0-9]+}/{token}", tasks.UpdateTask)
		r.Delete("/tasks/{id:[0-9]+}/{token}", tasks.DeleteTask)
	})
}
