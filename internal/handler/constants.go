// Package handler provides the HTTP handlers of the admin console.
package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteAdmin is the admin page; a GET starts a fresh console.
	RouteAdmin = "/admin"
	// RouteConsole renders the stored console state.
	RouteConsole = "/admin/console"
	// RouteConsoleJSON returns the stored console view as JSON.
	RouteConsoleJSON = "/admin/console.json"
	// RouteDispatch accepts console commands.
	RouteDispatch = "/admin/dispatch"
	// RouteUser is the current user page.
	RouteUser = "/user"

	// RouteHealth is the health check route.
	RouteHealth = "/health"
	// RouteHealthLive is the liveness probe.
	RouteHealthLive = "/health/live"
	// RouteHealthReady is the readiness probe.
	RouteHealthReady = "/health/ready"

	// RouteStatic is the static assets prefix.
	RouteStatic = "/static"
)

// SessionKeyConsoleID is the session key holding the console state id.
const SessionKeyConsoleID = "console_id"

// Dispatch form field names.
const (
	FieldCmd       = "cmd"
	FieldID        = "id"
	FieldKeyword   = "keyword"
	FieldUserID    = "userId"
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldAge       = "age"
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldRoles     = "roles"
)

// Page template names.
const (
	TemplateUsers       = "admin/users"
	TemplateCurrentUser = "user/current"
)
