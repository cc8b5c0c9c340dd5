package handlers

// AppHandlers bundles every constructed handler for route registration.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	DocumentHandler *DocumentHandler
	StatusHandler   *StatusHandler
}
