package handlers

// AppHandlers bundles all HTTP handlers for route registration.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	ProjectHandler *ProjectHandler
	ArticleHandler *ArticleHandler
	BlogHandler    *BlogHandler
	ContactHandler *ContactHandler
}
