package services

// ServiceContainer bundles all application services for wiring.
type ServiceContainer struct {
	AuthService    AuthService
	ProjectService ProjectService
	ArticleService ArticleService
	BlogService    BlogService
	ContactService ContactService
}
