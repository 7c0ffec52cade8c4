package services

// ServiceContainer holds instances of all the application services.
// It is built once at startup and handed to the HTTP handlers.
type ServiceContainer struct {
	Session    SessionSvcFacade
	User       UserSvcFacade
	TokenCodec TokenCodec
	Identity   IdentityProvider
}
