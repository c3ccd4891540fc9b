package services

// ServiceContainer bundles all service facades, built once at startup and
// injected into handlers. There are no process-wide singletons; everything
// flows through this container.
type ServiceContainer struct {
	User      UserSvcFacade
	Customer  CustomerSvcFacade
	Admin     AdminSvcFacade
	Workspace WorkspaceSvcFacade
	Position  PositionSvcFacade
	Token     TokenSvcFacade
	Auth      AuthSvcFacade
}
