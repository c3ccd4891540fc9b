package repositories

// RepositoryProvider bundles all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	UserRepo      UserRepository
	CustomerRepo  CustomerRepository
	AdminRepo     AdminRepository
	WorkspaceRepo WorkspaceRepository
	PositionRepo  PositionRepository
}
