package services

// ServiceContainer bundles the constructed services for wiring into handlers.
type ServiceContainer struct {
	RegistrationService RegistrationService
	AuthService         AuthService
	VerificationService EmailVerificationService
	DocumentService     DocumentService
	StatusService       StatusService
	UserService         UserService
}
