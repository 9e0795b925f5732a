package constants

// Common string constants used throughout the codebase
const (
	// Log levels
	ErrorLevel = "error"

	// Environments
	ProdEnvironment = "prod"

	// Event types published by the vault and authorization services
	EventDeposited             = "vault.deposited"
	EventWithdrawn             = "vault.withdrawn"
	EventAuthorizationConsumed = "authorization.consumed"
	EventSignerUpdated         = "signer.updated"
)
