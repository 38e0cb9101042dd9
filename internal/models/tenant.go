package models

// AuthenticatorCollection holds a tenant's single shared secret. It is
// never exposed as a browsable collection.
const AuthenticatorCollection = "Authenticator"

// Authenticator is the secret record. Exact string comparison only; no
// hashing by contract.
type Authenticator struct {
	Password string `bson:"password"`
}

// Credentials is the session creation form input.
type Credentials struct {
	Tenant     string `json:"tenant" validate:"required"`
	Credential string `json:"credential" validate:"required"`
}
