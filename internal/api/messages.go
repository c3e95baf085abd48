package api

import "time"

// Auth messages.

type RegisterRequest struct {
	Email        string  `json:"email"`
	Username     string  `json:"username"`
	Password     string  `json:"password"`
	PasswordHint *string `json:"password_hint,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// UpdateUserRequest changes only the fields that are set.
type UpdateUserRequest struct {
	Email        *string `json:"email,omitempty"`
	Username     *string `json:"username,omitempty"`
	Password     *string `json:"password,omitempty"`
	PasswordHint *string `json:"password_hint,omitempty"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Vault messages.

// Secret is a stored record as seen by its owner. Ciphertext and Salt are
// hex encoded; the plaintext is only available through RevealSecret.
type Secret struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Website     *string   `json:"website,omitempty"`
	Username    *string   `json:"username,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        []string  `json:"tags"`
	Ciphertext  string    `json:"ciphertext"`
	Salt        string    `json:"salt"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListSecretsResponse struct {
	Secrets []Secret `json:"secrets"`
}

type SecretIDRequest struct {
	ID string `json:"id"`
}

type AddSecretRequest struct {
	Name           string   `json:"name"`
	Secret         string   `json:"secret"`
	MasterPassword string   `json:"master_password"`
	Website        *string  `json:"website,omitempty"`
	Username       *string  `json:"username,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

type AddSecretResponse struct {
	ID string `json:"id"`
}

// UpdateSecretRequest keeps every absent field. A non-nil Tags (including
// an empty list) replaces the tag set.
type UpdateSecretRequest struct {
	ID             string   `json:"id"`
	Name           *string  `json:"name,omitempty"`
	Secret         *string  `json:"secret,omitempty"`
	MasterPassword *string  `json:"master_password,omitempty"`
	Website        *string  `json:"website,omitempty"`
	Username       *string  `json:"username,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Tags           []string `json:"tags"`
}

type RevealSecretRequest struct {
	ID             string `json:"id"`
	MasterPassword string `json:"master_password"`
}

type RevealSecretResponse struct {
	Secret string `json:"secret"`
}

type TagsRequest struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags"`
}

type TagsResponse struct {
	Tags []string `json:"tags"`
}

type ExportResponse struct {
	ObjectKey string    `json:"object_key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ErrorResponse is the body of every failed HTTP call.
type ErrorResponse struct {
	Error        string  `json:"error"`
	PasswordHint *string `json:"password_hint,omitempty"`
}
