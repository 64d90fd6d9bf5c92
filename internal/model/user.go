package model

import "time"

// Role values stored in users.role and carried in the JWT "role" claim.
const (
	RoleAdmin      = "ADMIN"
	RoleTechnician = "TECHNICIAN"
)

// User represents an application user record as stored in the `users`
// table. Each field corresponds to a column in the database. The json tags
// are omitted here because these structs are primarily used internally by
// the repository layer; handlers define separate response types with
// appropriate JSON tags.
//
// Fields:
//
//	ID               – primary key identifier of the user.
//	CompanyID        – tenant the user belongs to (nullable for super admins).
//	Name             – display name.
//	Email            – unique email address.
//	PasswordHash     – bcrypt hashed password.
//	Role             – ADMIN or TECHNICIAN.
//	IsActive         – whether the account is active.
//	ResetToken       – outstanding password-reset token (nullable).
//	ResetTokenExpiry – when the reset token stops being valid (nullable).
//	CreatedAt        – timestamp of creation.
//	UpdatedAt        – timestamp of last update.
type User struct {
	ID               uint64     // users.id
	CompanyID        *uint64    // users.company_id (nullable)
	Name             string     // users.name
	Email            string     // users.email
	PasswordHash     string     // users.password_hash
	Role             string     // users.role
	IsActive         bool       // users.is_active
	ResetToken       *string    // users.reset_token (nullable)
	ResetTokenExpiry *time.Time // users.reset_token_expiry (nullable)
	CreatedAt        time.Time  // users.created_at
	UpdatedAt        time.Time  // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each refresh
// token belongs to a user and contains metadata for expiry and revocation.
// The plain token is not stored; only its SHA-256 hash.
//
// Fields:
//
//	ID        – primary key identifier.
//	UserID    – owner of the token.
//	TokenHash – SHA-256 hex digest of the token value.
//	ExpiresAt – expiration timestamp of the token.
//	RevokedAt – when the token was revoked (null if still active).
//	CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
