package model

import "time"

// Role names as stored in the users table and embedded in JWT claims.
// Roles form an ordered capability ladder: USER < ORGANIZER < ADMIN.
// An admin can do anything an organizer can and an organizer anything
// a plain user can, so authorization gates compare tiers instead of
// matching explicit role sets.
const (
	RoleUser      = "USER"
	RoleOrganizer = "ORGANIZER"
	RoleAdmin     = "ADMIN"
)

// tierRank maps a role name to its position on the capability ladder.
// Unknown roles rank 0 and therefore satisfy no gate.
var tierRank = map[string]int{
	RoleUser:      1,
	RoleOrganizer: 2,
	RoleAdmin:     3,
}

// ValidRole reports whether the given string is a known role name.
func ValidRole(role string) bool {
	_, ok := tierRank[role]
	return ok
}

// TierAtLeast reports whether role meets or exceeds the required
// minimum role. It is the single comparison behind every role-gated
// endpoint.
func TierAtLeast(role, min string) bool {
	return tierRank[role] > 0 && tierRank[role] >= tierRank[min]
}

// User represents an application user record as stored in the
// `users` table. Passwords are never stored in plain text; only the
// bcrypt hash is persisted. Deactivation is a soft flag flip, the
// row is never deleted.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address (lower-cased before storage).
//  PasswordHash – bcrypt hashed password.
//  Name         – display name shown on events and bookings.
//  Role         – capability role (USER, ORGANIZER or ADMIN).
//  IsActive     – whether the account is active.
//  IsVerified   – whether the email address has been verified.
//  Phone        – optional profile field.
//  AvatarURL    – optional profile field, set by the external image store.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Name         string    // users.name
	Role         string    // users.role
	IsActive     bool      // users.is_active
	IsVerified   bool      // users.is_verified
	Phone        *string   // users.phone (nullable)
	AvatarURL    *string   // users.avatar_url (nullable)
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user and carries expiry and revocation
// metadata. The plain token is not stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
