package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DefaultAvatarURL is used until a profile links a GitHub account.
const DefaultAvatarURL = "https://www.gravatar.com/avatar/c210af79b45e5891502fda3c4c2139a0?s=200&r=pg&d=mm"

// User represents a registered account. The password is only ever stored as
// a bcrypt digest, and the reset-token fields hold the SHA-256 digest of an
// outstanding password reset token together with its expiry. The two reset
// fields are always set and cleared together.
type User struct {
	ID                     bson.ObjectID `bson:"_id,omitempty"                       json:"id"`
	Name                   string        `bson:"name"                                json:"name"`
	Email                  string        `bson:"email"                               json:"email"`
	PasswordHash           string        `bson:"password_hash"                       json:"-"`
	Avatar                 string        `bson:"avatar"                              json:"avatar"`
	PasswordResetTokenHash string        `bson:"password_reset_token_hash,omitempty" json:"-"`
	PasswordResetExpiresAt *time.Time    `bson:"password_reset_expires_at,omitempty" json:"-"`
	CreatedAt              time.Time     `bson:"created_at"                          json:"createdAt"`
	UpdatedAt              time.Time     `bson:"updated_at"                          json:"updatedAt"`
}
