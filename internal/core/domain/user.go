package domain

import "time"

// UserVerifyStatus is the email verification state of a user.
// Transitions: Unverified -> Verified, Unverified/Verified -> Banned.
type UserVerifyStatus int

const (
	UserUnverified UserVerifyStatus = iota
	UserVerified
	UserBanned
)

func (s UserVerifyStatus) String() string {
	switch s {
	case UserUnverified:
		return "unverified"
	case UserVerified:
		return "verified"
	case UserBanned:
		return "banned"
	default:
		return "unknown"
	}
}

// User represents an account in the domain.
type User struct {
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	DateOfBirth time.Time `json:"date_of_birth"`
	// PasswordHash is the keyed hash of the password, never the plaintext.
	PasswordHash string `json:"-"`
	// EmailVerifyToken is empty once consumed or when never issued.
	EmailVerifyToken    string           `json:"-"`
	ForgotPasswordToken string           `json:"-"`
	Verify              UserVerifyStatus `json:"verify"`
	Username            string           `json:"username"`
	Bio                 string           `json:"bio"`
	Location            string           `json:"location"`
	Website             string           `json:"website"`
	Avatar              string           `json:"avatar"`
	CoverPhoto          string           `json:"cover_photo"`
	Timestamps
}

// UserPatch lists the fields of a user to change. Nil fields are left untouched.
type UserPatch struct {
	Name                *string
	DateOfBirth         *time.Time
	PasswordHash        *string
	EmailVerifyToken    *string
	ForgotPasswordToken *string
	Verify              *UserVerifyStatus
	Username            *string
	Bio                 *string
	Location            *string
	Website             *string
	Avatar              *string
	CoverPhoto          *string
	UpdatedAt           time.Time
}

// Apply copies the non-nil fields of the patch onto u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.DateOfBirth != nil {
		u.DateOfBirth = *p.DateOfBirth
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.EmailVerifyToken != nil {
		u.EmailVerifyToken = *p.EmailVerifyToken
	}
	if p.ForgotPasswordToken != nil {
		u.ForgotPasswordToken = *p.ForgotPasswordToken
	}
	if p.Verify != nil {
		u.Verify = *p.Verify
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.Website != nil {
		u.Website = *p.Website
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.CoverPhoto != nil {
		u.CoverPhoto = *p.CoverPhoto
	}
	if !p.UpdatedAt.IsZero() {
		u.UpdatedAt = p.UpdatedAt
	}
}

// ExternalIdentity is an identity asserted by an OAuth provider.
type ExternalIdentity struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// OAuthTokens are the provider credentials obtained by exchanging an authorization code.
type OAuthTokens struct {
	AccessToken string
	IDToken     string
}
