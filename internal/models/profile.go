package models

// Profile represents a user account row. Passwords arrive pre-hashed from
// the client and are stored verbatim; this service never hashes them.
type Profile struct {
	ID                      int
	Username                string
	Password                string
	Displayname             string
	Address                 *string
	IsAddressPublic         bool
	TelephoneNumber         *string
	IsTelephoneNumberPublic bool
	Status                  *string
	IsStatusPublic          bool
}

// CreateProfile carries the fields needed to insert a new profile.
type CreateProfile struct {
	Username    string
	Password    string
	Displayname string
}
