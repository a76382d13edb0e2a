// Package models defines the wire and domain types of the aceletters
// client: profiles, letters and the optional-field wrappers used to decode
// loosely-shaped server responses.
package models

// Profile is a user's public listing in the directory.
//
// The id is opaque, stable and assigned by the backend. Categorical fields
// (city, gender, orientation, looking_for) hold stored codes, not display
// labels. Any field except the id may be absent in a server response; an
// absent field decodes to its zero value.
type Profile struct {
	ID          string      `json:"_id"`
	Username    string      `json:"username"`
	Name        string      `json:"name"`
	Age         OptionalInt `json:"age"`
	Gender      string      `json:"gender"`
	Orientation string      `json:"orientation"`
	LookingFor  string      `json:"looking_for"`
	City        string      `json:"city"`
	Info        string      `json:"info"`
	Contact     string      `json:"contact"`
	ImageURL    string      `json:"image_url"`

	CreatedAt OptionalTime `json:"created_at"`
	UpdatedAt OptionalTime `json:"updated_at"`
}

// DisplayName returns the profile's name, falling back to @username.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.Username != "" {
		return "@" + p.Username
	}
	return p.ID
}

// ProfileDraft is the payload for signup and profile edit. Unlike Profile
// it is produced locally, so fields are validated before being sent.
type ProfileDraft struct {
	Username    string `json:"username" validate:"required,min=2,max=32"`
	Name        string `json:"name" validate:"max=80"`
	Age         int    `json:"age" validate:"gte=18,lte=120"`
	Gender      string `json:"gender" validate:"omitempty,oneof=male female non-binary other"`
	Orientation string `json:"orientation" validate:"omitempty,oneof=ace aro aroace demi grey-asexual"`
	LookingFor  string `json:"looking_for" validate:"omitempty,oneof=friendship monogamy-romance qpr polyamory-romance"`
	City        string `json:"city" validate:"omitempty,oneof=gush-dan tel-aviv jerusalem-area hasharon shfela haifa-krayot north-galilee-golan south-coast south-ashdod-ashkelon negev-beer-sheva eilat-arava west-bank other-israel"`
	Info        string `json:"info" validate:"max=1000"`
	Contact     string `json:"contact" validate:"max=200"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}
