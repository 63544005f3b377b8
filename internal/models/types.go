package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Role identifies which side of the platform a user is on.
type Role string

const (
	RoleFounder   Role = "founder"
	RoleInvestor  Role = "investor"
	RoleIncubator Role = "incubator"
	RoleViewer    Role = "viewer"
)

// legacyFounderRole is what older browser profiles stored for founders.
const legacyFounderRole = "startup"

// ParseRole accepts the four role names (case-insensitive) plus the legacy
// "startup" spelling, which maps to RoleFounder.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleFounder), legacyFounderRole:
		return RoleFounder, nil
	case string(RoleInvestor):
		return RoleInvestor, nil
	case string(RoleIncubator):
		return RoleIncubator, nil
	case string(RoleViewer):
		return RoleViewer, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Profile is the role-specific part of a user record. Exactly one concrete
// type exists per Role.
type Profile interface {
	Role() Role
}

type FounderProfile struct {
	StartupName      string `json:"startupName,omitempty"`
	Website          string `json:"website,omitempty"`
	Stage            string `json:"stage,omitempty"`
	Industry         string `json:"industry,omitempty"`
	LinkedIn         string `json:"linkedin,omitempty"`
	PitchDescription string `json:"pitchDescription,omitempty"`
}

type InvestorProfile struct {
	Designation  string `json:"designation,omitempty"`
	LinkedIn     string `json:"linkedin,omitempty"`
	InvestorType string `json:"investorType,omitempty"`
	TicketSize   string `json:"ticketSize,omitempty"`
}

type IncubatorProfile struct {
	InstitutionName string `json:"institutionName,omitempty"`
	Phone           string `json:"phone,omitempty"`
	LinkedIn        string `json:"linkedin,omitempty"`
}

type ViewerProfile struct {
	InterestType string `json:"interestType,omitempty"`
}

func (FounderProfile) Role() Role   { return RoleFounder }
func (InvestorProfile) Role() Role  { return RoleInvestor }
func (IncubatorProfile) Role() Role { return RoleIncubator }
func (ViewerProfile) Role() Role    { return RoleViewer }

// User is the single active profile of a local client.
type User struct {
	ID      string
	Role    Role
	Name    string
	Email   string
	Profile Profile
}

// NewUser builds a user whose role is taken from the profile variant.
func NewUser(id, name, email string, p Profile) User {
	u := User{ID: id, Name: name, Email: email, Profile: p}
	if p != nil {
		u.Role = p.Role()
	}
	return u
}

type userWire struct {
	ID    string          `json:"id"`
	Role  string          `json:"role"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Meta  json.RawMessage `json:"meta,omitempty"`
}

func (u User) MarshalJSON() ([]byte, error) {
	w := userWire{ID: u.ID, Role: string(u.Role), Name: u.Name, Email: u.Email}
	if u.Profile != nil {
		if u.Profile.Role() != u.Role {
			return nil, fmt.Errorf("user %s: profile for role %s does not match role %s", u.ID, u.Profile.Role(), u.Role)
		}
		b, err := json.Marshal(u.Profile)
		if err != nil {
			return nil, err
		}
		w.Meta = b
	}
	return json.Marshal(w)
}

func (u *User) UnmarshalJSON(data []byte) error {
	var w userWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	role, err := ParseRole(w.Role)
	if err != nil {
		return err
	}
	var p Profile
	if len(w.Meta) > 0 && !bytes.Equal(bytes.TrimSpace(w.Meta), []byte("null")) {
		p, err = decodeProfile(role, w.Meta, false)
		if err != nil {
			return fmt.Errorf("user %s meta: %w", w.ID, err)
		}
	}
	*u = User{ID: w.ID, Role: role, Name: w.Name, Email: w.Email, Profile: p}
	return nil
}

// ProfileFromFields builds the profile variant for role from flat key/value
// pairs using the same field names as the JSON meta object. Unknown keys are
// rejected.
func ProfileFromFields(role Role, fields map[string]string) (Profile, error) {
	if fields == nil {
		fields = map[string]string{}
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return decodeProfile(role, b, true)
}

func decodeProfile(role Role, raw []byte, strict bool) (Profile, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if strict {
		dec.DisallowUnknownFields()
	}
	switch role {
	case RoleFounder:
		var p FounderProfile
		err := dec.Decode(&p)
		return p, err
	case RoleInvestor:
		var p InvestorProfile
		err := dec.Decode(&p)
		return p, err
	case RoleIncubator:
		var p IncubatorProfile
		err := dec.Decode(&p)
		return p, err
	case RoleViewer:
		var p ViewerProfile
		err := dec.Decode(&p)
		return p, err
	}
	return nil, fmt.Errorf("unknown role %q", role)
}

// Comment is one entry of a video's append-only comment thread.
type Comment struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}
