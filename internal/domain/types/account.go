package types

import "encoding/json"

// Credentials is the login bundle shared by all three sessions of an account.
//
// On disk it is stored as the ordered tuple [login, password, shared, identity].
type Credentials struct {
	Login          string
	Password       string
	SharedSecret   string
	IdentitySecret string
}

// MarshalJSON encodes the credentials as an ordered 4-tuple.
func (c Credentials) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]string{c.Login, c.Password, c.SharedSecret, c.IdentitySecret})
}

// UnmarshalJSON accepts a tuple of up to four strings; missing or null
// entries decode as empty.
func (c *Credentials) UnmarshalJSON(data []byte) error {
	var raw []*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	at := func(i int) string {
		if i < len(raw) && raw[i] != nil {
			return *raw[i]
		}
		return ""
	}
	*c = Credentials{
		Login:          at(0),
		Password:       at(1),
		SharedSecret:   at(2),
		IdentitySecret: at(3),
	}
	return nil
}

// Tokens is the authorization state issued by the remote service.
type Tokens struct {
	AccountID     string `json:"account_id"`
	AccessToken   string `json:"access_token"`
	RefreshToken  string `json:"refresh_token"`
	AccessExpires int64  `json:"access_expires"` // unix ms
}

// LoginRequest is what the mobile session submits on a full login.
type LoginRequest struct {
	Login         string `json:"login"`
	Password      string `json:"password"`
	TwoFactorCode string `json:"two_factor_code,omitempty"`
	DeviceID      string `json:"device_id,omitempty"`
	Platform      string `json:"platform,omitempty"`
}
