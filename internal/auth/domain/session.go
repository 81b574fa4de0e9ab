package domain

// Session is the client-held assertion of the signed-in identity. It carries
// no expiry and no signature of its own.
type Session struct {
	User SessionUser `json:"user"`
}

type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (s *Session) Valid() bool {
	return s != nil && s.User.ID != ""
}
