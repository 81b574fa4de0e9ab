package session

import (
	"encoding/json"

	"github.com/AnthoniusHendriyanto/access-gate/internal/auth/domain"
)

// Codec converts a session to and from its slot representation.
type Codec interface {
	Encode(sess domain.Session) (string, error)
	Decode(raw string) (domain.Session, error)
}

// JSONCodec stores {"user":{"id":...,"username":...}} verbatim.
type JSONCodec struct{}

func (JSONCodec) Encode(sess domain.Session) (string, error) {
	b, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (JSONCodec) Decode(raw string) (domain.Session, error) {
	var sess domain.Session
	err := json.Unmarshal([]byte(raw), &sess)
	return sess, err
}
