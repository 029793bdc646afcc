package session

import (
	"errors"

	"github.com/vmihailenco/msgpack/v5"
)

// encode serializes a session for byte-oriented stores.
func encode(s *Session) ([]byte, error) {
	data, err := msgpack.Marshal(s)
	if err != nil {
		return nil, errors.Join(ErrCodec, err)
	}
	return data, nil
}

// decode restores a session written by encode.
func decode(data []byte) (*Session, error) {
	var s Session
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, errors.Join(ErrCodec, err)
	}
	if s.Token == "" {
		return nil, ErrInvalidSession
	}
	return &s, nil
}

// encodeData serializes only the data bag, used by column-oriented stores.
func encodeData(data map[string]any) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	b, err := msgpack.Marshal(data)
	if err != nil {
		return nil, errors.Join(ErrCodec, err)
	}
	return b, nil
}

func decodeData(b []byte) (map[string]any, error) {
	data := make(map[string]any)
	if len(b) == 0 {
		return data, nil
	}
	if err := msgpack.Unmarshal(b, &data); err != nil {
		return nil, errors.Join(ErrCodec, err)
	}
	return data, nil
}
