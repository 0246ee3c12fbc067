package req

import (
	"encoding/json"
	"io"
)

// maxBodySize ограничение тела запроса
const maxBodySize = 1 << 16

func Decode[T any](body io.Reader) (T, error) {
	var payload T
	dec := json.NewDecoder(io.LimitReader(body, maxBodySize))
	dec.DisallowUnknownFields()
	err := dec.Decode(&payload)
	if err != nil {
		return payload, err
	}
	return payload, nil
}
