package transport

import (
	"encoding/json"
	"fmt"
)

// Endpoints share no uniform payload member: one returns its data under
// "data", another under "members", "tickets", "news", "holiday", "epins" and
// so on. Callers therefore name the member they expect; only "success" and
// "message" are common to every response.
type envelope struct {
	success bool
	message string
	members map[string]json.RawMessage
}

func decodeEnvelope(body []byte) (*envelope, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		return nil, fmt.Errorf("decode response envelope: %w", err)
	}

	env := &envelope{members: members}

	if raw, ok := members["success"]; ok {
		if err := json.Unmarshal(raw, &env.success); err != nil {
			return nil, fmt.Errorf("decode success flag: %w", err)
		}
	}
	if raw, ok := members["message"]; ok {
		// Tolerate non-string messages; some endpoints use "message" as a
		// status value rather than an error description.
		_ = json.Unmarshal(raw, &env.message)
	}

	return env, nil
}

// extract unmarshals the named payload member into out. Reports false when
// the member is absent.
func (e *envelope) extract(payloadKey string, out any) (bool, error) {
	raw, ok := e.members[payloadKey]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("decode %q payload: %w", payloadKey, err)
	}
	return true, nil
}
