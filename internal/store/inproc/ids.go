package inproc

import "github.com/google/uuid"

// MatchUUID is the IDMatcher for stores that assign UUIDs. Plain string
// identifiers compare verbatim.
func MatchUUID(v any, id string) bool {
	switch t := v.(type) {
	case uuid.UUID:
		parsed, err := uuid.Parse(id)
		return err == nil && parsed == t
	case string:
		return t == id
	default:
		return false
	}
}

// UUIDString is the identifier function for stores that assign UUIDs.
func UUIDString(v any) (string, bool) {
	id, ok := v.(uuid.UUID)
	if !ok {
		return "", false
	}
	return id.String(), true
}
