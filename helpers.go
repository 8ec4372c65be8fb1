package typer

import (
	"time"

	"github.com/google/uuid"
)

///////////////////////////////////////////////////////////////////////////////
// Helpers
///////////////////////////////////////////////////////////////////////////////

// timeLayouts are tried in order when a string is converted to a time.
var timeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ToBool accepts booleans only. Strings such as "true" and integers
// such as 1 are rejected.
func ToBool(v Value) (bool, bool, error) {
	switch v.kind {
	case KindNull:
		return false, false, nil
	case KindBool:
		return v.b, true, nil
	default:
		return false, false, mismatch("bool", v)
	}
}

// ToUUID accepts strings in any form uuid.Parse understands.
func ToUUID(v Value) (uuid.UUID, bool, error) {
	switch v.kind {
	case KindNull:
		return uuid.Nil, false, nil
	case KindString:
		id, err := uuid.Parse(v.s)
		if err != nil {
			return uuid.Nil, false, newError(ErrInvalidValue, "error converting %q to UUID: %v", v.s, err)
		}
		return id, true, nil
	default:
		return uuid.Nil, false, mismatch("UUID", v)
	}
}

// ToTime accepts integers as Unix seconds and strings in one of
// timeLayouts. Times without a zone are read as UTC.
func ToTime(v Value) (time.Time, bool, error) {
	switch v.kind {
	case KindNull:
		return time.Time{}, false, nil
	case KindInt:
		return time.Unix(v.i, 0).UTC(), true, nil
	case KindString:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v.s); err == nil {
				return t, true, nil
			}
		}
		return time.Time{}, false, newError(ErrInvalidValue, "error converting %q to time", v.s)
	default:
		return time.Time{}, false, mismatch("time", v)
	}
}

func GetBool(root *Container, path ...Key) (bool, bool, error) {
	return Get(root, ToBool, path...)
}

func GetRequiredBool(root *Container, path ...Key) (bool, error) {
	return GetRequired(root, ToBool, path...)
}

func GetUUID(root *Container, path ...Key) (uuid.UUID, bool, error) {
	return Get(root, ToUUID, path...)
}

func GetRequiredUUID(root *Container, path ...Key) (uuid.UUID, error) {
	return GetRequired(root, ToUUID, path...)
}

func GetTime(root *Container, path ...Key) (time.Time, bool, error) {
	return Get(root, ToTime, path...)
}

func GetRequiredTime(root *Container, path ...Key) (time.Time, error) {
	return GetRequired(root, ToTime, path...)
}
