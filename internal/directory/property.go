package directory

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/deploymenttheory/go-cfb/internal/filetime"
)

// Property names an entry attribute settable from untyped input such as a manifest.
type Property string

const (
	PropertyClassID   Property = "clsid"
	PropertyCreated   Property = "created"
	PropertyModified  Property = "modified"
	PropertyUserFlags Property = "user_flags"
)

// Set assigns an untyped value to a property, checking its Go type first.
func (e *Entry) Set(p Property, value any) error {
	switch p {
	case PropertyClassID:
		return e.setClassIDValue(value)
	case PropertyCreated:
		ft, err := toFiletime(p, value)
		if err != nil {
			return err
		}
		return e.SetCreated(ft)
	case PropertyModified:
		ft, err := toFiletime(p, value)
		if err != nil {
			return err
		}
		return e.SetModified(ft)
	case PropertyUserFlags:
		flags, err := toUint32(p, value)
		if err != nil {
			return err
		}
		e.SetUserFlags(flags)
		return nil
	default:
		return fmt.Errorf("%w: unknown property %q", ErrInvalidOperation, p)
	}
}

func (e *Entry) setClassIDValue(value any) error {
	switch v := value.(type) {
	case uuid.UUID:
		return e.SetClassID(v)
	case [16]byte:
		return e.SetClassIDBytes(v[:])
	case []byte:
		return e.SetClassIDBytes(v)
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrTypeMismatch, PropertyClassID, err)
		}
		return e.SetClassID(id)
	default:
		return mismatch(PropertyClassID, value)
	}
}

func toFiletime(p Property, value any) (filetime.Filetime, error) {
	switch v := value.(type) {
	case filetime.Filetime:
		return v, nil
	case time.Time:
		return filetime.FromTime(v), nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return filetime.Null(), fmt.Errorf("%w: %s: %v", ErrTypeMismatch, p, err)
		}
		return filetime.FromTime(t), nil
	default:
		return filetime.Null(), mismatch(p, value)
	}
}

func toUint32(p Property, value any) (uint32, error) {
	var n int64
	switch v := value.(type) {
	case uint32:
		return v, nil
	case int:
		n = int64(v)
	case int64:
		n = v
	case uint64:
		if v > math.MaxUint32 {
			return 0, fmt.Errorf("%w: %s value %d exceeds 32 bits", ErrValueTooLarge, p, v)
		}
		return uint32(v), nil
	default:
		return 0, mismatch(p, value)
	}
	if n < 0 || n > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %s value %d outside 0..%d", ErrValueTooLarge, p, n, uint32(math.MaxUint32))
	}
	return uint32(n), nil
}

func mismatch(p Property, value any) error {
	return fmt.Errorf("%w: %s cannot be set from %T", ErrTypeMismatch, p, value)
}
