package field

import (
	"fmt"
	"strings"
)

// Normalize validates f, applies the registration defaults and pins the storage
// type. The returned descriptor is a copy; option slices are cloned so later
// changes to the caller's value do not leak into a queue.
func Normalize(f Field, storage StorageType) (Field, error) {
	f, err := deref(f)
	if err != nil {
		return nil, err
	}

	base := f.Base()
	base.Name = strings.TrimSpace(base.Name)
	if base.Name == "" {
		return nil, ErrNameRequired
	}

	switch storage {
	case StorageMeta, StorageOption:
		base.Storage = storage
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorage, storage)
	}

	switch {
	case f.Kind() == KindCheckbox:
		base.DataType = DataBool
	case base.DataType == "":
		base.DataType = DataString
	case !base.DataType.Valid():
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataType, base.DataType)
	}

	switch v := f.(type) {
	case Number:
		if strings.TrimSpace(v.Step) == "" {
			return nil, fmt.Errorf("%w for %q", ErrStepRequired, base.Name)
		}
	case Input:
		if strings.TrimSpace(v.Type) == "" {
			return nil, fmt.Errorf("%w for %q", ErrInputTypeRequired, base.Name)
		}
	}

	return f.withBase(base), nil
}

func deref(f Field) (Field, error) {
	switch v := f.(type) {
	case nil:
		return nil, ErrNilField
	case *Text:
		if v == nil {
			return nil, ErrNilField
		}
		return *v, nil
	case *Number:
		if v == nil {
			return nil, ErrNilField
		}
		return *v, nil
	case *Checkbox:
		if v == nil {
			return nil, ErrNilField
		}
		return *v, nil
	case *Radio:
		if v == nil {
			return nil, ErrNilField
		}
		return *v, nil
	case *Select:
		if v == nil {
			return nil, ErrNilField
		}
		return *v, nil
	case *Image:
		if v == nil {
			return nil, ErrNilField
		}
		return *v, nil
	case *RichText:
		if v == nil {
			return nil, ErrNilField
		}
		return *v, nil
	case *Input:
		if v == nil {
			return nil, ErrNilField
		}
		return *v, nil
	default:
		return f, nil
	}
}
