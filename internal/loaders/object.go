package loaders

import (
	"datakit/internal/persist"
	"datakit/pkg/contracts/domain"
)

// LoadObject restores a value written by persist.SaveObject. A value that was
// saved from a domain.Frame comes back as a *domain.Frame; anything else is
// returned in its generic decoded form.
func LoadObject(path string, _ Options) (any, error) {
	v, err := persist.LoadObject(path)
	if err != nil {
		return nil, err
	}
	if f, ok := v.(domain.Frame); ok {
		return &f, nil
	}
	return v, nil
}
