package validate

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sidereusnuntius/hermes/internal/domain"
)

const (
	MaxServiceTypes = 16
	MaxServiceLabel = 64
)

var ObjectTypes = []string{domain.PostType, domain.CommentType, domain.LikeType, domain.ProfileType}

// DispatchRequest reports every problem with a dispatch request at once.
func DispatchRequest(authorID int64, objectType string, objectID int64, opts domain.Options) error {
	var errs = []error{}

	errs = append(errs, ID("author_id", authorID))

	errs = append(errs, ObjectType(objectType))

	errs = append(errs, ID("object_id", objectID))

	errs = append(errs, ServiceTypes(opts))

	return errors.Join(errs...)
}

func ID(field string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%s must be positive", field)
	}
	return nil
}

func ObjectType(name string) error {
	switch {
	case name == "":
		return errors.New("empty object_type")
	case !slices.Contains(ObjectTypes, name):
		return fmt.Errorf("unsupported object_type %q", name)
	}
	return nil
}

// ServiceTypes checks the service_types option, which must be a label or a list of labels.
func ServiceTypes(opts domain.Options) error {
	raw, ok := opts[domain.ServiceTypesKey]
	if !ok {
		return nil
	}

	var labels []any
	switch v := raw.(type) {
	case string:
		labels = []any{v}
	case []any:
		labels = v
	default:
		return fmt.Errorf("%s must be a string or a list of strings", domain.ServiceTypesKey)
	}

	if len(labels) > MaxServiceTypes {
		return fmt.Errorf("too many %s; max %d", domain.ServiceTypesKey, MaxServiceTypes)
	}
	for _, l := range labels {
		s, ok := l.(string)
		if !ok {
			return fmt.Errorf("%s must be a string or a list of strings", domain.ServiceTypesKey)
		}
		if len(s) > MaxServiceLabel {
			return fmt.Errorf("service label too long; max %d characters", MaxServiceLabel)
		}
	}
	return nil
}
