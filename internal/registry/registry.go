package registry

import (
	"fmt"
	"sort"

	"github.com/cellvision/trainctl/internal/errors"
)

// Kind classifies a reference string by the component it names.
type Kind string

const (
	KindModel     Kind = "model"
	KindOptimizer Kind = "optimizer"
	KindReader    Kind = "reader"
	KindTransform Kind = "transform"
)

// Kinds returns all identifier kinds in display order.
func Kinds() []Kind {
	return []Kind{KindModel, KindOptimizer, KindReader, KindTransform}
}

// known holds the registered identifiers per kind. The built-in sets match
// the components shipped with the training stack.
var known = map[Kind]map[string]bool{
	KindModel: {
		"gapnet":    true,
		"gapnet_bn": true,
	},
	KindOptimizer: {
		"sgd":  true,
		"adam": true,
	},
	KindReader: {
		"cell_image_reader": true,
		"image_folder":      true,
	},
	KindTransform: {
		"resize":       true,
		"center_crop":  true,
		"random_crop":  true,
		"random_flip":  true,
		"color_jitter": true,
		"normalize":    true,
	},
}

// Register adds an identifier to the registry. Registering an existing
// identifier is a no-op. Unknown kinds are rejected.
func Register(kind Kind, name string) error {
	set, ok := known[kind]
	if !ok {
		return fmt.Errorf("unknown registry kind: %s", kind)
	}
	if name == "" {
		return fmt.Errorf("cannot register empty %s identifier", kind)
	}
	set[name] = true
	return nil
}

// IsKnown reports whether name is a registered identifier of the given kind.
func IsKnown(kind Kind, name string) bool {
	return known[kind][name]
}

// Known returns the sorted registered identifiers of the given kind.
func Known(kind Kind) []string {
	set := known[kind]
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks a reference string against the registry. The field name is
// carried into the ValidationError so load failures identify the offending
// config field.
func Validate(kind Kind, field, name string) error {
	if name == "" {
		return errors.Validationf(field, "%s reference is required", kind)
	}
	if !IsKnown(kind, name) {
		return errors.Validationf(field, "unknown %s %q (known: %v)", kind, name, Known(kind))
	}
	return nil
}
