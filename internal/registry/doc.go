// Package registry resolves reference strings from configuration documents.
//
// A reference string is an opaque identifier naming a framework-provided
// component: a model architecture, an optimizer, a dataset reader, or an
// input transform. The registry holds the finite set of identifiers the
// training stack knows how to construct. Configuration loading rejects
// identifiers that are not registered, so a typo in a config document
// fails at load time instead of deep inside the trainer.
//
// # Kinds
//
// Identifiers are namespaced by kind:
//
//	registry.KindModel      // "gapnet", ...
//	registry.KindOptimizer  // "sgd", "adam", ...
//	registry.KindReader     // "cell_image_reader", ...
//	registry.KindTransform  // "random_crop", "normalize", ...
//
// # Plugins
//
// External integrations can register additional identifiers before any
// config is loaded:
//
//	registry.Register(registry.KindModel, "gapnet_wide")
//
// Registration is not safe for concurrent use; do it from init or from
// main before loading configuration.
package registry
