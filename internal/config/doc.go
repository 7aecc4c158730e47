// Package config resolves flatjson settings from layered sources.
//
// Sources are ranked defaults < file < env < flags. Each source produces a
// Layer whose pointer and slice fields stay nil when the source says
// nothing; MergeLayers folds them strongest-first so an unset field falls
// through to the next weaker source.
package config
