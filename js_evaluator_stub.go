//go:build !js_eval

package flatten

// NewJSEvaluator is unavailable without the js_eval build tag and returns
// nil. NewEvaluatorByName reports the missing tag as an argument error.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	_ = applyJSEvaluatorOptions(opts)
	return nil
}

func jsEvaluatorAvailable() bool {
	return false
}
