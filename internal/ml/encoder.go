package ml

// LabelEncoder maps categorical values to the integer codes the model was
// trained with. Classes keep the fitted (sorted) order of the artifact.
type LabelEncoder struct {
	Classes []string `json:"classes"`
}

// Encode returns the code for value, or (0, false) when the label was never
// seen during training. Callers decide the unseen-label policy; every model
// in this service falls back to code 0.
func (e *LabelEncoder) Encode(value string) (int, bool) {
	for i, c := range e.Classes {
		if c == value {
			return i, true
		}
	}
	return 0, false
}

func (e *LabelEncoder) Decode(code int) (string, bool) {
	if code < 0 || code >= len(e.Classes) {
		return "", false
	}
	return e.Classes[code], true
}

func (e *LabelEncoder) Contains(value string) bool {
	_, ok := e.Encode(value)
	return ok
}
