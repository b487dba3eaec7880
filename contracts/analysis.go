package contracts

// Analysis holds the AI derived extraction attached to a call. Vapi has
// shipped it in two shapes: the current structuredOutputs mapping of named
// outputs and the deprecated flat structuredData mapping.
type Analysis struct {
	StructuredOutputs map[string]StructuredOutput `json:"structuredOutputs,omitempty"`
	StructuredData    map[string]interface{}      `json:"structuredData,omitempty"`
}

// StructuredOutput is a single named extraction result
type StructuredOutput struct {
	Result map[string]interface{} `json:"result,omitempty"`
}

// StructuredOutputResult returns the result mapping of one entry of the
// current structuredOutputs shape, or nil when the shape is absent or empty.
// The assistants are configured with exactly one structured output, so when
// more than one is present the pick between them is unspecified.
func (a *Analysis) StructuredOutputResult() map[string]interface{} {
	if a == nil {
		return nil
	}
	for _, output := range a.StructuredOutputs {
		if len(output.Result) > 0 {
			return output.Result
		}
	}
	return nil
}

// FirstStructuredResult locates the extraction result, trying the current
// structuredOutputs shape first and the deprecated structuredData shape
// second. Returns nil when neither is populated.
func (a *Analysis) FirstStructuredResult() map[string]interface{} {
	if a == nil {
		return nil
	}
	if result := a.StructuredOutputResult(); result != nil {
		return result
	}
	if len(a.StructuredData) > 0 {
		return a.StructuredData
	}
	return nil
}
