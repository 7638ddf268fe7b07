package packets

// CounterRequest carries raw user input for a counter field. The value is a
// string on purpose: anything unparsable clamps to 0 instead of failing.
type CounterRequest struct {
	Value string `json:"value"`
}

type CompletionRequest struct {
	Count string `json:"count"`
}

type SummaryRequest struct {
	Force bool `json:"force"`
}
