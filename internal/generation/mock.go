package generation

import "context"

// MockGenerator returns a fixed response, or an error when Err is set.
// Useful for tests and offline runs.
type MockGenerator struct {
	Response string
	Err      error
	// Prompts records every prompt passed to Generate.
	Prompts []string
}

// Generate returns the configured response.
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
