package types

// Category represents service categories
type Category string

const (
	CategoryBrowser Category = "browser"
)

// Service represents a service definition
type Service struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Tools       []Tool   `json:"tools"`
}

// Tool represents a service tool
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
	ReadOnly    bool        `json:"read_only"`
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Required    bool        `json:"required"`
	Default     interface{} `json:"default,omitempty"`
	Minimum     *float64    `json:"minimum,omitempty"`
}

// Result represents a service execution result. Text is the payload handed
// back to the caller; Data optionally carries the same payload structured.
type Result struct {
	Success bool                   `json:"success"`
	Text    string                 `json:"text,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
	Kind    string                 `json:"kind,omitempty"`
}

// Success creates successful result
func Success(text string, data map[string]interface{}) (*Result, error) {
	return &Result{Success: true, Text: text, Data: data}, nil
}

// Failure creates failed result of the given kind
func Failure(kind, message string) (*Result, error) {
	msg := message
	return &Result{Success: false, Error: &msg, Kind: kind}, nil
}

// Message returns the error message, or "" for successful results.
func (r *Result) Message() string {
	if r.Error == nil {
		return ""
	}
	return *r.Error
}
