package models

// String methods for all custom string types.
// These are required for toon serialization, which uses fmt.Stringer.

// Category
func (c Category) String() string { return string(c) }

// Severity
func (s Severity) String() string { return string(s) }

// IssueTier
func (t IssueTier) String() string { return string(t) }

// ComplexityLabel
func (c ComplexityLabel) String() string { return string(c) }

// MaintainabilityLabel
func (m MaintainabilityLabel) String() string { return string(m) }
