package enums

import "fmt"

// DependencyType describes how a follow-up action depends on another.
type DependencyType string

const (
	// DependencyTypeSequential blocks the dependent action from starting
	// until the prerequisite is done.
	DependencyTypeSequential DependencyType = "sequential"
	// DependencyTypeParallel records a relationship without blocking.
	DependencyTypeParallel DependencyType = "parallel"
)

var validDependencyTypes = []DependencyType{
	DependencyTypeSequential,
	DependencyTypeParallel,
}

// String implements fmt.Stringer.
func (d DependencyType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DependencyType.
func (d DependencyType) IsValid() bool {
	for _, candidate := range validDependencyTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDependencyType converts raw input into a DependencyType.
func ParseDependencyType(value string) (DependencyType, error) {
	for _, candidate := range validDependencyTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid dependency type %q", value)
}
