package enums

import "fmt"

// IssueType classifies what went wrong with a received part order.
type IssueType string

const (
	IssueTypeWrongQuantity IssueType = "wrong_quantity"
	IssueTypeWrongPart     IssueType = "wrong_part"
	IssueTypeDamaged       IssueType = "damaged"
	IssueTypeOther         IssueType = "other"
)

var validIssueTypes = []IssueType{
	IssueTypeWrongQuantity,
	IssueTypeWrongPart,
	IssueTypeDamaged,
	IssueTypeOther,
}

// String implements fmt.Stringer.
func (i IssueType) String() string {
	return string(i)
}

// IsValid reports whether the value is a known IssueType.
func (i IssueType) IsValid() bool {
	for _, candidate := range validIssueTypes {
		if candidate == i {
			return true
		}
	}
	return false
}

// RequiresQuantities reports whether both ordered and received quantities
// must be present for this issue type.
func (i IssueType) RequiresQuantities() bool {
	return i == IssueTypeWrongQuantity
}

// RequiresPartReceived reports whether the part_received field must be
// present for this issue type.
func (i IssueType) RequiresPartReceived() bool {
	return i == IssueTypeWrongPart
}

// ParseIssueType converts raw input into an IssueType.
func ParseIssueType(value string) (IssueType, error) {
	for _, candidate := range validIssueTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid issue type %q", value)
}
