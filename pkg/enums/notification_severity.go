package enums

import "fmt"

// NotificationSeverity classifies user feedback emitted by the cart engine.
type NotificationSeverity string

const (
	NotificationSeveritySuccess NotificationSeverity = "success"
	NotificationSeverityError   NotificationSeverity = "error"
	NotificationSeverityInfo    NotificationSeverity = "info"
)

var validNotificationSeverities = []NotificationSeverity{
	NotificationSeveritySuccess,
	NotificationSeverityError,
	NotificationSeverityInfo,
}

// String implements fmt.Stringer.
func (n NotificationSeverity) String() string {
	return string(n)
}

// IsValid reports whether the value is a known NotificationSeverity.
func (n NotificationSeverity) IsValid() bool {
	for _, candidate := range validNotificationSeverities {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationSeverity converts raw input into a NotificationSeverity.
func ParseNotificationSeverity(value string) (NotificationSeverity, error) {
	for _, candidate := range validNotificationSeverities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification severity %q", value)
}
