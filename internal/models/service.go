package models

// ServiceType describes how a service is charged over a stay.
type ServiceType string

const (
	// ServiceOneTime is charged once per booking regardless of stay length.
	ServiceOneTime ServiceType = "one_time"
	// ServiceDaily is charged for every day of the stay.
	ServiceDaily ServiceType = "daily"
)

// ParseServiceType validates a raw charge-type value.
func ParseServiceType(s string) (ServiceType, bool) {
	switch ServiceType(s) {
	case ServiceOneTime, ServiceDaily:
		return ServiceType(s), true
	}
	return "", false
}

type Service struct {
	ID          int64       `json:"service_id"`
	Name        string      `json:"service_name"`
	Price       float64     `json:"price"`
	Description string      `json:"description"`
	Type        ServiceType `json:"service_type"`
	Available   bool        `json:"availability"`
}

// ServiceCharge is the slice of a service needed by the billing calculator.
type ServiceCharge struct {
	ServiceID int64
	Price     float64
	Type      ServiceType
}
