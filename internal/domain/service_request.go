package domain

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"
)

// ServiceRequestStatus represents the status of an on-demand service request
type ServiceRequestStatus string

const (
	RequestPending    ServiceRequestStatus = "PENDING"
	RequestAccepted   ServiceRequestStatus = "ACCEPTED"
	RequestInProgress ServiceRequestStatus = "IN_PROGRESS"
	RequestCompleted  ServiceRequestStatus = "COMPLETED"
	RequestCancelled  ServiceRequestStatus = "CANCELLED"
	RequestRejected   ServiceRequestStatus = "REJECTED"
)

// IsValid returns true for a known status
func (s ServiceRequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestInProgress, RequestCompleted, RequestCancelled, RequestRejected:
		return true
	default:
		return false
	}
}

// PaymentStatus of a service request
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// ServiceRequest is a geolocated on-demand request for a service type
type ServiceRequest struct {
	ID                int64
	ConsumerID        int64
	ServiceProviderID *int64
	ServiceTypeID     int64
	Location          GeoPoint
	ServiceAddress    string
	Status            ServiceRequestStatus
	OTPCode           string
	TotalCost         *float64
	PaymentStatus     PaymentStatus
	RequestedAt       time.Time
	AcceptedAt        *time.Time
	CompletedAt       *time.Time
	CancelledAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsAssignedTo returns true if the request is assigned to the provider
func (r *ServiceRequest) IsAssignedTo(providerID int64) bool {
	return r.ServiceProviderID != nil && *r.ServiceProviderID == providerID
}

// Accept assigns the provider after checking status and OTP
func (r *ServiceRequest) Accept(providerID int64, otp string, now time.Time) error {
	if r.Status != RequestPending {
		return r.transitionError("accept")
	}
	if subtle.ConstantTimeCompare([]byte(r.OTPCode), []byte(otp)) != 1 {
		return ErrOTPMismatch
	}
	r.ServiceProviderID = &providerID
	r.Status = RequestAccepted
	r.AcceptedAt = &now
	return nil
}

// Start moves an accepted request to IN_PROGRESS
func (r *ServiceRequest) Start() error {
	if r.Status != RequestAccepted {
		return r.transitionError("start")
	}
	r.Status = RequestInProgress
	return nil
}

// Complete finishes an in-progress request, optionally recording the cost
func (r *ServiceRequest) Complete(totalCost *float64, now time.Time) error {
	if r.Status != RequestInProgress {
		return r.transitionError("complete")
	}
	r.Status = RequestCompleted
	r.CompletedAt = &now
	if totalCost != nil {
		r.TotalCost = totalCost
	}
	return nil
}

// Cancel is allowed from every status except COMPLETED and CANCELLED
func (r *ServiceRequest) Cancel(now time.Time) error {
	if r.Status == RequestCompleted || r.Status == RequestCancelled {
		return r.transitionError("cancel")
	}
	r.Status = RequestCancelled
	r.CancelledAt = &now
	return nil
}

// Reject moves an accepted request to REJECTED and clears the assignment
func (r *ServiceRequest) Reject() error {
	if r.Status != RequestAccepted {
		return r.transitionError("reject")
	}
	r.Status = RequestRejected
	r.ServiceProviderID = nil
	r.AcceptedAt = nil
	return nil
}

func (r *ServiceRequest) transitionError(action string) error {
	return &TransitionError{Entity: "service request", Action: action, Current: string(r.Status)}
}

// GenerateOTP returns a uniformly random numeric code of OTPLength digits
func GenerateOTP() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < OTPLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", OTPLength, n.Int64()), nil
}

// ServiceRequestFilter selects service requests for listing
type ServiceRequestFilter struct {
	ConsumerID        *int64
	ServiceProviderID *int64
	Status            *ServiceRequestStatus
	Limit             uint64
	Offset            uint64
}

// NearbyQuery searches open requests around a point
type NearbyQuery struct {
	Center        GeoPoint
	RadiusKm      float64
	ServiceTypeID *int64
	Limit         uint64
}

// NearbyServiceRequest is a search hit with its distance from the center
type NearbyServiceRequest struct {
	Request    *ServiceRequest
	DistanceKm float64
}
