// Package domain holds the application record and the view models derived from it.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApplicationState is the lifecycle stage of an application.
type ApplicationState string

const (
	StatePending   ApplicationState = "pending"
	StateActivated ApplicationState = "activated"
	StateInReview  ApplicationState = "in_review"
	StateClosed    ApplicationState = "closed"
	StateDeclined  ApplicationState = "declined"
)

var stateDescriptions = map[ApplicationState]string{
	StatePending:   "Pending",
	StateActivated: "Activated",
	StateInReview:  "In Review",
	StateClosed:    "Closed",
	StateDeclined:  "Declined",
}

// Description returns the human readable label of the state.
func (s ApplicationState) Description() string {
	if d, ok := stateDescriptions[s]; ok {
		return d
	}
	return string(s)
}

func (s ApplicationState) String() string { return string(s) }

type Person struct {
	FirstName string `json:"firstName"`
	Surname   string `json:"surname"`
}

// FullName joins first name and surname with a single space.
func (p Person) FullName() string {
	return p.FirstName + " " + p.Surname
}

type LegalEntity struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registrationNumber"`
}

type Fund struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Fees   decimal.Decimal `json:"fees"`
}

type Product struct {
	Name  string `json:"name"`
	Funds []Fund `json:"funds"`
}

// Review is the reason an application was moved into review.
type Review struct {
	Reason    string    `json:"reason"`
	CreatedOn time.Time `json:"createdOn"`
}

// Application is a read-only snapshot of an application record.
type Application struct {
	ID              uuid.UUID        `json:"id"`
	State           ApplicationState `json:"state"`
	Person          Person           `json:"person"`
	ReferenceNumber string           `json:"referenceNumber"`
	Date            time.Time        `json:"appliedOn"`
	IsLegalEntity   bool             `json:"isLegalEntity"`
	LegalEntity     *LegalEntity     `json:"legalEntity,omitempty"`
	Products        []Product        `json:"products"`
	CurrentReview   *Review          `json:"currentReview,omitempty"`
}
