package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ViewModel is the closed set of template projections of an Application.
type ViewModel interface {
	viewModel()
}

// BaseView carries the fields every application document shows.
type BaseView struct {
	ReferenceNumber string    `json:"referenceNumber"`
	StateLabel      string    `json:"state"`
	FullName        string    `json:"fullName"`
	AppliedOn       time.Time `json:"appliedOn"`
	SupportEmail    string    `json:"supportEmail"`
	Signature       string    `json:"signature"`
}

type PendingView struct {
	BaseView
}

// PortfolioView is shared by the states that show the funded portfolio.
type PortfolioView struct {
	LegalEntity          *LegalEntity    `json:"legalEntity"`
	PortfolioFunds       []Fund          `json:"portfolioFunds"`
	PortfolioTotalAmount decimal.Decimal `json:"portfolioTotalAmount"`
}

type ActivatedView struct {
	BaseView
	PortfolioView
}

type InReviewView struct {
	BaseView
	PortfolioView
	ReviewMessage     string  `json:"inReviewMessage"`
	ReviewInformation *Review `json:"inReviewInformation"`
}

func (PendingView) viewModel()   {}
func (ActivatedView) viewModel() {}
func (InReviewView) viewModel()  {}
