package service

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/strogmv/appdoc/internal/domain"
)

const (
	reviewMessageBase    = "Your application has been placed in review"
	reviewSuffixAddress  = " pending outstanding address verification for FICA purposes."
	reviewSuffixBank     = " pending outstanding bank account verification."
	reviewSuffixFallback = " because of suspicious account behaviour. Please contact support ASAP."
)

// ViewModelFactory projects applications into the view model of their state.
type ViewModelFactory struct {
	SupportEmail string
	Signature    string
	TaxRate      decimal.Decimal
}

func NewViewModelFactory(supportEmail, signature string, taxRate decimal.Decimal) *ViewModelFactory {
	return &ViewModelFactory{SupportEmail: supportEmail, Signature: signature, TaxRate: taxRate}
}

func (f *ViewModelFactory) base(app *domain.Application) domain.BaseView {
	return domain.BaseView{
		ReferenceNumber: app.ReferenceNumber,
		StateLabel:      app.State.Description(),
		FullName:        app.Person.FullName(),
		AppliedOn:       app.Date,
		SupportEmail:    f.SupportEmail,
		Signature:       f.Signature,
	}
}

func (f *ViewModelFactory) portfolio(app *domain.Application) domain.PortfolioView {
	var legal *domain.LegalEntity
	if app.IsLegalEntity && app.LegalEntity != nil {
		le := *app.LegalEntity
		legal = &le
	}
	funds := PortfolioFunds(app.Products)
	return domain.PortfolioView{
		LegalEntity:          legal,
		PortfolioFunds:       funds,
		PortfolioTotalAmount: PortfolioTotal(funds, f.TaxRate),
	}
}

func (f *ViewModelFactory) Pending(app *domain.Application) domain.PendingView {
	return domain.PendingView{BaseView: f.base(app)}
}

func (f *ViewModelFactory) Activated(app *domain.Application) domain.ActivatedView {
	return domain.ActivatedView{BaseView: f.base(app), PortfolioView: f.portfolio(app)}
}

func (f *ViewModelFactory) InReview(app *domain.Application) domain.InReviewView {
	var reason string
	var review *domain.Review
	if app.CurrentReview != nil {
		r := *app.CurrentReview
		review = &r
		reason = r.Reason
	}
	return domain.InReviewView{
		BaseView:          f.base(app),
		PortfolioView:     f.portfolio(app),
		ReviewMessage:     ReviewMessage(reason),
		ReviewInformation: review,
	}
}

// PortfolioFunds flattens funds in product order, then fund order within each product.
func PortfolioFunds(products []domain.Product) []domain.Fund {
	var funds []domain.Fund
	for _, p := range products {
		funds = append(funds, p.Funds...)
	}
	return funds
}

// PortfolioTotal sums (amount - fees) * taxRate over funds.
func PortfolioTotal(funds []domain.Fund, taxRate decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, fund := range funds {
		total = total.Add(fund.Amount.Sub(fund.Fees).Mul(taxRate))
	}
	return total
}

// ReviewMessage picks the review suffix by case-sensitive substring match on reason.
// "address" is checked before "bank".
func ReviewMessage(reason string) string {
	switch {
	case strings.Contains(reason, "address"):
		return reviewMessageBase + reviewSuffixAddress
	case strings.Contains(reason, "bank"):
		return reviewMessageBase + reviewSuffixBank
	default:
		return reviewMessageBase + reviewSuffixFallback
	}
}
