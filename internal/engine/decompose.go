// Package engine implements the budget-to-ledger decomposition: it flattens
// the hierarchical annual budget documents into accounting entries such that
// per-event allocations plus one residual entry always sum back to the
// declared totals.
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/cityvizor/pg-migrate/internal/domain"
)

// EventResolver reports the numeric ledger id for a source event reference, or
// nil when the event was never migrated. *idmap.Map satisfies this.
type EventResolver interface {
	Event(externalID string) *int64
}

// Decompose flattens one budget document into accounting entries for the given
// relational profile id. Paragraphs and items are processed independently, in
// document order. Events that do not resolve are skipped entirely; they
// contribute nothing and are not folded into the residual.
func Decompose(b domain.Budget, profileID int64, events EventResolver) []domain.AccountingEntry {
	var out []domain.AccountingEntry
	for _, p := range b.Paragraphs {
		out = append(out, decomposeParagraph(b, profileID, p, events)...)
	}
	for _, it := range b.Items {
		entries, _ := decomposeItem(b, profileID, it, events)
		out = append(out, entries...)
	}
	return out
}

// decomposeParagraph emits one UCT and one ROZ entry per resolvable paragraph
// event, decrementing the running remainders, then one residual entry per type
// for whatever part of the declared totals stayed unattributed. Remainders are
// written even when negative: tracked events exceeding the declared total is a
// genuine accounting discrepancy that auditors need to see, not clamp away.
func decomposeParagraph(b domain.Budget, profileID int64, p domain.Paragraph, events EventResolver) []domain.AccountingEntry {
	paragraph := domain.Number(p.ID)

	actual := decimal.NewFromFloat(p.ExpenditureAmount)
	planned := decimal.NewFromFloat(p.BudgetExpenditureAmount)

	var out []domain.AccountingEntry
	for _, ev := range p.Events {
		event := events.Event(ev.Event.Hex())
		if event == nil {
			continue
		}

		amount := decimal.NewFromFloat(ev.ExpenditureAmount)
		out = append(out, domain.AccountingEntry{
			ProfileID: profileID,
			Year:      b.Year,
			Type:      domain.EntryActual,
			Paragraph: &paragraph,
			Event:     event,
			Amount:    amount,
		})
		actual = actual.Sub(amount)

		amount = decimal.NewFromFloat(ev.BudgetExpenditureAmount)
		out = append(out, domain.AccountingEntry{
			ProfileID: profileID,
			Year:      b.Year,
			Type:      domain.EntryPlanned,
			Paragraph: &paragraph,
			Event:     event,
			Amount:    amount,
		})
		planned = planned.Sub(amount)
	}

	if !actual.IsZero() {
		out = append(out, domain.AccountingEntry{
			ProfileID: profileID,
			Year:      b.Year,
			Type:      domain.EntryActual,
			Paragraph: &paragraph,
			Amount:    actual,
		})
	}
	if !planned.IsZero() {
		out = append(out, domain.AccountingEntry{
			ProfileID: profileID,
			Year:      b.Year,
			Type:      domain.EntryPlanned,
			Paragraph: &paragraph,
			Amount:    planned,
		})
	}

	return out
}

// itemRemainders holds the four independent running remainders of one item
// after decomposition, exposed for tests of the remainder arithmetic.
type itemRemainders struct {
	income            decimal.Decimal
	expenditure       decimal.Decimal
	budgetIncome      decimal.Decimal
	budgetExpenditure decimal.Decimal
}

// decomposeItem is the item-axis counterpart of decomposeParagraph. Items
// track income and expenditure independently, but each emitted entry carries a
// single amount: the larger of the two dimensions. The residual is emitted
// when either remainder is non-zero while its amount is the max of the two --
// this asymmetry matches the upstream consumer and must not be normalized.
func decomposeItem(b domain.Budget, profileID int64, it domain.Item, events EventResolver) ([]domain.AccountingEntry, itemRemainders) {
	item := domain.Number(it.ID)

	rem := itemRemainders{
		income:            decimal.NewFromFloat(it.IncomeAmount),
		expenditure:       decimal.NewFromFloat(it.ExpenditureAmount),
		budgetIncome:      decimal.NewFromFloat(it.BudgetIncomeAmount),
		budgetExpenditure: decimal.NewFromFloat(it.BudgetExpenditureAmount),
	}

	var out []domain.AccountingEntry
	for _, ev := range it.Events {
		event := events.Event(ev.Event.Hex())
		if event == nil {
			continue
		}

		income := decimal.NewFromFloat(ev.IncomeAmount)
		expenditure := decimal.NewFromFloat(ev.ExpenditureAmount)
		out = append(out, domain.AccountingEntry{
			ProfileID: profileID,
			Year:      b.Year,
			Type:      domain.EntryActual,
			Item:      &item,
			Event:     event,
			Amount:    decimal.Max(income, expenditure),
		})
		rem.income = rem.income.Sub(income)
		rem.expenditure = rem.expenditure.Sub(expenditure)

		income = decimal.NewFromFloat(ev.BudgetIncomeAmount)
		expenditure = decimal.NewFromFloat(ev.BudgetExpenditureAmount)
		out = append(out, domain.AccountingEntry{
			ProfileID: profileID,
			Year:      b.Year,
			Type:      domain.EntryPlanned,
			Item:      &item,
			Event:     event,
			Amount:    decimal.Max(income, expenditure),
		})
		rem.budgetIncome = rem.budgetIncome.Sub(income)
		rem.budgetExpenditure = rem.budgetExpenditure.Sub(expenditure)
	}

	if !rem.income.IsZero() || !rem.expenditure.IsZero() {
		out = append(out, domain.AccountingEntry{
			ProfileID: profileID,
			Year:      b.Year,
			Type:      domain.EntryActual,
			Item:      &item,
			Amount:    decimal.Max(rem.income, rem.expenditure),
		})
	}
	if !rem.budgetIncome.IsZero() || !rem.budgetExpenditure.IsZero() {
		out = append(out, domain.AccountingEntry{
			ProfileID: profileID,
			Year:      b.Year,
			Type:      domain.EntryPlanned,
			Item:      &item,
			Amount:    decimal.Max(rem.budgetIncome, rem.budgetExpenditure),
		})
	}

	return out, rem
}
