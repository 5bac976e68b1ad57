package domain

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Budget is one annual budget document per profile-year. Paragraphs and items
// are two parallel classification axes; either collection may be absent.
type Budget struct {
	ID         primitive.ObjectID `bson:"_id"`
	Profile    primitive.ObjectID `bson:"profile"`
	Year       int                `bson:"year"`
	Paragraphs []Paragraph        `bson:"paragraphs"`
	Items      []Item             `bson:"items"`
}

// Paragraph is an expenditure-category line of a budget document. The declared
// totals may exceed the sum of the per-event amounts below them; the
// unattributed part is untracked residual spending.
type Paragraph struct {
	ID                      string           `bson:"id"`
	ExpenditureAmount       float64          `bson:"expenditureAmount"`
	BudgetExpenditureAmount float64          `bson:"budgetExpenditureAmount"`
	Events                  []ParagraphEvent `bson:"events"`
}

// ParagraphEvent is a per-event expenditure allocation within a paragraph,
// tracked in actual and budgeted variants.
type ParagraphEvent struct {
	Event                   primitive.ObjectID `bson:"event"`
	ExpenditureAmount       float64            `bson:"expenditureAmount"`
	BudgetExpenditureAmount float64            `bson:"budgetExpenditureAmount"`
}

// Item is an income/expenditure budget line. Unlike paragraphs it declares
// totals in both directions, each in actual and budgeted variants.
type Item struct {
	ID                      string      `bson:"id"`
	IncomeAmount            float64     `bson:"incomeAmount"`
	ExpenditureAmount       float64     `bson:"expenditureAmount"`
	BudgetIncomeAmount      float64     `bson:"budgetIncomeAmount"`
	BudgetExpenditureAmount float64     `bson:"budgetExpenditureAmount"`
	Events                  []ItemEvent `bson:"events"`
}

// ItemEvent is a per-event allocation within an item.
type ItemEvent struct {
	Event                   primitive.ObjectID `bson:"event"`
	IncomeAmount            float64            `bson:"incomeAmount"`
	ExpenditureAmount       float64            `bson:"expenditureAmount"`
	BudgetIncomeAmount      float64            `bson:"budgetIncomeAmount"`
	BudgetExpenditureAmount float64            `bson:"budgetExpenditureAmount"`
}

// Number converts a source-store code (paragraph, item, event srcId) to its
// numeric form. Empty or non-numeric values convert to 0, which callers treat
// as "absent" where eligibility matters.
func Number(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
