package engine

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cityvizor/pg-migrate/internal/domain"
	"github.com/cityvizor/pg-migrate/internal/idmap"
)

func resolverWith(t *testing.T, refs map[primitive.ObjectID]int64) *idmap.Map {
	t.Helper()
	m := idmap.New()
	for ref, id := range refs {
		m.RecordEvent(ref.Hex(), id)
	}
	return m
}

func entriesOfType(entries []domain.AccountingEntry, typ domain.EntryType) []domain.AccountingEntry {
	var out []domain.AccountingEntry
	for _, e := range entries {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func sumAmounts(entries []domain.AccountingEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	return sum
}

func TestDecomposeParagraphResidual(t *testing.T) {
	ref := primitive.NewObjectID()
	events := resolverWith(t, map[primitive.ObjectID]int64{ref: 101})

	b := domain.Budget{
		Year: 2019,
		Paragraphs: []domain.Paragraph{{
			ID:                      "2212",
			ExpenditureAmount:       100,
			BudgetExpenditureAmount: 120,
			Events: []domain.ParagraphEvent{{
				Event:                   ref,
				ExpenditureAmount:       60,
				BudgetExpenditureAmount: 50,
			}},
		}},
	}

	entries := Decompose(b, 7, events)

	uct := entriesOfType(entries, domain.EntryActual)
	if len(uct) != 2 {
		t.Fatalf("got %d UCT entries, want 2", len(uct))
	}
	if !uct[0].Amount.Equal(decimal.NewFromInt(60)) || uct[0].Event == nil || *uct[0].Event != 101 {
		t.Errorf("event entry = %+v, want amount 60 with event 101", uct[0])
	}
	if !uct[1].Amount.Equal(decimal.NewFromInt(40)) || uct[1].Event != nil {
		t.Errorf("residual entry = %+v, want amount 40 with null event", uct[1])
	}
	for _, e := range uct {
		if e.Paragraph == nil || *e.Paragraph != 2212 || e.Item != nil {
			t.Errorf("entry = %+v, want paragraph 2212 and null item", e)
		}
	}

	roz := entriesOfType(entries, domain.EntryPlanned)
	if len(roz) != 2 {
		t.Fatalf("got %d ROZ entries, want 2", len(roz))
	}
	if !roz[1].Amount.Equal(decimal.NewFromInt(70)) || roz[1].Event != nil {
		t.Errorf("planned residual = %+v, want amount 70 with null event", roz[1])
	}

	// Per type, event entries plus the residual reconstruct the declared total.
	if got := sumAmounts(uct); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("UCT sum = %s, want declared total 100", got)
	}
	if got := sumAmounts(roz); !got.Equal(decimal.NewFromInt(120)) {
		t.Errorf("ROZ sum = %s, want declared total 120", got)
	}
}

func TestDecomposeParagraphOverAllocated(t *testing.T) {
	ref := primitive.NewObjectID()
	events := resolverWith(t, map[primitive.ObjectID]int64{ref: 33})

	b := domain.Budget{
		Year: 2020,
		Paragraphs: []domain.Paragraph{{
			ID:                "3111",
			ExpenditureAmount: 100,
			Events: []domain.ParagraphEvent{{
				Event:             ref,
				ExpenditureAmount: 150,
			}},
		}},
	}

	uct := entriesOfType(Decompose(b, 1, events), domain.EntryActual)
	if len(uct) != 2 {
		t.Fatalf("got %d UCT entries, want 2", len(uct))
	}
	// The negative residual is preserved, not clamped or omitted.
	if !uct[1].Amount.Equal(decimal.NewFromInt(-50)) {
		t.Errorf("residual amount = %s, want -50", uct[1].Amount)
	}
}

func TestDecomposeParagraphFullyAllocated(t *testing.T) {
	ref := primitive.NewObjectID()
	events := resolverWith(t, map[primitive.ObjectID]int64{ref: 5})

	b := domain.Budget{
		Paragraphs: []domain.Paragraph{{
			ID:                      "6171",
			ExpenditureAmount:       60,
			BudgetExpenditureAmount: 80,
			Events: []domain.ParagraphEvent{{
				Event:                   ref,
				ExpenditureAmount:       60,
				BudgetExpenditureAmount: 80,
			}},
		}},
	}

	entries := Decompose(b, 1, events)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (no residuals when fully allocated)", len(entries))
	}
	for _, e := range entries {
		if e.Event == nil {
			t.Errorf("unexpected residual entry: %+v", e)
		}
	}
}

func TestDecomposeSkipsUnresolvedEvents(t *testing.T) {
	// The referenced event was never migrated: its allocation contributes
	// nothing and the whole declared total becomes the residual.
	b := domain.Budget{
		Paragraphs: []domain.Paragraph{{
			ID:                "2310",
			ExpenditureAmount: 100,
			Events: []domain.ParagraphEvent{{
				Event:             primitive.NewObjectID(),
				ExpenditureAmount: 60,
			}},
		}},
	}

	uct := entriesOfType(Decompose(b, 1, idmap.New()), domain.EntryActual)
	if len(uct) != 1 {
		t.Fatalf("got %d UCT entries, want 1", len(uct))
	}
	if !uct[0].Amount.Equal(decimal.NewFromInt(100)) || uct[0].Event != nil {
		t.Errorf("entry = %+v, want residual of 100 with null event", uct[0])
	}
}

func TestDecomposeItemMaxOfDimensions(t *testing.T) {
	ref := primitive.NewObjectID()
	events := resolverWith(t, map[primitive.ObjectID]int64{ref: 900})

	it := domain.Item{
		ID:                "5171",
		IncomeAmount:      100,
		ExpenditureAmount: 40,
		Events: []domain.ItemEvent{{
			Event:             ref,
			IncomeAmount:      30,
			ExpenditureAmount: 40,
		}},
	}

	entries, rem := decomposeItem(domain.Budget{Year: 2021}, 2, it, events)

	uct := entriesOfType(entries, domain.EntryActual)
	if len(uct) != 2 {
		t.Fatalf("got %d UCT entries, want 2", len(uct))
	}
	// Event entry carries the larger dimension, not the sum.
	if !uct[0].Amount.Equal(decimal.NewFromInt(40)) {
		t.Errorf("event entry amount = %s, want max(30, 40) = 40", uct[0].Amount)
	}
	// Both remainders are decremented by their own dimension.
	if !rem.income.Equal(decimal.NewFromInt(70)) {
		t.Errorf("income remainder = %s, want 70", rem.income)
	}
	if !rem.expenditure.IsZero() {
		t.Errorf("expenditure remainder = %s, want 0", rem.expenditure)
	}
	if !uct[1].Amount.Equal(decimal.NewFromInt(70)) || uct[1].Event != nil {
		t.Errorf("residual = %+v, want amount max(70, 0) = 70 with null event", uct[1])
	}
	if uct[1].Item == nil || *uct[1].Item != 5171 || uct[1].Paragraph != nil {
		t.Errorf("residual = %+v, want item 5171 and null paragraph", uct[1])
	}
}

// Pins the residual guard/amount split: the residual is emitted whenever
// either remainder is non-zero, while the emitted amount is the max of the
// two. With remainders 0 and -10 that yields a zero-amount residual row.
func TestDecomposeItemResidualGuardAsymmetry(t *testing.T) {
	ref := primitive.NewObjectID()
	events := resolverWith(t, map[primitive.ObjectID]int64{ref: 12})

	it := domain.Item{
		ID:                "6121",
		IncomeAmount:      50,
		ExpenditureAmount: 50,
		Events: []domain.ItemEvent{{
			Event:             ref,
			IncomeAmount:      50,
			ExpenditureAmount: 60,
		}},
	}

	entries, rem := decomposeItem(domain.Budget{}, 1, it, events)

	if !rem.income.IsZero() || !rem.expenditure.Equal(decimal.NewFromInt(-10)) {
		t.Fatalf("remainders = (%s, %s), want (0, -10)", rem.income, rem.expenditure)
	}

	uct := entriesOfType(entries, domain.EntryActual)
	if len(uct) != 2 {
		t.Fatalf("got %d UCT entries, want 2 (residual must still be emitted)", len(uct))
	}
	if !uct[1].Amount.IsZero() || uct[1].Event != nil {
		t.Errorf("residual = %+v, want zero amount with null event", uct[1])
	}
}

func TestDecomposeItemRemaindersReachZero(t *testing.T) {
	ref := primitive.NewObjectID()
	events := resolverWith(t, map[primitive.ObjectID]int64{ref: 3})

	it := domain.Item{
		ID:                      "1014",
		IncomeAmount:            25.5,
		ExpenditureAmount:       12.25,
		BudgetIncomeAmount:      30,
		BudgetExpenditureAmount: 30,
		Events: []domain.ItemEvent{{
			Event:                   ref,
			IncomeAmount:            25.5,
			ExpenditureAmount:       12.25,
			BudgetIncomeAmount:      30,
			BudgetExpenditureAmount: 30,
		}},
	}

	entries, rem := decomposeItem(domain.Budget{}, 1, it, events)

	for _, r := range []decimal.Decimal{rem.income, rem.expenditure, rem.budgetIncome, rem.budgetExpenditure} {
		if !r.IsZero() {
			t.Errorf("remainder = %s, want 0", r)
		}
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2 (no residuals)", len(entries))
	}
}

func TestDecomposeDeterministic(t *testing.T) {
	pe := primitive.NewObjectID()
	ie := primitive.NewObjectID()
	events := resolverWith(t, map[primitive.ObjectID]int64{pe: 1, ie: 2})

	b := domain.Budget{
		Year: 2022,
		Paragraphs: []domain.Paragraph{{
			ID:                      "2212",
			ExpenditureAmount:       100,
			BudgetExpenditureAmount: 90,
			Events: []domain.ParagraphEvent{{
				Event:                   pe,
				ExpenditureAmount:       60,
				BudgetExpenditureAmount: 90,
			}},
		}},
		Items: []domain.Item{{
			ID:                      "5331",
			IncomeAmount:            10,
			ExpenditureAmount:       20,
			BudgetIncomeAmount:      10,
			BudgetExpenditureAmount: 20,
			Events: []domain.ItemEvent{{
				Event:             ie,
				IncomeAmount:      10,
				ExpenditureAmount: 5,
			}},
		}},
	}

	first := Decompose(b, 9, events)
	second := Decompose(b, 9, events)
	if !reflect.DeepEqual(first, second) {
		t.Error("Decompose is not deterministic for identical input")
	}
}
