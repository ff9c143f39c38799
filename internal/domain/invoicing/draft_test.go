package invoicing

import (
	"testing"
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestClient(companyName string) Client {
	return Client{ID: uuid.New(), CompanyName: companyName}
}

func createTestDraft(t *testing.T) *Draft {
	t.Helper()
	draft := NewDraft()
	require.NoError(t, draft.AttachClient(createTestClient("Acme Holdings")))
	return draft
}

func toggleTestItem(t *testing.T, draft *Draft, name string, price float64) CatalogItem {
	t.Helper()
	item := createTestCatalogItem(name, price)
	require.NoError(t, draft.ToggleItem(item))
	return item
}

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

// ============================================
// DraftStatus Tests
// ============================================

func TestDraftStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  DraftStatus
		isValid bool
	}{
		{DraftStatusEmpty, true},
		{DraftStatusClientAttached, true},
		{DraftStatusItemsPopulated, true},
		{DraftStatusSubmitted, true},
		{DraftStatus("INVALID"), false},
		{DraftStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestInvoiceStatus_IsValid(t *testing.T) {
	assert.True(t, InvoiceStatusDraft.IsValid())
	assert.True(t, InvoiceStatusPending.IsValid())
	assert.True(t, InvoiceStatusPaid.IsValid())
	assert.True(t, InvoiceStatusOverdue.IsValid())
	assert.False(t, InvoiceStatus("CLOSED").IsValid())
}

// ============================================
// NewDraft Tests
// ============================================

func TestNewDraft(t *testing.T) {
	t.Run("starts empty with zero totals", func(t *testing.T) {
		draft := NewDraft()

		assert.Equal(t, DraftStatusEmpty, draft.Status)
		assert.Equal(t, InvoiceStatusDraft, draft.InvoiceStatus)
		assert.Nil(t, draft.ClientID)
		assert.Empty(t, draft.Items)
		assert.Empty(t, draft.Number)
		assert.False(t, draft.NumberOverridden)
		assert.True(t, draft.Subtotal.IsZero())
		assert.True(t, draft.Tax.IsZero())
		assert.True(t, draft.Total.IsZero())
		assert.NotEmpty(t, draft.ID)
		assert.Equal(t, 1, draft.GetVersion())
	})

	t.Run("publishes DraftCreated event", func(t *testing.T) {
		draft := NewDraft()

		events := draft.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeDraftCreated, events[0].EventType())
	})
}

// ============================================
// AttachClient Tests
// ============================================

func TestDraft_AttachClient(t *testing.T) {
	t.Run("moves the draft to client attached", func(t *testing.T) {
		draft := NewDraft()
		client := createTestClient("Acme Holdings")

		require.NoError(t, draft.AttachClient(client))

		assert.Equal(t, DraftStatusClientAttached, draft.Status)
		require.NotNil(t, draft.ClientID)
		assert.Equal(t, client.ID, *draft.ClientID)
		assert.Equal(t, "Acme Holdings", draft.ClientCompanyName)
	})

	t.Run("clears the selection when the client changes", func(t *testing.T) {
		draft := createTestDraft(t)
		toggleTestItem(t, draft, "Hosting", 25)
		toggleTestItem(t, draft, "Support", 100)
		require.Equal(t, 2, draft.SelectionCount())

		require.NoError(t, draft.AttachClient(createTestClient("Globex")))

		assert.Equal(t, 0, draft.SelectionCount())
		assert.Equal(t, DraftStatusClientAttached, draft.Status)
		assert.True(t, draft.Subtotal.IsZero())
		assert.True(t, draft.Total.IsZero())
	})

	t.Run("fails with empty client id", func(t *testing.T) {
		draft := NewDraft()
		assertDomainErrorCode(t, draft.AttachClient(Client{}), "INVALID_CLIENT")
	})

	t.Run("fails after submission", func(t *testing.T) {
		draft := createTestDraft(t)
		toggleTestItem(t, draft, "Hosting", 25)
		require.NoError(t, draft.Submit(time.Now()))

		assertDomainErrorCode(t, draft.AttachClient(createTestClient("Globex")), "DRAFT_SUBMITTED")
	})

	t.Run("publishes ClientAttached event", func(t *testing.T) {
		draft := NewDraft()
		client := createTestClient("Acme Holdings")
		require.NoError(t, draft.AttachClient(client))

		events := draft.GetDomainEvents()
		require.Len(t, events, 2)
		event, ok := events[1].(*ClientAttachedEvent)
		require.True(t, ok)
		assert.Equal(t, client.ID, event.ClientID)
	})
}

// ============================================
// ToggleItem Tests
// ============================================

func TestDraft_ToggleItem(t *testing.T) {
	t.Run("adds an unselected item at quantity one with the default rate", func(t *testing.T) {
		draft := createTestDraft(t)
		require.NoError(t, draft.SetDefaultTaxRate(taxRate(t, 10)))

		item := toggleTestItem(t, draft, "Website redesign", 1000)

		require.Equal(t, 1, draft.SelectionCount())
		assert.True(t, draft.IsSelected(item.ID))
		assert.Equal(t, DraftStatusItemsPopulated, draft.Status)

		lineItem := draft.GetItem(item.ID)
		require.NotNil(t, lineItem)
		assert.Equal(t, int64(1), lineItem.Quantity)
		assert.Equal(t, "1100.00", lineItem.Amount.StringFixed(2))
	})

	t.Run("removes an already selected item", func(t *testing.T) {
		draft := createTestDraft(t)
		item := toggleTestItem(t, draft, "Hosting", 25)

		require.NoError(t, draft.ToggleItem(item))

		assert.False(t, draft.IsSelected(item.ID))
		assert.Equal(t, 0, draft.SelectionCount())
		assert.Equal(t, DraftStatusClientAttached, draft.Status)
	})

	t.Run("double toggle restores selection and totals exactly", func(t *testing.T) {
		draft := createTestDraft(t)
		require.NoError(t, draft.SetDefaultTaxRate(taxRate(t, 10)))
		toggleTestItem(t, draft, "Hosting", 25)

		before := draft.Totals()
		beforeCount := draft.SelectionCount()

		item := createTestCatalogItem("Support", 100)
		require.NoError(t, draft.ToggleItem(item))
		require.NoError(t, draft.ToggleItem(item))

		assert.Equal(t, beforeCount, draft.SelectionCount())
		assert.True(t, before.Subtotal.Equals(draft.Subtotal))
		assert.True(t, before.Tax.Equals(draft.Tax))
		assert.True(t, before.Total.Equals(draft.Total))
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		draft := createTestDraft(t)
		first := toggleTestItem(t, draft, "First", 10)
		second := toggleTestItem(t, draft, "Second", 20)
		third := toggleTestItem(t, draft, "Third", 30)

		require.NoError(t, draft.ToggleItem(second))

		require.Len(t, draft.Items, 2)
		assert.Equal(t, first.ID, draft.Items[0].CatalogItemID)
		assert.Equal(t, third.ID, draft.Items[1].CatalogItemID)
	})

	t.Run("fails without a client", func(t *testing.T) {
		draft := NewDraft()
		assertDomainErrorCode(t, draft.ToggleItem(createTestCatalogItem("Hosting", 25)), "INVALID_STATE")
	})

	t.Run("fails after submission", func(t *testing.T) {
		draft := createTestDraft(t)
		toggleTestItem(t, draft, "Hosting", 25)
		require.NoError(t, draft.Submit(time.Now()))

		assertDomainErrorCode(t, draft.ToggleItem(createTestCatalogItem("Support", 100)), "INVALID_STATE")
	})
}

// ============================================
// SetItemQuantity Tests
// ============================================

func TestDraft_SetItemQuantity(t *testing.T) {
	t.Run("updates quantity and recomputes totals", func(t *testing.T) {
		draft := createTestDraft(t)
		item := toggleTestItem(t, draft, "Hosting", 25)

		require.NoError(t, draft.SetItemQuantity(item.ID, 4))

		assert.Equal(t, int64(4), draft.GetItem(item.ID).Quantity)
		assert.Equal(t, "100.00", draft.Subtotal.StringFixed(2))
	})

	t.Run("non-positive quantity collapses to one", func(t *testing.T) {
		draft := createTestDraft(t)
		item := toggleTestItem(t, draft, "Hosting", 25)
		require.NoError(t, draft.SetItemQuantity(item.ID, 4))

		require.NoError(t, draft.SetItemQuantity(item.ID, -2))

		assert.Equal(t, int64(1), draft.GetItem(item.ID).Quantity)
	})

	t.Run("fails for an unselected item without creating it", func(t *testing.T) {
		draft := createTestDraft(t)
		toggleTestItem(t, draft, "Hosting", 25)

		err := draft.SetItemQuantity(uuid.New(), 3)

		assertDomainErrorCode(t, err, "NOT_SELECTED")
		assert.Equal(t, 1, draft.SelectionCount())
	})
}

// ============================================
// Tax Rate Tests
// ============================================

func TestDraft_SetItemTaxRate(t *testing.T) {
	t.Run("overrides one line independently of the default", func(t *testing.T) {
		draft := createTestDraft(t)
		require.NoError(t, draft.SetDefaultTaxRate(taxRate(t, 10)))
		first := toggleTestItem(t, draft, "Hosting", 100)
		second := toggleTestItem(t, draft, "Support", 100)

		require.NoError(t, draft.SetItemTaxRate(first.ID, taxRate(t, 20)))

		assert.Equal(t, "120.00", draft.GetItem(first.ID).Amount.StringFixed(2))
		assert.Equal(t, "110.00", draft.GetItem(second.ID).Amount.StringFixed(2))
	})

	t.Run("fails for an unselected item", func(t *testing.T) {
		draft := createTestDraft(t)
		toggleTestItem(t, draft, "Hosting", 25)
		assertDomainErrorCode(t, draft.SetItemTaxRate(uuid.New(), taxRate(t, 10)), "NOT_SELECTED")
	})
}

func TestDraft_SetDefaultTaxRate(t *testing.T) {
	t.Run("cascades over every line item, discarding overrides", func(t *testing.T) {
		draft := createTestDraft(t)
		first := toggleTestItem(t, draft, "Hosting", 100)
		second := toggleTestItem(t, draft, "Support", 200)
		require.NoError(t, draft.SetItemTaxRate(first.ID, taxRate(t, 25)))

		require.NoError(t, draft.SetDefaultTaxRate(taxRate(t, 10)))

		assert.Equal(t, "110.00", draft.GetItem(first.ID).Amount.StringFixed(2))
		assert.Equal(t, "220.00", draft.GetItem(second.ID).Amount.StringFixed(2))
		assert.Equal(t, "330.00", draft.Subtotal.StringFixed(2))
		assert.Equal(t, "33.00", draft.Tax.StringFixed(2))
		assert.Equal(t, "363.00", draft.Total.StringFixed(2))
	})

	t.Run("is idempotent", func(t *testing.T) {
		draft := createTestDraft(t)
		toggleTestItem(t, draft, "Hosting", 100)
		toggleTestItem(t, draft, "Support", 200)

		require.NoError(t, draft.SetDefaultTaxRate(taxRate(t, 10)))
		onceItems := append([]LineItem(nil), draft.Items...)
		onceTotals := draft.Totals()

		require.NoError(t, draft.SetDefaultTaxRate(taxRate(t, 10)))

		require.Len(t, draft.Items, len(onceItems))
		for i := range draft.Items {
			assert.True(t, draft.Items[i].TaxRate.Equals(onceItems[i].TaxRate))
			assert.True(t, draft.Items[i].Amount.Equals(onceItems[i].Amount))
		}
		assert.True(t, onceTotals.Subtotal.Equals(draft.Subtotal))
		assert.True(t, onceTotals.Tax.Equals(draft.Tax))
		assert.True(t, onceTotals.Total.Equals(draft.Total))
	})

	t.Run("fails after submission", func(t *testing.T) {
		draft := createTestDraft(t)
		toggleTestItem(t, draft, "Hosting", 25)
		require.NoError(t, draft.Submit(time.Now()))

		assertDomainErrorCode(t, draft.SetDefaultTaxRate(taxRate(t, 10)), "DRAFT_SUBMITTED")
	})
}

// ============================================
// Number Tests
// ============================================

func TestDraft_OverrideNumber(t *testing.T) {
	t.Run("stores the operator value verbatim", func(t *testing.T) {
		draft := createTestDraft(t)
		require.NoError(t, draft.OverrideNumber("CUSTOM-42"))

		assert.Equal(t, "CUSTOM-42", draft.Number)
		assert.True(t, draft.NumberOverridden)
	})

	t.Run("is immutable once set", func(t *testing.T) {
		draft := createTestDraft(t)
		require.NoError(t, draft.OverrideNumber("CUSTOM-42"))

		assertDomainErrorCode(t, draft.OverrideNumber("OTHER-1"), "NUMBER_OVERRIDDEN")
		assert.Equal(t, "CUSTOM-42", draft.Number)
	})

	t.Run("rejects an empty number", func(t *testing.T) {
		draft := createTestDraft(t)
		assertDomainErrorCode(t, draft.OverrideNumber(""), "INVALID_NUMBER")
	})

	t.Run("survives later toggles and submission", func(t *testing.T) {
		draft := createTestDraft(t)
		require.NoError(t, draft.OverrideNumber("CUSTOM-42"))
		toggleTestItem(t, draft, "Hosting", 25)
		toggleTestItem(t, draft, "Support", 100)

		require.NoError(t, draft.Submit(time.Now()))

		assert.Equal(t, "CUSTOM-42", draft.Number)
	})
}

func TestDraft_CurrentNumber(t *testing.T) {
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

	t.Run("derives from client and selection size", func(t *testing.T) {
		draft := createTestDraft(t)
		toggleTestItem(t, draft, "Hosting", 25)

		assert.Equal(t, "ACME-2026-0002", draft.CurrentNumber(now))
	})

	t.Run("prefers an operator override", func(t *testing.T) {
		draft := createTestDraft(t)
		require.NoError(t, draft.OverrideNumber("CUSTOM-42"))

		assert.Equal(t, "CUSTOM-42", draft.CurrentNumber(now))
	})

	t.Run("falls back to the placeholder without a client", func(t *testing.T) {
		draft := NewDraft()
		assert.Equal(t, FallbackInvoiceNumber, draft.CurrentNumber(now))
	})
}

// ============================================
// Submit Tests
// ============================================

func TestDraft_Submit(t *testing.T) {
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

	t.Run("freezes a generated number and reaches the terminal state", func(t *testing.T) {
		draft := createTestDraft(t)
		toggleTestItem(t, draft, "Hosting", 25)
		toggleTestItem(t, draft, "Support", 100)

		require.NoError(t, draft.Submit(now))

		assert.Equal(t, DraftStatusSubmitted, draft.Status)
		assert.Equal(t, InvoiceStatusPending, draft.InvoiceStatus)
		assert.Equal(t, "ACME-2026-0003", draft.Number)
		require.NotNil(t, draft.SubmittedAt)
		assert.Equal(t, now, *draft.SubmittedAt)
	})

	t.Run("fails without a client, draft unchanged", func(t *testing.T) {
		draft := NewDraft()

		assertDomainErrorCode(t, draft.Submit(now), "MISSING_CLIENT")
		assert.Equal(t, DraftStatusEmpty, draft.Status)
		assert.Empty(t, draft.Number)
	})

	t.Run("fails with an empty selection, draft unchanged", func(t *testing.T) {
		draft := createTestDraft(t)

		assertDomainErrorCode(t, draft.Submit(now), "EMPTY_SELECTION")
		assert.Equal(t, DraftStatusClientAttached, draft.Status)
		assert.Empty(t, draft.Number)
	})

	t.Run("cannot be submitted twice", func(t *testing.T) {
		draft := createTestDraft(t)
		toggleTestItem(t, draft, "Hosting", 25)
		require.NoError(t, draft.Submit(now))

		assertDomainErrorCode(t, draft.Submit(now), "DRAFT_SUBMITTED")
	})

	t.Run("publishes DraftSubmitted event with the full document", func(t *testing.T) {
		draft := createTestDraft(t)
		require.NoError(t, draft.SetDefaultTaxRate(taxRate(t, 10)))
		toggleTestItem(t, draft, "Website redesign", 1000)
		require.NoError(t, draft.Submit(now))

		events := draft.GetDomainEvents()
		event, ok := events[len(events)-1].(*DraftSubmittedEvent)
		require.True(t, ok)
		assert.Equal(t, draft.Number, event.Number)
		require.Len(t, event.Items, 1)
		assert.Equal(t, "Website redesign", event.Items[0].Description)
		assert.True(t, event.Total.Equal(draft.Total.Amount()))
	})
}

func TestDraft_RevertSubmit(t *testing.T) {
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

	t.Run("restores ItemsPopulated and discards a generated number", func(t *testing.T) {
		draft := createTestDraft(t)
		toggleTestItem(t, draft, "Hosting", 25)
		require.NoError(t, draft.Submit(now))

		draft.RevertSubmit()

		assert.Equal(t, DraftStatusItemsPopulated, draft.Status)
		assert.Equal(t, InvoiceStatusDraft, draft.InvoiceStatus)
		assert.Nil(t, draft.SubmittedAt)
		assert.Empty(t, draft.Number)

		// submission can be retried
		require.NoError(t, draft.Submit(now))
	})

	t.Run("keeps an operator override", func(t *testing.T) {
		draft := createTestDraft(t)
		require.NoError(t, draft.OverrideNumber("CUSTOM-42"))
		toggleTestItem(t, draft, "Hosting", 25)
		require.NoError(t, draft.Submit(now))

		draft.RevertSubmit()

		assert.Equal(t, "CUSTOM-42", draft.Number)
	})

	t.Run("is a no-op before submission", func(t *testing.T) {
		draft := createTestDraft(t)
		draft.RevertSubmit()
		assert.Equal(t, DraftStatusClientAttached, draft.Status)
	})
}

// ============================================
// ClearItems / Misc Tests
// ============================================

func TestDraft_ClearItems(t *testing.T) {
	draft := createTestDraft(t)
	toggleTestItem(t, draft, "Hosting", 25)
	toggleTestItem(t, draft, "Support", 100)

	require.NoError(t, draft.ClearItems())

	assert.Equal(t, 0, draft.SelectionCount())
	assert.Equal(t, DraftStatusClientAttached, draft.Status)
	assert.True(t, draft.Subtotal.IsZero())
}

func TestDraft_SetDates(t *testing.T) {
	draft := createTestDraft(t)
	invoiceDate := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	dueDate := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)

	require.NoError(t, draft.SetDates(invoiceDate, dueDate))
	assert.Equal(t, invoiceDate, draft.InvoiceDate)
	assert.Equal(t, dueDate, draft.DueDate)

	// ordering is the caller's policy; the engine accepts any pair
	require.NoError(t, draft.SetDates(dueDate, invoiceDate))
	assert.Equal(t, dueDate, draft.InvoiceDate)
}

func TestDraft_SetNotesAndTerms(t *testing.T) {
	draft := createTestDraft(t)

	require.NoError(t, draft.SetNotes("Thanks for your business"))
	require.NoError(t, draft.SetTerms("Net 30"))

	assert.Equal(t, "Thanks for your business", draft.Notes)
	assert.Equal(t, "Net 30", draft.Terms)

	toggleTestItem(t, draft, "Hosting", 25)
	require.NoError(t, draft.Submit(time.Now()))
	assertDomainErrorCode(t, draft.SetNotes("x"), "DRAFT_SUBMITTED")
	assertDomainErrorCode(t, draft.SetTerms("x"), "DRAFT_SUBMITTED")
}
