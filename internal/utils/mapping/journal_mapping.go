package mapping

import (
	"github.com/fajarprasetia/smartone-finance/internal/core/domain"
	"github.com/fajarprasetia/smartone-finance/internal/models"
)

// ToModelJournalEntry converts a domain journal entry header to its DB model.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          d.EntryID,
		EntryNumber:      d.EntryNumber,
		EntryDate:        d.EntryDate,
		PeriodID:         d.PeriodID,
		Description:      d.Description,
		Reference:        d.Reference,
		Status:           models.EntryStatus(d.Status),
		OriginalEntryID:  d.OriginalEntryID,
		ReversingEntryID: d.ReversingEntryID,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a DB journal entry model to the domain
// representation. Items are loaded separately.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		EntryNumber:      m.EntryNumber,
		EntryDate:        m.EntryDate,
		PeriodID:         m.PeriodID,
		Description:      m.Description,
		Reference:        m.Reference,
		Status:           domain.EntryStatus(m.Status),
		OriginalEntryID:  m.OriginalEntryID,
		ReversingEntryID: m.ReversingEntryID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryItem converts a domain ledger line to its DB model.
func ToModelJournalEntryItem(d domain.JournalEntryItem) models.JournalEntryItem {
	return models.JournalEntryItem{
		ItemID:      d.ItemID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Description: d.Description,
		Debit:       d.Debit,
		Credit:      d.Credit,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntryItem converts a DB ledger line model to the domain
// representation, carrying joined account code/name when present.
func ToDomainJournalEntryItem(m models.JournalEntryItem) domain.JournalEntryItem {
	return domain.JournalEntryItem{
		ItemID:      m.ItemID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		AccountCode: m.AccountCode,
		AccountName: m.AccountName,
		Description: m.Description,
		Debit:       m.Debit,
		Credit:      m.Credit,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntryItemSlice converts a slice of ledger line models.
func ToDomainJournalEntryItemSlice(ms []models.JournalEntryItem) []domain.JournalEntryItem {
	items := make([]domain.JournalEntryItem, len(ms))
	for i, m := range ms {
		items[i] = ToDomainJournalEntryItem(m)
	}
	return items
}
