package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/format"
)

// fakeFetcher serves fixed collections, or err for every call.
type fakeFetcher struct {
	settlements []billing.SettlementDocument
	points      []billing.MeteringPoint
	customers   []billing.Customer
	supplies    []billing.Supply
	err         error
}

func (f *fakeFetcher) FetchSettlementDocuments(context.Context) ([]billing.SettlementDocument, error) {
	return f.settlements, f.err
}

func (f *fakeFetcher) FetchMeteringPoints(context.Context) ([]billing.MeteringPoint, error) {
	return f.points, f.err
}

func (f *fakeFetcher) FetchCustomers(context.Context) ([]billing.Customer, error) {
	return f.customers, f.err
}

func (f *fakeFetcher) FetchSupplies(context.Context) ([]billing.Supply, error) {
	return f.supplies, f.err
}

func testDeps(f *fakeFetcher) Deps {
	return Deps{Fetcher: f, Formatter: format.NewFormatter(format.Danish), PageSize: 20}
}

func makeCustomers(n int) []billing.Customer {
	out := make([]billing.Customer, n)
	for i := range n {
		c := billing.Customer{
			ID:        uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "customer-%d", i)),
			Name:      fmt.Sprintf("Kunde %02d", i),
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}
		if i%2 == 0 {
			c.IsPrivate = true
			c.CPR = fmt.Sprintf("%02d0190-4321", i)
		} else {
			c.IsCompany = true
			c.CVR = fmt.Sprintf("%08d", 10000000+i)
		}
		out[i] = c
	}
	return out
}

func makeSettlements() []billing.SettlementDocument {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	orig := uuid.NewSHA1(uuid.NameSpaceOID, []byte("doc-0"))
	return []billing.SettlementDocument{
		{ID: orig, DocumentNumber: "AF-1", DocumentType: billing.DocumentTypeSettlement,
			Status: billing.StatusCalculated, Period: billing.Period{Start: start, End: &end}},
		{ID: uuid.NewSHA1(uuid.NameSpaceOID, []byte("doc-1")), DocumentNumber: "AF-2",
			DocumentType: billing.DocumentTypeSettlement, Status: billing.StatusInvoiced,
			Period: billing.Period{Start: start, End: &end}},
		{ID: uuid.NewSHA1(uuid.NameSpaceOID, []byte("doc-2")), DocumentNumber: "KN-1",
			DocumentType: billing.DocumentTypeCreditNote, Status: billing.StatusAdjusted,
			Period: billing.Period{Start: start}, OriginalDocumentID: &orig},
	}
}

// load runs the page's fetch synchronously and feeds the result back.
func load[T billing.Entity](t *testing.T, p *ListPage[T]) tea.Cmd {
	t.Helper()
	msg := p.fetchCmd()()
	_, cmd := p.Update(msg)
	return cmd
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press[T billing.Entity](p *ListPage[T], msgs ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = p.Update(m)
	}
	return cmd
}

// navigation runs cmd and asserts it produced a NavigateMsg.
func navigation(t *testing.T, cmd tea.Cmd) NavigateMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(NavigateMsg)
	require.True(t, ok, "expected NavigateMsg")
	return msg
}
