package sheets

import (
	"context"
	"sync"

	"github.com/adroitalarm/shopdesk/internal/export"
	"github.com/adroitalarm/shopdesk/internal/storage"
)

// MockWriter records exports instead of calling Google.
type MockWriter struct {
	ExportFunc func(ctx context.Context, tab string, tables []export.Table) (string, error)
	Calls      []ExportCall
	mu         sync.Mutex
}

// ExportCall is one recorded Export.
type ExportCall struct {
	Error  error
	Tab    string
	Tables []export.Table
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Name implements export.Target.
func (m *MockWriter) Name() string { return storage.TargetSheets }

// Export implements export.Target.
func (m *MockWriter) Export(ctx context.Context, tab string, tables []export.Table) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	loc := "mock://" + tab
	var err error
	if m.ExportFunc != nil {
		loc, err = m.ExportFunc(ctx, tab, tables)
	}
	m.Calls = append(m.Calls, ExportCall{Tab: tab, Tables: tables, Error: err})
	return loc, err
}

// CallCount returns the number of Export calls.
func (m *MockWriter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
