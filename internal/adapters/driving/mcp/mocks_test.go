package mcp

import (
	"context"

	"github.com/inah-tools/archivo/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results   domain.ResultSet
	count     int
	err       error
	lastQuery string
}

func (m *mockSearchService) Run(_ context.Context, rawQuery string) (domain.ResultSet, error) {
	m.lastQuery = rawQuery
	return m.results, m.err
}

func (m *mockSearchService) Count(_ context.Context) (int, error) {
	return m.count, m.err
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	summary  *domain.IndexSummary
	err      error
	lastRoot string
}

func (m *mockIndexService) Reindex(
	_ context.Context, root string, _ chan<- domain.IndexEvent,
) (*domain.IndexSummary, error) {
	m.lastRoot = root
	return m.summary, m.err
}

func (m *mockIndexService) Start(_ context.Context, _ string) (<-chan domain.IndexEvent, error) {
	return nil, m.err
}

func (m *mockIndexService) Running() bool {
	return false
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error {
	return m.err
}

func (m *mockSettingsService) SetRoot(_ string) error {
	return m.err
}

func (m *mockSettingsService) SetExtensions(_ []string) error {
	return m.err
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// sampleResults returns records in default order.
func sampleResults() domain.ResultSet {
	return domain.ResultSet{
		{DocumentName: "acta.pdf", SiteName: "Templo Mayor", RegionName: "CDMX", FullPath: "/a/CDMX/Templo Mayor/acta.pdf"},
		{DocumentName: "plano.pdf", SiteName: "Tula", RegionName: "Hidalgo", FullPath: "/a/Hidalgo/Tula/plano.pdf"},
		{DocumentName: "informe.pdf", SiteName: "Chichén Itzá", RegionName: "Yucatán", FullPath: "/a/Yucatán/Chichén Itzá/informe.pdf"},
	}
}
