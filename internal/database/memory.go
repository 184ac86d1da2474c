package database

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps reference data and prices in memory. It backs dry runs
// and tests.
type MemoryStore struct {
	mu sync.RWMutex

	categories       map[int64]Category
	locations        map[int64]RentalLocation
	rateTypes        map[int64]RateType
	seasons          map[int64]Season
	bridges          []CategoryRentalLocationRateType
	priceDefinitions map[int64]PriceDefinition
	prices           map[int64]*Price
	runs             map[string]ImportRun

	nextPriceID int64
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categories:       make(map[int64]Category),
		locations:        make(map[int64]RentalLocation),
		rateTypes:        make(map[int64]RateType),
		seasons:          make(map[int64]Season),
		priceDefinitions: make(map[int64]PriceDefinition),
		prices:           make(map[int64]*Price),
		runs:             make(map[string]ImportRun),
	}
}

func (m *MemoryStore) AddCategory(c Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[c.ID] = c
}

func (m *MemoryStore) AddRentalLocation(l RentalLocation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[l.ID] = l
}

func (m *MemoryStore) AddRateType(r RateType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rateTypes[r.ID] = r
}

func (m *MemoryStore) AddSeason(s Season) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seasons[s.ID] = s
}

func (m *MemoryStore) AddBridge(b CategoryRentalLocationRateType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bridges = append(m.bridges, b)
}

func (m *MemoryStore) AddPriceDefinition(pd PriceDefinition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.priceDefinitions[pd.ID] = pd
}

func (m *MemoryStore) FindCategoryByCode(_ context.Context, code string) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range sortedKeys(m.categories) {
		if c := m.categories[id]; c.Code == code {
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) FindRentalLocationByName(_ context.Context, name string) (*RentalLocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range sortedKeys(m.locations) {
		if l := m.locations[id]; l.Name == name {
			return &l, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) FindRateTypeByName(_ context.Context, name string) (*RateType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range sortedKeys(m.rateTypes) {
		if r := m.rateTypes[id]; r.Name == name {
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) FindSeasonByName(_ context.Context, name string) (*Season, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range sortedKeys(m.seasons) {
		if s := m.seasons[id]; s.Name == name {
			return &s, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) FindBridge(_ context.Context, categoryID, rentalLocationID, rateTypeID int64) (*CategoryRentalLocationRateType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.bridges {
		if b.CategoryID == categoryID && b.RentalLocationID == rentalLocationID && b.RateTypeID == rateTypeID {
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) FindPriceDefinition(_ context.Context, id int64) (*PriceDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pd, ok := m.priceDefinitions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &pd, nil
}

func sameSeason(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (m *MemoryStore) FindByKey(_ context.Context, key PriceKey) (*Price, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range sortedKeys(m.prices) {
		p := m.prices[id]
		if p.PriceDefinitionID == key.PriceDefinitionID &&
			sameSeason(p.SeasonID, key.SeasonID) &&
			p.TimeMeasurement == key.TimeMeasurement &&
			p.Units == key.Units {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) Create(_ context.Context, p *Price) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextPriceID++
	now := time.Now()
	p.ID = m.nextPriceID
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	m.prices[p.ID] = &cp
	return nil
}

func (m *MemoryStore) Update(_ context.Context, p *Price) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.prices[p.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Price = p.Price
	existing.IncludedKm = p.IncludedKm
	existing.ExtraKmPrice = p.ExtraKmPrice
	existing.UpdatedAt = time.Now()
	p.UpdatedAt = existing.UpdatedAt
	return nil
}

// Prices returns a copy of every stored price ordered by id
func (m *MemoryStore) Prices() []Price {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Price, 0, len(m.prices))
	for _, id := range sortedKeys(m.prices) {
		out = append(out, *m.prices[id])
	}
	return out
}

func (m *MemoryStore) CreateImportRun(_ context.Context, run *ImportRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	run.Status = RunStatusRunning
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	m.runs[run.ID] = *run
	return nil
}

func (m *MemoryStore) CompleteImportRun(_ context.Context, run *ImportRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	run.CompletedAt = &now
	m.runs[run.ID] = *run
	return nil
}

func (m *MemoryStore) ListImportRuns(_ context.Context, limit int) ([]ImportRun, error) {
	if limit <= 0 {
		limit = DefaultRunListLimit
	}
	m.mu.RLock()
	runs := make([]ImportRun, 0, len(m.runs))
	for _, r := range m.runs {
		runs = append(runs, r)
	}
	m.mu.RUnlock()

	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].StartedAt.After(runs[j].StartedAt)
		}
		return runs[i].ID < runs[j].ID
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (m *MemoryStore) DeleteImportRunsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, r := range m.runs {
		if r.Status != RunStatusRunning && r.CompletedAt != nil && r.CompletedAt.Before(cutoff) {
			delete(m.runs, id)
			n++
		}
	}
	return n, nil
}

// ImportRun returns a recorded run by id
func (m *MemoryStore) ImportRun(id string) (ImportRun, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.runs[id]
	return r, ok
}

// ListExportRows mirrors the Postgres export ordering and filters
func (m *MemoryStore) ListExportRows(_ context.Context, filter ExportFilter, fn func(ExportRow) error) error {
	m.mu.RLock()
	var rows []ExportRow
	for _, b := range m.bridges {
		if filter.RentalLocationID != nil && b.RentalLocationID != *filter.RentalLocationID {
			continue
		}
		if filter.RateTypeID != nil && b.RateTypeID != *filter.RateTypeID {
			continue
		}
		pd, ok := m.priceDefinitions[b.PriceDefinitionID]
		if !ok {
			continue
		}
		if filter.SeasonDefinitionID != nil && !sameSeason(pd.SeasonDefinitionID, filter.SeasonDefinitionID) {
			continue
		}

		base := ExportRow{
			CategoryCode:       m.categories[b.CategoryID].Code,
			RentalLocationName: m.locations[b.RentalLocationID].Name,
			RateTypeName:       m.rateTypes[b.RateTypeID].Name,
		}

		matched := 0
		for _, id := range sortedKeys(m.prices) {
			p := m.prices[id]
			if p.PriceDefinitionID != pd.ID {
				continue
			}
			if filter.SeasonID != nil && !sameSeason(p.SeasonID, filter.SeasonID) {
				continue
			}
			if filter.TimeMeasurement != nil && p.TimeMeasurement != *filter.TimeMeasurement {
				continue
			}
			row := base
			tm := p.TimeMeasurement
			units := p.Units
			price := p.Price
			row.TimeMeasurement = &tm
			row.Units = &units
			row.Price = &price
			row.IncludedKm = p.IncludedKm
			row.ExtraKmPrice = p.ExtraKmPrice
			if p.SeasonID != nil {
				name := m.seasons[*p.SeasonID].Name
				row.SeasonName = &name
			}
			rows = append(rows, row)
			matched++
		}
		if matched == 0 {
			rows = append(rows, base)
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.CategoryCode != b.CategoryCode {
			return a.CategoryCode < b.CategoryCode
		}
		if a.RentalLocationName != b.RentalLocationName {
			return a.RentalLocationName < b.RentalLocationName
		}
		if a.RateTypeName != b.RateTypeName {
			return a.RateTypeName < b.RateTypeName
		}
		if (a.TimeMeasurement == nil) != (b.TimeMeasurement == nil) {
			return b.TimeMeasurement == nil
		}
		if a.TimeMeasurement != nil && *a.TimeMeasurement != *b.TimeMeasurement {
			return *a.TimeMeasurement < *b.TimeMeasurement
		}
		if (a.SeasonName == nil) != (b.SeasonName == nil) {
			return a.SeasonName == nil
		}
		if a.SeasonName != nil && *a.SeasonName != *b.SeasonName {
			return *a.SeasonName < *b.SeasonName
		}
		if a.Units != nil && b.Units != nil {
			return *a.Units < *b.Units
		}
		return false
	})

	for _, row := range rows {
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

var (
	_ ReferenceStore  = (*MemoryStore)(nil)
	_ PriceRepository = (*MemoryStore)(nil)
	_ ExportSource    = (*MemoryStore)(nil)
	_ ImportRunStore  = (*MemoryStore)(nil)

	_ ReferenceStore  = (*PostgresReferenceStore)(nil)
	_ ExportSource    = (*PostgresReferenceStore)(nil)
	_ PriceRepository = (*PostgresPriceRepository)(nil)
	_ ImportRunStore  = (*PostgresImportRunStore)(nil)
)
