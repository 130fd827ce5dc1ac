package ledger

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

// memStore almacena los datos en memoria. El mutex lo toma el fakeTxRunner
// durante toda la transacción, de modo que dos transacciones concurrentes se
// serializan igual que con los locks de fila de la base real.
type memStore struct {
	mu       sync.Mutex
	items    map[string]*entity.Item
	sales    []*entity.Sale
	audit    []*entity.AuditEntry
	settings map[string]*entity.Settings
	idem     map[string]*entity.IdempotencyRecord
	seq      int64
}

func newMemStore() *memStore {
	return &memStore{
		items:    map[string]*entity.Item{},
		settings: map[string]*entity.Settings{},
		idem:     map[string]*entity.IdempotencyRecord{},
	}
}

// fakeTxRunner serializa transacciones con el mutex del store.
type fakeTxRunner struct {
	s *memStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	items repository.ItemRepository,
	sales repository.SaleRepository,
	audit repository.AuditRepository,
	settings repository.SettingsRepository,
	idem repository.IdempotencyRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(
		&memItems{s: r.s},
		&memSales{s: r.s},
		&memAudit{s: r.s},
		&memSettings{s: r.s},
		&memIdem{s: r.s},
	)
}

// ── items ─────────────────────────────────────────────────────────────────────

// memItems sin locked=true asume que el lock lo tiene el tx runner; con
// locked=true cada método toma el lock (repos atados al "pool").
type memItems struct {
	s      *memStore
	locked bool
}

func (r *memItems) lockIfNeeded() func() {
	if r.locked {
		r.s.mu.Lock()
		return r.s.mu.Unlock
	}
	return func() {}
}

func copyItem(it *entity.Item) *entity.Item {
	cp := *it
	cp.CustomFields = map[string]string{}
	for k, v := range it.CustomFields {
		cp.CustomFields[k] = v
	}
	return &cp
}

func (r *memItems) Create(_ context.Context, item *entity.Item) error {
	defer r.lockIfNeeded()()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	for _, ex := range r.s.items {
		if ex.OwnerID == item.OwnerID && ex.NameKey == item.NameKey && ex.Location == item.Location {
			return domain.ErrDuplicate
		}
	}
	r.s.items[item.ID] = copyItem(item)
	return nil
}

func (r *memItems) GetByID(_ context.Context, id string) (*entity.Item, error) {
	defer r.lockIfNeeded()()
	it, ok := r.s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyItem(it), nil
}

func (r *memItems) FindByKey(ctx context.Context, ownerID, nameKey, location string) ([]*entity.Item, error) {
	return r.FindByKeyForUpdate(ctx, ownerID, nameKey, location)
}

func (r *memItems) FindByKeyForUpdate(_ context.Context, ownerID, nameKey, location string) ([]*entity.Item, error) {
	defer r.lockIfNeeded()()
	var out []*entity.Item
	for _, it := range r.s.items {
		if it.OwnerID != ownerID || it.NameKey != nameKey {
			continue
		}
		if location != "" && it.Location != location {
			continue
		}
		out = append(out, copyItem(it))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memItems) UpdateQuantity(_ context.Context, id string, quantity int64, updatedAt time.Time) error {
	defer r.lockIfNeeded()()
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	it.UpdatedAt = updatedAt
	return nil
}

func (r *memItems) Update(_ context.Context, item *entity.Item) error {
	defer r.lockIfNeeded()()
	if _, ok := r.s.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, ex := range r.s.items {
		if ex.ID != item.ID && ex.OwnerID == item.OwnerID &&
			ex.NameKey == item.NameKey && ex.Location == item.Location {
			return domain.ErrDuplicate
		}
	}
	r.s.items[item.ID] = copyItem(item)
	return nil
}

func (r *memItems) Delete(_ context.Context, id string) error {
	defer r.lockIfNeeded()()
	if _, ok := r.s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.items, id)
	return nil
}

func (r *memItems) ListByOwner(_ context.Context, ownerID string, f repository.ItemFilter) ([]*entity.Item, error) {
	defer r.lockIfNeeded()()
	var out []*entity.Item
	for _, it := range r.s.items {
		if it.OwnerID != ownerID {
			continue
		}
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if f.Location != "" && it.Location != f.Location {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(f.Name)) {
			continue
		}
		out = append(out, copyItem(it))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NameKey != out[j].NameKey {
			return out[i].NameKey < out[j].NameKey
		}
		return out[i].Location < out[j].Location
	})
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *memItems) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	defer r.lockIfNeeded()()
	var n int64
	for id, it := range r.s.items {
		if it.OwnerID == ownerID {
			delete(r.s.items, id)
			n++
		}
	}
	return n, nil
}

// ── sales ─────────────────────────────────────────────────────────────────────

type memSales struct {
	s      *memStore
	locked bool
}

func (r *memSales) lockIfNeeded() func() {
	if r.locked {
		r.s.mu.Lock()
		return r.s.mu.Unlock
	}
	return func() {}
}

func (r *memSales) Create(_ context.Context, sale *entity.Sale) error {
	defer r.lockIfNeeded()()
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	cp := *sale
	r.s.sales = append(r.s.sales, &cp)
	return nil
}

func (r *memSales) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]*entity.Sale, error) {
	defer r.lockIfNeeded()()
	var out []*entity.Sale
	for i := len(r.s.sales) - 1; i >= 0; i-- {
		if r.s.sales[i].OwnerID == ownerID {
			cp := *r.s.sales[i]
			out = append(out, &cp)
		}
	}
	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memSales) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	defer r.lockIfNeeded()()
	var kept []*entity.Sale
	var n int64
	for _, s := range r.s.sales {
		if s.OwnerID == ownerID {
			n++
			continue
		}
		kept = append(kept, s)
	}
	r.s.sales = kept
	return n, nil
}

// ── audit ─────────────────────────────────────────────────────────────────────

type memAudit struct {
	s      *memStore
	locked bool
}

func (r *memAudit) lockIfNeeded() func() {
	if r.locked {
		r.s.mu.Lock()
		return r.s.mu.Unlock
	}
	return func() {}
}

func (r *memAudit) Append(_ context.Context, e *entity.AuditEntry) error {
	defer r.lockIfNeeded()()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	r.s.seq++
	e.Seq = r.s.seq
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	cp := *e
	r.s.audit = append(r.s.audit, &cp)
	return nil
}

func (r *memAudit) ListRecent(_ context.Context, ownerID string, limit int) ([]*entity.AuditEntry, error) {
	defer r.lockIfNeeded()()
	var out []*entity.AuditEntry
	for i := len(r.s.audit) - 1; i >= 0; i-- {
		if r.s.audit[i].OwnerID == ownerID {
			cp := *r.s.audit[i]
			out = append(out, &cp)
		}
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memAudit) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	defer r.lockIfNeeded()()
	var kept []*entity.AuditEntry
	var n int64
	for _, e := range r.s.audit {
		if e.OwnerID == ownerID {
			n++
			continue
		}
		kept = append(kept, e)
	}
	r.s.audit = kept
	return n, nil
}

// ── settings ──────────────────────────────────────────────────────────────────

type memSettings struct {
	s *memStore
}

func (r *memSettings) Get(_ context.Context, ownerID string) (*entity.Settings, error) {
	s, ok := r.s.settings[ownerID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSettings) Upsert(_ context.Context, s *entity.Settings) error {
	cp := *s
	r.s.settings[s.OwnerID] = &cp
	return nil
}

func (r *memSettings) Delete(_ context.Context, ownerID string) error {
	delete(r.s.settings, ownerID)
	return nil
}

// ── idempotency ───────────────────────────────────────────────────────────────

type memIdem struct {
	s *memStore
}

func idemKey(ownerID, key string) string { return ownerID + "|" + key }

func (r *memIdem) Get(_ context.Context, ownerID, key string) (*entity.IdempotencyRecord, error) {
	rec, ok := r.s.idem[idemKey(ownerID, key)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *memIdem) Reserve(_ context.Context, rec *entity.IdempotencyRecord) error {
	k := idemKey(rec.OwnerID, rec.Key)
	if _, ok := r.s.idem[k]; ok {
		return domain.ErrDuplicate
	}
	cp := *rec
	r.s.idem[k] = &cp
	return nil
}

func (r *memIdem) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	var n int64
	for k, rec := range r.s.idem {
		if rec.OwnerID == ownerID {
			delete(r.s.idem, k)
			n++
		}
	}
	return n, nil
}
