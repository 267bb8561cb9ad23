package enquiry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"somadhan-booking/logger"
	enquiryModel "somadhan-booking/models/enquiry"
	enquiryTypes "somadhan-booking/types/enquiry"
	"somadhan-booking/utils"
)

// ErrStoreUnavailable is returned by Save under the strict policy when the
// remote store is unconfigured or the insert failed. The caller surfaces it
// as a user-visible "submit failed" message.
var ErrStoreUnavailable = errors.New("record store unavailable")

// Store is the slice of the record store the manager needs. A nil Store
// means the remote side is not configured.
type Store interface {
	ListEnquiries(ctx context.Context) ([]enquiryModel.Enquiry, error)
	InsertEnquiry(ctx context.Context, record enquiryModel.Enquiry) (enquiryModel.Enquiry, error)
	UpdateEnquiryStatus(ctx context.Context, id string, status enquiryModel.EnquiryStatus) error
	DeleteEnquiry(ctx context.Context, id string) error
}

// FallbackCache is the local persistence used when the store is unreachable.
type FallbackCache interface {
	ReadEnquiries() []enquiryModel.Enquiry
	WriteEnquiries(records []enquiryModel.Enquiry) error
}

// SaveResult reports what Save produced and whether it reached the store.
type SaveResult struct {
	Enquiry enquiryModel.Enquiry `json:"enquiry"`
	Synced  bool                 `json:"synced"`
}

// Manager is the single source of truth for enquiry state. It orchestrates
// the record store with fallback to the local cache, owns normalization of
// drafts, and applies admin mutations optimistically.
//
// The fallback policy is fixed at construction: the strict variant (default)
// refuses to save when the store is unreachable, the permissive variant
// accepts the record into the local cache instead.
type Manager struct {
	store              Store
	cache              FallbackCache
	allowLocalFallback bool

	mu      sync.Mutex
	records []enquiryModel.Enquiry
}

func NewManager(store Store, cache FallbackCache, allowLocalFallbackOnWriteFailure bool) *Manager {
	return &Manager{
		store:              store,
		cache:              cache,
		allowLocalFallback: allowLocalFallbackOnWriteFailure,
	}
}

// Load populates in-memory state once: from the store when possible,
// otherwise from the fallback cache. It never fails and does not retry.
func (m *Manager) Load(ctx context.Context) {
	if m.store != nil {
		records, err := m.store.ListEnquiries(ctx)
		if err == nil {
			m.mu.Lock()
			m.records = records
			m.mu.Unlock()
			return
		}
		logger.Warning("Falling back to local cache: " + err.Error())
	}

	m.mu.Lock()
	m.records = m.cache.ReadEnquiries()
	m.mu.Unlock()
}

// Refresh re-fetches the full collection from the store and adopts it,
// reconciling optimistic state with server truth.
func (m *Manager) Refresh(ctx context.Context) error {
	if m.store == nil {
		return ErrStoreUnavailable
	}
	records, err := m.store.ListEnquiries(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.records = records
	m.mu.Unlock()
	return nil
}

// Save normalizes and validates a draft, then creates the enquiry: remote
// insert first, local fallback only under the permissive policy. The new
// record is prepended so the list stays in descending creation order.
func (m *Manager) Save(ctx context.Context, draft enquiryTypes.EnquiryDraft) (SaveResult, error) {
	draft.Normalize()
	if err := draft.Validate(); err != nil {
		return SaveResult{}, err
	}

	candidate := enquiryModel.Enquiry{
		Service:       draft.Service,
		Category:      draft.NormalizedCategory(),
		LandCondition: utils.NilIfEmpty(draft.LandCondition),
		Phone:         draft.Phone,
		Name:          utils.NilIfEmpty(draft.Name),
		Address:       utils.NilIfEmpty(draft.Address),
		PreferredDate: utils.NilIfEmpty(draft.PreferredDate),
		PreferredTime: utils.NilIfEmpty(draft.PreferredTime),
		Notes:         utils.NilIfEmpty(draft.Notes),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		Status:        enquiryModel.StatusNew,
	}

	if m.store != nil {
		stored, err := m.store.InsertEnquiry(ctx, candidate)
		if err == nil {
			if stored.ID == "" {
				stored.ID = utils.NewLocalID()
			}
			if stored.CreatedAt == "" {
				stored.CreatedAt = candidate.CreatedAt
			}
			m.prepend(stored)
			return SaveResult{Enquiry: stored, Synced: true}, nil
		}
		logger.Error("Remote insert failed", err)
		if !m.allowLocalFallback {
			return SaveResult{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	} else if !m.allowLocalFallback {
		return SaveResult{}, ErrStoreUnavailable
	}

	candidate.ID = utils.NewLocalID()
	m.prepend(candidate)

	m.mu.Lock()
	snapshot := m.snapshotLocked()
	m.mu.Unlock()
	if err := m.cache.WriteEnquiries(snapshot); err != nil {
		logger.Error("Failed to write fallback cache", err)
	}

	return SaveResult{Enquiry: candidate, Synced: false}, nil
}

// UpdateStatus applies the new status optimistically: in-memory state and
// the fallback cache change immediately, the remote update runs in the
// background. The returned channel delivers the remote result (nil when no
// store is configured); callers may ignore it, the optimistic state is
// never rolled back.
func (m *Manager) UpdateStatus(ctx context.Context, id string, status enquiryModel.EnquiryStatus) <-chan error {
	m.mu.Lock()
	for i := range m.records {
		if m.records[i].ID == id {
			m.records[i].Status = status
			break
		}
	}
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	if err := m.cache.WriteEnquiries(snapshot); err != nil {
		logger.Error("Failed to write fallback cache", err)
	}

	result := make(chan error, 1)
	if m.store == nil {
		result <- nil
		close(result)
		return result
	}

	go func() {
		err := m.store.UpdateEnquiryStatus(ctx, id, status)
		if err != nil {
			logger.Error("Remote status update failed for "+id, err)
		}
		result <- err
		close(result)
	}()
	return result
}

// Delete removes the record locally right away and issues the remote delete
// in the background. Deleting an unknown id changes nothing and is not an
// error.
func (m *Manager) Delete(ctx context.Context, id string) <-chan error {
	m.mu.Lock()
	kept := m.records[:0]
	for _, r := range m.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	m.records = kept
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	if err := m.cache.WriteEnquiries(snapshot); err != nil {
		logger.Error("Failed to write fallback cache", err)
	}

	result := make(chan error, 1)
	if m.store == nil {
		result <- nil
		close(result)
		return result
	}

	go func() {
		err := m.store.DeleteEnquiry(ctx, id)
		if err != nil {
			logger.Error("Remote delete failed for "+id, err)
		}
		result <- err
		close(result)
	}()
	return result
}

// Enquiries returns a snapshot of current state.
func (m *Manager) Enquiries() []enquiryModel.Enquiry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Filter keeps records matching the status; "ALL" or "" passes everything.
func (m *Manager) Filter(status string) []enquiryModel.Enquiry {
	if status == "" || status == "ALL" {
		return m.Enquiries()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	filtered := make([]enquiryModel.Enquiry, 0, len(m.records))
	for _, r := range m.records {
		if string(r.Status) == status {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func (m *Manager) prepend(record enquiryModel.Enquiry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append([]enquiryModel.Enquiry{record}, m.records...)
}

func (m *Manager) snapshotLocked() []enquiryModel.Enquiry {
	snapshot := make([]enquiryModel.Enquiry, len(m.records))
	copy(snapshot, m.records)
	return snapshot
}
