package repository

import (
	"sync"

	"github.com/vfg2006/toystore-admin-api/internal/domain"
)

const maxReportSnapshots = 48

type ReportSnapshotRepository interface {
	Save(snapshot *domain.ReportSnapshot) error
	GetLatest() (*domain.ReportSnapshot, error)
	List() ([]*domain.ReportSnapshot, error)
}

// reportSnapshotRepository mantém os últimos relatórios gerados pelo
// agendador. Os mais antigos são descartados.
type reportSnapshotRepository struct {
	mu        sync.RWMutex
	snapshots []*domain.ReportSnapshot
}

func NewReportSnapshotRepository() ReportSnapshotRepository {
	return &reportSnapshotRepository{
		snapshots: make([]*domain.ReportSnapshot, 0),
	}
}

func (r *reportSnapshotRepository) Save(snapshot *domain.ReportSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots = append(r.snapshots, snapshot)
	if len(r.snapshots) > maxReportSnapshots {
		r.snapshots = r.snapshots[len(r.snapshots)-maxReportSnapshots:]
	}

	return nil
}

func (r *reportSnapshotRepository) GetLatest() (*domain.ReportSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.snapshots) == 0 {
		return nil, nil
	}

	return r.snapshots[len(r.snapshots)-1], nil
}

func (r *reportSnapshotRepository) List() ([]*domain.ReportSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshots := make([]*domain.ReportSnapshot, len(r.snapshots))
	copy(snapshots, r.snapshots)

	return snapshots, nil
}
