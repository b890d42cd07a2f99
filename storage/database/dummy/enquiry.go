package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/darasahq/darasa/core/enquiry"
)

type enquiryRepository struct {
	db *enquiryTable
}

var _ enquiry.Repository = (*enquiryRepository)(nil) // interface compliance check

func NewEnquiryRepository(db *DB) *enquiryRepository {
	return &enquiryRepository{db: db.enquiry}
}

func (repo *enquiryRepository) CreateEnquiry(ctx context.Context, enq enquiry.Enquiry) (enquiry.Enquiry, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	enq.ID = uuid.New().String()
	repo.db.enquiries[enq.ID] = &enq
	return enq, nil
}

func (repo *enquiryRepository) QueryAllEnquiries(ctx context.Context) ([]enquiry.Enquiry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	enquiries := make([]enquiry.Enquiry, 0, len(repo.db.enquiries))
	for _, enq := range repo.db.enquiries {
		enquiries = append(enquiries, *enq)
	}
	sort.Slice(enquiries, func(i, j int) bool { return enquiries[i].CreatedAt.Before(enquiries[j].CreatedAt) })
	return enquiries, nil
}

func (repo *enquiryRepository) GetEnquiryByID(ctx context.Context, id string) (enquiry.Enquiry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if enq, ok := repo.db.enquiries[id]; ok {
		return *enq, nil
	}
	return enquiry.Enquiry{}, enquiry.ErrNotFound
}

func (repo *enquiryRepository) UpdateEnquiry(ctx context.Context, enq enquiry.Enquiry) (enquiry.Enquiry, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.enquiries[enq.ID]; !ok {
		return enquiry.Enquiry{}, enquiry.ErrNotFound
	}
	repo.db.enquiries[enq.ID] = &enq
	return enq, nil
}

func (repo *enquiryRepository) QueryAllBatches(ctx context.Context) ([]enquiry.Batch, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	batches := make([]enquiry.Batch, 0, len(repo.db.batches))
	for _, b := range repo.db.batches {
		batches = append(batches, *b)
	}
	sort.Slice(batches, func(i, j int) bool { return batches[i].Name < batches[j].Name })
	return batches, nil
}

// AddBatch seeds a batch; test helper.
func (db *DB) AddBatch(b enquiry.Batch) enquiry.Batch {
	db.enquiry.Lock()
	defer db.enquiry.Unlock()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.Status == "" {
		b.Status = enquiry.BatchStatusPlanned
	}
	db.enquiry.batches[b.ID] = &b
	return b
}
