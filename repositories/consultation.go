//go:generate go run go.uber.org/mock/mockgen -source=consultation.go -destination=../mocks/mock_consultation_repository.go -package=mocks
package repositories

import (
	"consult-lab/domain"
	"consult-lab/errors"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	consultationPrefix = "consultation:"
	indexPrefix        = "idx:consultation:"
)

type IConsultationRepository interface {
	Store(consultation domain.Consultation) error
	Get(id uuid.UUID) (ConsultationRecord, error)
	List(limit int) ([]ConsultationRecord, error)
}

type ConsultationRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewConsultationRepository(db *badger.DB, log *slog.Logger) *ConsultationRepository {
	return &ConsultationRepository{db: db, log: log}
}

// ConsultationRecord is the stored form of a consultation. Errors are kept as
// text together with the pipeline stage they came from.
type ConsultationRecord struct {
	ID          uuid.UUID       `json:"id"`
	Condition   string          `json:"condition"`
	Task        string          `json:"task"`
	Mode        domain.Mode     `json:"mode"`
	Specialties []string        `json:"specialties"`
	Opinions    []OpinionRecord `json:"opinions"`
	Report      string          `json:"report,omitempty"`
	ReportError string          `json:"report_error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type OpinionRecord struct {
	Specialty  string `json:"specialty"`
	Response   string `json:"response,omitempty"`
	Error      string `json:"error,omitempty"`
	Stage      string `json:"stage,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Store persists a consultation under "consultation:{created_at_padded}:{uuid}"
// so a prefix scan returns them chronologically, plus an "idx:consultation:{uuid}"
// entry pointing at that key for lookups by ID.
func (r *ConsultationRepository) Store(consultation domain.Consultation) error {
	record := ToRecord(consultation)
	key := consultationKey(record)
	bytes, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(key), bytes); err != nil {
			return err
		}
		return txn.Set([]byte(indexPrefix+record.ID.String()), []byte(key))
	})
}

func (r *ConsultationRepository) Get(id uuid.UUID) (ConsultationRecord, error) {
	var record ConsultationRecord
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(indexPrefix + id.String()))
		if err != nil {
			return err
		}
		key, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		item, err = txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return ConsultationRecord{}, fmt.Errorf("%w: %s", errors.ErrConsultationNotFound, id)
	}
	return record, err
}

// List returns at most limit consultations, newest first. A limit <= 0 returns all of them.
func (r *ConsultationRepository) List(limit int) ([]ConsultationRecord, error) {
	var records []ConsultationRecord
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(consultationPrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration starts from the greatest key not above the seek key.
		for it.Seek(append(prefix, 0xFF)); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(records) == limit {
				r.log.Debug(fmt.Sprintf("Maximum of %d consultations reached", limit))
				break
			}
			var record ConsultationRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			})
			if err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	})
	return records, err
}

func consultationKey(record ConsultationRecord) string {
	return fmt.Sprintf("%s%019d:%s", consultationPrefix, record.CreatedAt.UnixNano(), record.ID)
}

func ToRecord(c domain.Consultation) ConsultationRecord {
	record := ConsultationRecord{
		ID:          c.ID,
		Condition:   c.Condition,
		Task:        c.Task,
		Mode:        c.Mode,
		Specialties: c.Specialties,
		Report:      c.Report.Text,
		CreatedAt:   c.CreatedAt.UTC(),
		Opinions: lo.Map(c.Opinions.Results(), func(r domain.SpecialistResult, _ int) OpinionRecord {
			opinion := OpinionRecord{
				Specialty:  r.Specialty,
				Response:   r.Response,
				DurationMs: r.Duration.Milliseconds(),
			}
			if r.Err != nil {
				opinion.Error = r.Err.Error()
				opinion.Stage = string(errors.StageOf(r.Err))
			}
			return opinion
		}),
	}
	if c.Report.Err != nil {
		record.ReportError = c.Report.Err.Error()
	}
	return record
}
