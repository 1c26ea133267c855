package main

import (
	"bytes"
	"consult-lab/domain"
	"consult-lab/errors"
	"consult-lab/repositories"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func seedHistory(t *testing.T) (string, domain.Consultation) {
	t.Helper()
	dir := t.TempDir()
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	require.NoError(t, err)

	consultation := domain.Consultation{
		ID:          uuid.New(),
		Condition:   "persistent cough",
		Mode:        domain.StaticMode,
		Specialties: []string{"pulmonary-and-critical-care"},
		Opinions: domain.NewAggregatedResponses([]domain.SpecialistResult{
			{Specialty: "pulmonary-and-critical-care", Response: "chest x-ray"},
		}),
		Report:    domain.FinalReport{Text: "report"},
		CreatedAt: time.Now(),
	}
	repository := repositories.NewConsultationRepository(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, repository.Store(consultation))
	require.NoError(t, db.Close())

	t.Setenv("BADGER_FILEPATH", dir)
	t.Setenv("LOG_LEVEL", "ERROR")
	return dir, consultation
}

// requireUnlocked fails when the history database is still held by a previous run.
func requireUnlocked(t *testing.T, dir string) {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestRun_Lists_Consultations(t *testing.T) {
	req := require.New(t)
	dir, consultation := seedHistory(t)
	var out bytes.Buffer

	code, err := run([]string{"-limit", "5"}, &out)

	req.NoError(err)
	req.Equal(exitOK, code)
	req.Contains(out.String(), consultation.ID.String())
	req.Contains(out.String(), "1/1")
	requireUnlocked(t, dir)
}

func TestRun_Prints_One_Consultation(t *testing.T) {
	req := require.New(t)
	dir, consultation := seedHistory(t)
	var out bytes.Buffer

	code, err := run([]string{"-id", consultation.ID.String()}, &out)

	req.NoError(err)
	req.Equal(exitOK, code)
	req.Contains(out.String(), `"condition": "persistent cough"`)
	requireUnlocked(t, dir)
}

func TestRun_Unknown_Consultation_Closes_Database(t *testing.T) {
	req := require.New(t)
	dir, _ := seedHistory(t)

	code, err := run([]string{"-id", uuid.NewString()}, io.Discard)

	req.ErrorIs(err, errors.ErrConsultationNotFound)
	req.Equal(exitRuntime, code)
	requireUnlocked(t, dir)
}

func TestRun_Invalid_ID(t *testing.T) {
	req := require.New(t)
	seedHistory(t)

	code, err := run([]string{"-id", "not-an-id"}, io.Discard)

	req.Error(err)
	req.Equal(exitConfig, code)
}
