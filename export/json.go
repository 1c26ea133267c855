// Package export turns consultations into files and terminal tables.
package export

import (
	"consult-lab/domain"
	"consult-lab/repositories"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
)

// WriteJSON encodes the consultation as indented JSON, the same shape as stored records.
func WriteJSON(w io.Writer, consultation domain.Consultation) error {
	return WriteRecord(w, repositories.ToRecord(consultation))
}

func WriteRecord(w io.Writer, record repositories.ConsultationRecord) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ")
	return encoder.Encode(record)
}

// SaveJSON writes the consultation to path, creating parent directories.
func SaveJSON(path string, consultation domain.Consultation) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(file, consultation); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
