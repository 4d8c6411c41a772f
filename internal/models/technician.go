package models

// Technician is a repair technician. Technicians are append-only.
type Technician struct {
	ID        string `json:"id"`
	Name      string `json:"nome" validate:"required,max=120"`
	Phone     string `json:"telefone" validate:"max=30"`
	Specialty string `json:"especialidade" validate:"max=80"`
}

// RecordID implements Record.
func (t Technician) RecordID() string { return t.ID }
