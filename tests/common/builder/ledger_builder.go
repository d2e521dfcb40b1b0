//go:build unit || e2e

package builder

import (
	"time"

	"lessonbook/internal/domain/ledger"

	"github.com/google/uuid"
)

type LedgerEntryBuilder struct {
	ID            uuid.UUID
	StudentID     uuid.UUID
	CourseID      uuid.UUID
	OrderRef      string
	QuantityTotal int
	QuantityUsed  int
	CreatedAt     time.Time
}

func NewLedgerEntryBuilder() *LedgerEntryBuilder {
	return &LedgerEntryBuilder{
		ID:            uuid.New(),
		StudentID:     uuid.New(),
		CourseID:      uuid.New(),
		OrderRef:      "order-0001",
		QuantityTotal: 10,
		QuantityUsed:  0,
		CreatedAt:     time.Now(),
	}
}

func (b *LedgerEntryBuilder) BuildDomain() (*ledger.Entry, error) {
	return ledger.ReconstructEntry(
		b.ID, b.StudentID, b.CourseID,
		b.OrderRef,
		b.QuantityTotal, b.QuantityUsed,
		b.CreatedAt,
	)
}

// Fluent builder methods
func (b *LedgerEntryBuilder) WithStudentID(studentID uuid.UUID) *LedgerEntryBuilder {
	b.StudentID = studentID
	return b
}

func (b *LedgerEntryBuilder) WithCourseID(courseID uuid.UUID) *LedgerEntryBuilder {
	b.CourseID = courseID
	return b
}

func (b *LedgerEntryBuilder) WithQuantities(total, used int) *LedgerEntryBuilder {
	b.QuantityTotal = total
	b.QuantityUsed = used
	return b
}
