package docnumber

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Префиксы документов
const (
	PrefixVoucher     = "MAT"
	PrefixCertificate = "CERT"
)

// Generator выдает номера вида PREFIX-PLATE-YYYYMMDD-NNN.
// NNN - случайное число 000-999, уникальность не гарантируется и не проверяется
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New создает генератор со случайным seed
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource создает генератор с заданным источником (для тестов)
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Next формирует номер документа
func (g *Generator) Next(prefix, plate string, date time.Time) string {
	g.mu.Lock()
	n := g.rnd.Intn(1000)
	g.mu.Unlock()

	return fmt.Sprintf("%s-%s-%s-%03d", prefix, plate, date.Format("20060102"), n)
}

// Voucher - номер comprobante
func (g *Generator) Voucher(plate string, date time.Time) string {
	return g.Next(PrefixVoucher, plate, date)
}

// Certificate - номер сертификата
func (g *Generator) Certificate(plate string, date time.Time) string {
	return g.Next(PrefixCertificate, plate, date)
}
