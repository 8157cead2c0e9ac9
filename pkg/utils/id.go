package utils

import (
	"strconv"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// TimestampIDGenerator gera IDs a partir do horário atual em milissegundos.
// Se dois IDs caírem no mesmo milissegundo, o segundo é incrementado, então
// os IDs são sempre únicos e crescentes dentro do processo.
type TimestampIDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewTimestampIDGenerator() *TimestampIDGenerator {
	return &TimestampIDGenerator{now: time.Now}
}

func (g *TimestampIDGenerator) NextID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id

	return strconv.FormatInt(id, 10)
}

const tokenIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const tokenIDLength = 12

// GenerateTokenID gera o identificador aleatório usado nos tokens de sessão
func GenerateTokenID() (string, error) {
	return gonanoid.Generate(tokenIDAlphabet, tokenIDLength)
}
