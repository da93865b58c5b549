package auth

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/domain"
)

// CodeGeneratorImpl implements domain.CodeGenerator on top of an injected
// random source. Production wiring passes crypto/rand.Reader; tests may
// substitute a deterministic reader.
type CodeGeneratorImpl struct {
	source io.Reader
}

// NewCodeGenerator creates a code generator reading from source. A nil
// source falls back to crypto/rand.Reader.
func NewCodeGenerator(source io.Reader) domain.CodeGenerator {
	if source == nil {
		source = rand.Reader
	}
	return &CodeGeneratorImpl{source: source}
}

// Generate implements domain.CodeGenerator. Bytes are rejection-sampled so
// every digit is uniform; 250 is the largest multiple of 10 that fits a
// byte.
func (g *CodeGeneratorImpl) Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", length)
	}

	digits := make([]byte, 0, length)
	buf := make([]byte, 1)
	for len(digits) < length {
		if _, err := io.ReadFull(g.source, buf); err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		if buf[0] >= 250 {
			continue
		}
		digits = append(digits, '0'+buf[0]%10)
	}
	return string(digits), nil
}
