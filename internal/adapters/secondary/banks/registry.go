package banks

import (
	"fmt"
	"strings"

	"statement-converter-service/internal/core/domain"
	ports "statement-converter-service/internal/core/ports/output"
)

// Registry maps bank keys to their statement parsers.
type Registry struct {
	parsers map[string]ports.StatementParser
	order   []string
}

// NewRegistry registers all supported bank formats.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[string]ports.StatementParser)}
	r.register(NewRabobankLegacyParser())
	r.register(NewRabobankParser())
	r.register(NewIngParser())
	r.register(NewAmexParser())
	r.register(NewIcsParser())
	r.register(NewSpreadsheetParser())
	return r
}

func (r *Registry) register(p ports.StatementParser) {
	r.parsers[p.Bank()] = p
	r.order = append(r.order, p.Bank())
}

func (r *Registry) Get(bank string) (ports.StatementParser, error) {
	p, ok := r.parsers[strings.ToLower(bank)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", domain.ErrUnknownBank, bank, strings.Join(r.order, ", "))
	}
	return p, nil
}

func (r *Registry) Banks() []domain.BankInfo {
	infos := make([]domain.BankInfo, 0, len(r.order))
	for _, key := range r.order {
		p := r.parsers[key]
		infos = append(infos, domain.BankInfo{
			Key:         p.Bank(),
			Name:        p.Name(),
			DisplayName: p.DisplayName(),
			FileTypes:   p.FileTypes(),
		})
	}
	return infos
}
