package money

import (
	"fmt"
	"strings"
)

// Registry monedas habilitadas para selección y sus formateadores, construidos una sola vez.
type Registry struct {
	def        string
	order      []string
	formatters map[string]*Formatter
}

// NewRegistry valida las monedas configuradas contra ISO 4217.
func NewRegistry(def string, supported []string, locale string) (*Registry, error) {
	r := &Registry{def: strings.ToUpper(def), formatters: make(map[string]*Formatter)}
	for _, code := range supported {
		code = strings.ToUpper(strings.TrimSpace(code))
		if _, dup := r.formatters[code]; dup || code == "" {
			continue
		}
		f, err := NewFormatter(code, locale)
		if err != nil {
			return nil, err
		}
		r.formatters[code] = f
		r.order = append(r.order, code)
	}
	if _, ok := r.formatters[r.def]; !ok {
		return nil, fmt.Errorf("moneda por defecto %q no está entre las soportadas", def)
	}
	return r, nil
}

// Default código de la moneda por defecto.
func (r *Registry) Default() string { return r.def }

// Supported códigos en el orden configurado.
func (r *Registry) Supported() []string { return append([]string(nil), r.order...) }

// IsSupported indica si el código está habilitado.
func (r *Registry) IsSupported(code string) bool {
	_, ok := r.formatters[strings.ToUpper(code)]
	return ok
}

// Formatter devuelve el formateador del código, o el de la moneda por defecto
// si el código no está habilitado.
func (r *Registry) Formatter(code string) *Formatter {
	if f, ok := r.formatters[strings.ToUpper(code)]; ok {
		return f
	}
	return r.formatters[r.def]
}
