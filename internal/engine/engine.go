package engine

import (
	"errors"

	"saju-mbti/internal/bazi"
	"saju-mbti/internal/content"
)

var ErrEngineNotConfigured = errors.New("engine not configured")

// Engine combina las tablas de contenido con la logica de pilares y tipos.
// Es seguro para uso concurrente: no muta estado despues de New.
type Engine struct {
	tables   *content.Tables
	resolver *bazi.Resolver
}

// New construye el motor. resolver puede ser nil (se usa la formula local).
func New(tables *content.Tables, resolver *bazi.Resolver) *Engine {
	if resolver == nil {
		resolver = bazi.NewResolver(nil, nil)
	}
	return &Engine{tables: tables, resolver: resolver}
}

// Tables expone el contenido cargado (solo lectura).
func (e *Engine) Tables() *content.Tables {
	return e.tables
}

// Resolver expone el resolvedor de pilares en uso.
func (e *Engine) Resolver() *bazi.Resolver {
	return e.resolver
}

func (e *Engine) ready() error {
	if e == nil || e.tables == nil {
		return ErrEngineNotConfigured
	}
	return nil
}
