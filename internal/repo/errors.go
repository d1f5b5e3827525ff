package repo

import "errors"

var (
	// ErrNotFound é retornado quando nenhum registro é encontrado.
	ErrNotFound = errors.New("registro não encontrado")
	// ErrDuplicate é retornado em violação de unicidade.
	ErrDuplicate = errors.New("registro duplicado")
)
