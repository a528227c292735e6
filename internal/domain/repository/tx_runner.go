package repository

import "context"

// TxRepositories agrupa los repositorios ligados a una misma transacción.
// Dentro de WithinTx todas las escrituras comparten commit/rollback.
type TxRepositories struct {
	Companies      CompanyRepository
	Users          UserRepository
	Projects       ProjectRepository
	ProjectMembers ProjectMemberRepository
	TimeTrackings  TimeTrackingRepository
}

// TxRunner ejecuta fn dentro de una transacción de base de datos. Si fn
// devuelve error la transacción se revierte; si no, se confirma.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(r TxRepositories) error) error
}
