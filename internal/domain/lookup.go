package domain

import "context"

// LookupGateway resolves reference-data identifiers to display names used in
// generated documents. Read-only; implementations are expected to be fast
// and cacheable, and must never be called inside a mutation transaction.
type LookupGateway interface {
	RegionName(ctx context.Context, id int32) (string, error)
	BranchName(ctx context.Context, id int32) (string, error)
	InstitutionName(ctx context.Context, id int32) (string, error)
	TevkifatCenterName(ctx context.Context, id int32) (string, error)
}
