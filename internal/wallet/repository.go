package wallet

import "context"

// Repository persists the device credential. There is exactly one row per
// owner; Save upserts it.
type Repository interface {
	Get(ctx context.Context, ownerID string) (Credential, error)
	Save(ctx context.Context, cred Credential) error
}
