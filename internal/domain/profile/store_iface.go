package profile

import "context"

// StoreAPI persists profiles. Get, Update and Delete return ErrNotFound for
// unknown ids. List orders by most recently updated first and reports the
// total row count; a limit <= 0 returns every row past offset, and a
// negative offset is treated as zero.
type StoreAPI interface {
	List(ctx context.Context, limit, offset int) ([]Profile, int, error)
	Get(ctx context.Context, id string) (Profile, error)
	Create(ctx context.Context, p Profile) error
	Update(ctx context.Context, p Profile) error
	Delete(ctx context.Context, id string) error
}
