package cart

import (
	"context"

	"storefront/internal/errors"

	"github.com/google/uuid"
)

// Reconciler folds an anonymous cart into the signed-in user's cart.
type Reconciler struct {
	backend Backend
	catalog Catalog
}

func NewReconciler(backend Backend, catalog Catalog) *Reconciler {
	return &Reconciler{backend: backend, catalog: catalog}
}

// Reconcile runs once per sign-in and returns the authenticated store.
// An empty anonymous cart only fetches the persisted cart. Otherwise the
// anonymous lines are sent as one batch, the server-merged result is loaded
// and the anonymous cart is emptied. Running it again is harmless because
// the anonymous side is empty by then.
func (r *Reconciler) Reconcile(ctx context.Context, anonymous *Store, userID uuid.UUID) (*Store, error) {
	if anonymous.backend != nil {
		return nil, errors.New("reconcile source must be an anonymous cart")
	}

	items := anonymous.List()
	if len(items) == 0 {
		return NewAuthenticatedStore(ctx, userID, r.backend, r.catalog)
	}

	merged, err := r.backend.Sync(ctx, items)
	if err != nil {
		// The anonymous cart is kept so the next attempt can retry.
		return nil, errors.Wrap(err, "failed to sync anonymous cart")
	}

	store := &Store{
		cart:    New(Owner{UserID: userID}),
		catalog: r.catalog,
		backend: r.backend,
	}
	if err := store.load(merged); err != nil {
		return nil, err
	}

	if err := anonymous.Clear(ctx); err != nil {
		return nil, err
	}

	return store, nil
}
