package tree

import "context"

// StoreError represents an error related with tree stores
type StoreError string

/*
ErrTreeNotFound is the error returned (possibly wrapped) when updating
or deleting a tree that is not in the store.
*/
const ErrTreeNotFound = StoreError("tree not found")

func (se StoreError) Error() string {
	return string(se)
}

/*
Store is an interface to manage a store
where trees can be created, retrieved, updated
and deleted.

All it methods take a context that may allow
cancelling the operation (thus forcing the return
of an error) if the implementation allows it.
*/
type Store interface {
	// Create takes a tree and stores it for the
	// first time in the store, returning the ID
	// generated for it or an error if the tree
	// cannot be stored.
	Create(ctx context.Context, t *Tree) (string, error)
	// Get takes an id and returns the tree in the
	// store with that id (or nil if it cannot be
	// found) or an error if the store cannot be
	// queried
	Get(ctx context.Context, id string) (*Tree, error)
	// Store takes an id of a tree already existing in
	// the store and replaces it with the given tree.
	// It returns an error wrapping ErrTreeNotFound if
	// there is no tree with that id, or another error
	// if the update cannot be performed.
	Store(ctx context.Context, id string, t *Tree) error
	// Delete takes an id of a tree already existing in
	// the store and deletes it. It returns an error
	// wrapping ErrTreeNotFound if there is no tree with
	// that id, or another error if the deletion cannot
	// be performed.
	Delete(ctx context.Context, id string) error
	// Close closes the store, implementations should
	// freeing any resources in use as well as ensure
	// any pending changes are applied before returning
	// (unless the context expires). It returns an error
	// if the Close cannot be completed (because of the
	// context or another error)
	Close(ctx context.Context) error
}
