package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/inkpost/backend/internal/repositories"
)

// Ownership is the outcome of an ownership check. Missing is kept apart from
// NotOwned so callers can answer 404 instead of 403 for vanished resources.
type Ownership int

const (
	Missing Ownership = iota
	Owned
	NotOwned
)

func (o Ownership) String() string {
	switch o {
	case Owned:
		return "owned"
	case NotOwned:
		return "not owned"
	default:
		return "missing"
	}
}

// AuthorLookup returns the author of a resource or repositories.ErrNotFound.
type AuthorLookup func(ctx context.Context, id uint) (uint, error)

// CheckOwnership compares the resource's author with the acting user.
func CheckOwnership(ctx context.Context, lookup AuthorLookup, resourceID, actingUserID uint) (Ownership, error) {
	authorID, err := lookup(ctx, resourceID)
	if errors.Is(err, repositories.ErrNotFound) {
		return Missing, nil
	}
	if err != nil {
		return Missing, storageError("ownership lookup failed", err)
	}
	if authorID != actingUserID {
		return NotOwned, nil
	}
	return Owned, nil
}

// IsOwner is the boolean form of CheckOwnership: false for both a missing
// resource and someone else's resource.
func IsOwner(ctx context.Context, lookup AuthorLookup, resourceID, actingUserID uint) (bool, error) {
	o, err := CheckOwnership(ctx, lookup, resourceID, actingUserID)
	return o == Owned, err
}

// requireOwner turns the ownership outcome into the error a mutation reports.
// noun names the resource in messages ("Post"), verb the attempted mutation.
func requireOwner(ctx context.Context, lookup AuthorLookup, resourceID, actingUserID uint, noun, verb string) error {
	o, err := CheckOwnership(ctx, lookup, resourceID, actingUserID)
	if err != nil {
		return err
	}
	switch o {
	case Owned:
		return nil
	case NotOwned:
		return newError(ErrForbidden, "Not authorized to %s this %s", verb, strings.ToLower(noun))
	default:
		return newError(ErrNotFound, "%s not found", noun)
	}
}

// checkActor is consulted after a foreign key violation on an insert. A token
// can outlive its account, so the violated reference may be the acting user
// rather than the parent row.
func checkActor(ctx context.Context, users repositories.UserRepository, userID uint) error {
	_, err := users.GetUserByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return newError(ErrUnauthorized, "User account no longer exists")
	}
	if err != nil {
		return storageError("user lookup failed", err)
	}
	return nil
}
