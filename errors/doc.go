/*
Package errors provides semantic error types for the implindex library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound        = errors.New("record not found")
	    ErrAlreadyExists   = errors.New("already registered")
	    ErrInvalidFragment = errors.New("invalid fragment")
	    ErrConditionFailed = errors.New("condition check failed")
	    ErrNoIndexMap      = errors.New("no index map found for type")
	    ErrNoConsumer      = errors.New("no consumer registered")
	)

Usage:

	// Check error type
	rec, err := store.GetOne(ctx, "tower::Service")
	if err != nil {
	    if errors.IsNotFound(err) {
	        // First generation for this trait, nothing stored yet
	        return nil, fmt.Errorf("trait %s has no stored table", "tower::Service")
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewNotFoundError("TableRecord", "tower::Service")
	err := errors.NewFragmentError("implementors/tower/Service.js", "no table literal found")
	err := errors.NewConditionFailedError("update", "version mismatch")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
