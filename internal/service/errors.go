package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/groupspend/internal/calculator"
	"github.com/mmynk/groupspend/internal/middleware"
	"github.com/mmynk/groupspend/internal/storage"
)

var errNotMember = errors.New("not a member of this group")

// splitError maps an engine validation error to CodeInvalidArgument with the
// reason attached as error metadata. Other errors become CodeInternal.
func splitError(err error) *connect.Error {
	reason := calculator.ReasonOf(err)
	if reason == "" {
		return connect.NewError(connect.CodeInternal, err)
	}
	cerr := connect.NewError(connect.CodeInvalidArgument, err)
	cerr.Meta().Set(middleware.SplitReasonHeader, reason.Code())
	return cerr
}

// storeError maps storage.ErrNotFound to CodeNotFound, storage.ErrConflict to
// CodeAlreadyExists and everything else to CodeInternal.
func storeError(err error) *connect.Error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
