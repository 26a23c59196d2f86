// Copyright The CouncilSuite Authors.
// SPDX-License-Identifier: MIT

package errors

import "errors"

// Validation represents a validation error in the application,
// such as an approval request created without any required groups.
type Validation struct {
	base
}

// Error returns the error message for Validation.
func (v Validation) Error() string {
	return v.error()
}

// Unwrap returns the wrapped error, if any.
func (v Validation) Unwrap() error {
	return v.err
}

// NewValidation creates a new Validation error with the provided message.
func NewValidation(message string, err ...error) Validation {
	return Validation{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// NotFound represents a missing request, group, verdict, or submission.
type NotFound struct {
	base
}

// Error returns the error message for NotFound.
func (nf NotFound) Error() string {
	return nf.error()
}

// Unwrap returns the wrapped error, if any.
func (nf NotFound) Unwrap() error {
	return nf.err
}

// NewNotFound creates a new NotFound error with the provided message.
func NewNotFound(message string, err ...error) NotFound {
	return NotFound{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// Conflict represents a concurrent-modification conflict, reported when the
// optimistic retry budget for a vote transaction is exhausted.
type Conflict struct {
	base
}

// Error returns the error message for Conflict.
func (c Conflict) Error() string {
	return c.error()
}

// Unwrap returns the wrapped error, if any.
func (c Conflict) Unwrap() error {
	return c.err
}

// NewConflict creates a new Conflict error with the provided message.
func NewConflict(message string, err ...error) Conflict {
	return Conflict{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// AlreadyResolved is reported when a vote is attempted on a request whose
// overall status is no longer pending.
type AlreadyResolved struct {
	base
}

// Error returns the error message for AlreadyResolved.
func (ar AlreadyResolved) Error() string {
	return ar.error()
}

// Unwrap returns the wrapped error, if any.
func (ar AlreadyResolved) Unwrap() error {
	return ar.err
}

// NewAlreadyResolved creates a new AlreadyResolved error with the provided message.
func NewAlreadyResolved(message string, err ...error) AlreadyResolved {
	return AlreadyResolved{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// SelfReviewForbidden is reported when a requester attempts to vote on
// their own approval request.
type SelfReviewForbidden struct {
	base
}

// Error returns the error message for SelfReviewForbidden.
func (sr SelfReviewForbidden) Error() string {
	return sr.error()
}

// Unwrap returns the wrapped error, if any.
func (sr SelfReviewForbidden) Unwrap() error {
	return sr.err
}

// NewSelfReviewForbidden creates a new SelfReviewForbidden error with the provided message.
func NewSelfReviewForbidden(message string, err ...error) SelfReviewForbidden {
	return SelfReviewForbidden{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// NotAGroupMember is reported when the acting user is not a current member
// of any group whose verdict they attempt to vote on.
type NotAGroupMember struct {
	base
}

// Error returns the error message for NotAGroupMember.
func (ng NotAGroupMember) Error() string {
	return ng.error()
}

// Unwrap returns the wrapped error, if any.
func (ng NotAGroupMember) Unwrap() error {
	return ng.err
}

// NewNotAGroupMember creates a new NotAGroupMember error with the provided message.
func NewNotAGroupMember(message string, err ...error) NotAGroupMember {
	return NotAGroupMember{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// AlreadyVoted is reported when a member attempts a second vote on the same
// group verdict, in either direction.
type AlreadyVoted struct {
	base
}

// Error returns the error message for AlreadyVoted.
func (av AlreadyVoted) Error() string {
	return av.error()
}

// Unwrap returns the wrapped error, if any.
func (av AlreadyVoted) Unwrap() error {
	return av.err
}

// NewAlreadyVoted creates a new AlreadyVoted error with the provided message.
func NewAlreadyVoted(message string, err ...error) AlreadyVoted {
	return AlreadyVoted{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// CommentRequired is reported when a rejection is cast without a comment.
type CommentRequired struct {
	base
}

// Error returns the error message for CommentRequired.
func (cr CommentRequired) Error() string {
	return cr.error()
}

// Unwrap returns the wrapped error, if any.
func (cr CommentRequired) Unwrap() error {
	return cr.err
}

// NewCommentRequired creates a new CommentRequired error with the provided message.
func NewCommentRequired(message string, err ...error) CommentRequired {
	return CommentRequired{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}
