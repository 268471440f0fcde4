package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid phone or password")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")

	// * Business errors.
	ErrInvalidStatus       = errors.New("unknown order status")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrInvalidAmount       = errors.New("amount is not a valid number")
	ErrOrderNumberRequired = errors.New("order number required before status can become PURCHASED")
	ErrRateUnknown         = errors.New("no exchange rate for currency")
	ErrEmptyInvoice        = errors.New("invoice needs at least one order")
	ErrOrderNotOwned       = errors.New("order does not belong to the invoice customer")
)
