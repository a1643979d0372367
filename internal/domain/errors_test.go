package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsVersionConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "version conflict error",
			err:  ErrReturnVersionConflict,
			want: true,
		},
		{
			name: "wrapped version conflict error",
			err:  errors.Join(ErrReturnVersionConflict, errors.New("additional context")),
			want: true,
		},
		{
			name: "other error",
			err:  ErrReturnNotFound,
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsVersionConflict(tt.err)
			if got != tt.want {
				t.Errorf("IsVersionConflict() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsIdempotencyConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "idempotency already exists", err: ErrIdempotencyKeyAlreadyExists, want: true},
		{name: "idempotency hash mismatch", err: ErrIdempotencyHashMismatch, want: true},
		{name: "wrapped idempotency conflict", err: errors.Join(ErrIdempotencyHashMismatch, errors.New("extra context")), want: true},
		{name: "non idempotency error", err: ErrReturnVersionConflict, want: false},
		{name: "nil error", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsIdempotencyConflict(tt.err)
			if got != tt.want {
				t.Errorf("IsIdempotencyConflict() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		notFound    bool
		invalidData bool
		notAllowed  bool
	}{
		{name: "return not found", err: ErrReturnNotFound, notFound: true},
		{name: "wrapped order not found", err: fmt.Errorf("load order o-1: %w", ErrOrderNotFound), notFound: true},
		{name: "invalid line item", err: ErrInvalidLineItem, invalidData: true},
		{name: "refund exceeds", err: fmt.Errorf("create: %w", ErrRefundExceedsRefundable), invalidData: true},
		{name: "reason category", err: ErrReturnReasonCategory, invalidData: true},
		{name: "quantity exceeded", err: ErrReturnQuantityExceeded, notAllowed: true},
		{name: "already received", err: ErrReturnAlreadyReceived, notAllowed: true},
		{name: "version conflict has no kind", err: ErrReturnVersionConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.notFound {
				t.Fatalf("IsNotFound=%v, want %v", got, tt.notFound)
			}
			if got := IsInvalidData(tt.err); got != tt.invalidData {
				t.Fatalf("IsInvalidData=%v, want %v", got, tt.invalidData)
			}
			if got := IsNotAllowed(tt.err); got != tt.notAllowed {
				t.Fatalf("IsNotAllowed=%v, want %v", got, tt.notAllowed)
			}
		})
	}
}

func TestSpecificErrorsAreDistinct(t *testing.T) {
	if errors.Is(ErrReturnNotFound, ErrOrderNotFound) {
		t.Fatal("return not found must not match order not found")
	}
	if ErrReturnAlreadyFulfilled.Error() != "return has already been fulfilled" {
		t.Fatalf("unexpected message %q", ErrReturnAlreadyFulfilled.Error())
	}
}
