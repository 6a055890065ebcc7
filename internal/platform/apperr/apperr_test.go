// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "direct not found", err: NotFound("Product"), want: true},
		{name: "wrapped not found", err: fmt.Errorf("lookup failed: %w", NotFound("Voucher")), want: true},
		{name: "other app error", err: Conflict("duplicate"), want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, IsNotFound(testCase.err))
		})
	}
}

func TestAsTraversesCauseChain(t *testing.T) {
	cause := Internal(errors.New("db down"))
	wrapped := fmt.Errorf("handler: %w", cause)

	extracted := As(wrapped)
	assert.Same(t, cause, extracted)
	assert.Nil(t, As(errors.New("plain")))
}
