package bloomsday

import (
	"errors"
	"fmt"
	"testing"
)

var allErrors = []error{
	ErrCorruptHeader,
	ErrBadMagic,
	ErrBadVersion,
	ErrBadAlgorithm,
	ErrBadBlockCount,
	ErrBadBlock,
	ErrTruncated,
	ErrChecksum,
	ErrDecompress,
}

func TestErrors(t *testing.T) {
	// Verify all errors are defined and distinct
	seen := make(map[string]int)
	for i, err := range allErrors {
		if err == nil {
			t.Errorf("error at index %d is nil", i)
			continue
		}
		msg := err.Error()
		if prev, ok := seen[msg]; ok {
			t.Errorf("error at index %d has same message as index %d: %q", i, prev, msg)
		}
		seen[msg] = i
	}
}

// TestErrorsWrapped verifies sentinels survive the context the codecs add.
func TestErrorsWrapped(t *testing.T) {
	for _, sentinel := range allErrors {
		t.Run(sentinel.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("%w: detail", sentinel)
			if !errors.Is(wrapped, sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", wrapped, sentinel)
			}
			for _, other := range allErrors {
				if other != sentinel && errors.Is(wrapped, other) {
					t.Errorf("%v unexpectedly matches %v", wrapped, other)
				}
			}
		})
	}
}
