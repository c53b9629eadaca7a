package feeddistill_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/feeddistill"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := feeddistill.Errorf(feeddistill.ENOTSUPPORTED, "page %q is not supported", "https://example.com")

	assert.Equal(t, feeddistill.ENOTSUPPORTED, feeddistill.ErrorCode(err))
	assert.Equal(t, "page \"https://example.com\" is not supported", feeddistill.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, feeddistill.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, feeddistill.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetching page: %w", feeddistill.Errorf(feeddistill.ENOTFOUND, "no such file"))

	assert.Equal(t, feeddistill.ENOTFOUND, feeddistill.ErrorCode(err))
	assert.Equal(t, "no such file", feeddistill.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("boom")

	assert.Equal(t, feeddistill.EINTERNAL, feeddistill.ErrorCode(err))
	assert.Equal(t, "Internal error.", feeddistill.ErrorMessage(err))
}
