package constant_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/rskv-p/huff/constant"
	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	errs := []error{
		constant.ErrBadRequest,
		constant.ErrNotFound,
		constant.ErrUnauthorized,
		constant.ErrNoStore,
	}
	for _, err := range errs {
		assert.Error(t, err)
		assert.NotEmpty(t, err.Error())
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusOK, constant.StatusFor(nil))
	assert.Equal(t, http.StatusBadRequest, constant.StatusFor(fmt.Errorf("decode: %w", constant.ErrBadRequest)))
	assert.Equal(t, http.StatusNotFound, constant.StatusFor(constant.ErrNotFound))
	assert.Equal(t, http.StatusUnauthorized, constant.StatusFor(constant.ErrUnauthorized))
	assert.Equal(t, http.StatusServiceUnavailable, constant.StatusFor(constant.ErrNoStore))
	assert.Equal(t, http.StatusInternalServerError, constant.StatusFor(errors.New("boom")))
}

func TestConstants_Values(t *testing.T) {
	assert.Equal(t, "huff.encode", constant.SubjectEncode)
	assert.Equal(t, "HUFF_", constant.EnvPrefix)
	assert.Equal(t, 4*1024*1024, constant.MaxInputSize)
}
