package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSentinel = errors.New("sentinel")

func TestWrapErrorKeepsChain(t *testing.T) {
	err := WrapError(fmt.Errorf("%w: detail", errSentinel), EINTEGRITY, "font %s corrupted", "X")
	assert.True(t, errors.Is(err, errSentinel))
	assert.Equal(t, EINTEGRITY, Code(err))
	assert.Equal(t, "font X corrupted", UserMessage(err))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, EINTERNAL, Code(errors.New("plain")))
	assert.Equal(t, "", UserMessage(nil))
}

func TestErrorWithNilCause(t *testing.T) {
	err := ErrorWithCode(nil, EBUILD)
	assert.Equal(t, EBUILD, Code(err))
	assert.Equal(t, "build failed", UserMessage(err))
	err = Error(EMISSING, "manifest %s", "m.json")
	assert.Equal(t, "manifest m.json", UserMessage(err))
	assert.Contains(t, err.Error(), "[122]")
}

func TestUserError(t *testing.T) {
	assert.Equal(t, "", UserError(nil))
	err := WrapError(errSentinel, EINTEGRITY, "font %s modified", "Sarabun/Regular")
	assert.Equal(t, "integrity check failed: font Sarabun/Regular modified", UserError(err))
	assert.Equal(t, "build failed", UserError(ErrorWithCode(nil, EBUILD)))
	assert.Equal(t, "internal error", UserError(errors.New("plain")))
}
