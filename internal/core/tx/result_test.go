package tx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Classes(t *testing.T) {
	assert.True(t, TesSUCCESS.IsSuccess())
	assert.True(t, TesSUCCESS.IsApplied())
	assert.True(t, TecAUCTION_RUNNING.IsTec())
	assert.False(t, TecAUCTION_RUNNING.IsApplied(), "tec results do not change state")
	assert.True(t, TefPAST_SEQ.IsTef())
	assert.True(t, TemBAD_AMOUNT.IsTem())
	assert.True(t, TerPRE_SEQ.IsTer())
	assert.True(t, TerPRE_SEQ.ShouldRetry())
}

func TestResult_Names(t *testing.T) {
	for _, r := range []Result{TesSUCCESS, TecOWNER_BID, TecINVALID_BID, TecAUCTION_ENDED, TemBAD_DURATION, TefBAD_AUTH} {
		parsed, ok := ResultFromString(r.String())
		assert.True(t, ok, r.String())
		assert.Equal(t, r, parsed)
		assert.NotEmpty(t, r.Message())
	}
	_, ok := ResultFromString("tecMADE_UP")
	assert.False(t, ok)
}

func TestResultFromValidation(t *testing.T) {
	assert.Equal(t, TesSUCCESS, ResultFromValidation(nil))
	assert.Equal(t, TemBAD_AMOUNT, ResultFromValidation(errors.New("temBAD_AMOUNT: Amount must be positive")))
	assert.Equal(t, TemMALFORMED, ResultFromValidation(fmt.Errorf("%w: Asset", ErrMissingRequiredField)))
	assert.Equal(t, TemMALFORMED, ResultFromValidation(errors.New("no code here")))
	assert.Equal(t, TemBAD_SRC_ACCOUNT, ResultFromValidation(ErrInvalidAccount))
}
