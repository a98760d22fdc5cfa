package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateActionAcceptsWellFormedProposals(t *testing.T) {
	v, err := NewActionValidator()
	require.NoError(t, err)

	assert.NoError(t, v.ValidateAction([]byte(`{"type":"fold"}`)))
	assert.NoError(t, v.ValidateAction([]byte(`{"type":"raise","amount":120}`)))
}

func TestValidateActionRejectsUnknownType(t *testing.T) {
	v, err := NewActionValidator()
	require.NoError(t, err)

	assert.Error(t, v.ValidateAction([]byte(`{"type":"shove"}`)))
}

func TestValidateActionRejectsNegativeAmount(t *testing.T) {
	v, err := NewActionValidator()
	require.NoError(t, err)

	assert.Error(t, v.ValidateAction([]byte(`{"type":"bet","amount":-5}`)))
}

func TestValidateActionRejectsUnknownFields(t *testing.T) {
	v, err := NewActionValidator()
	require.NoError(t, err)

	assert.Error(t, v.ValidateAction([]byte(`{"type":"call","amount":20,"note":"hi"}`)))
}

func TestValidateActionRejectsMalformedJSON(t *testing.T) {
	v, err := NewActionValidator()
	require.NoError(t, err)

	assert.Error(t, v.ValidateAction([]byte(`{not json`)))
}
