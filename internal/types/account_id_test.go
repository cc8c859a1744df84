package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleID() AccountID {
	var id AccountID
	for i := range id {
		id[i] = byte(i + 1)
	}
	return id
}

func TestAccountID_StringRoundTrip(t *testing.T) {
	id := sampleID()

	parsed, err := ParseAccountID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestAccountID_ParseHex(t *testing.T) {
	id := sampleID()

	parsed, err := ParseAccountID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestAccountID_ParseErrors(t *testing.T) {
	t.Run("not base58", func(t *testing.T) {
		_, err := ParseAccountID("0OIl")
		require.ErrorIs(t, err, ErrInvalidAddress)
	})

	t.Run("bad checksum", func(t *testing.T) {
		addr := []byte(sampleID().String())
		last := addr[len(addr)-1]
		if last == '2' {
			addr[len(addr)-1] = '3'
		} else {
			addr[len(addr)-1] = '2'
		}
		_, err := ParseAccountID(string(addr))
		require.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseAccountID("")
		require.ErrorIs(t, err, ErrInvalidAddress)
	})
}

func TestAccountID_JSON(t *testing.T) {
	type wrapper struct {
		Account AccountID `json:"Account"`
	}
	in := wrapper{Account: sampleID()}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), in.Account.String())

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestAccountID_IsZero(t *testing.T) {
	assert.True(t, ZeroAccount.IsZero())
	assert.False(t, sampleID().IsZero())
}
