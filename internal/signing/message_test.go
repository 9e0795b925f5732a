package signing_test

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/custodia/custodia-api/internal/signing"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() signing.Message {
	return signing.Message{
		Vault:     common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Recipient: common.HexToAddress("0x2222222222222222222222222222222222222222"),
		Amount:    big.NewInt(40),
		AuthID:    common.HexToHash("0x0000000000000000000000000000000000000000000000000000000000000001"),
		ChainID:   big.NewInt(1),
	}
}

func TestMessageEncode(t *testing.T) {
	msg := testMessage()
	encoded := msg.Encode()

	require.Len(t, encoded, signing.MessageLength)

	// Fixed field order: vault, recipient, amount, authID, chainID
	assert.True(t, bytes.Equal(encoded[0:20], msg.Vault.Bytes()))
	assert.True(t, bytes.Equal(encoded[20:40], msg.Recipient.Bytes()))
	assert.True(t, bytes.Equal(encoded[40:72], common.LeftPadBytes(big.NewInt(40).Bytes(), 32)))
	assert.True(t, bytes.Equal(encoded[72:104], msg.AuthID.Bytes()))
	assert.True(t, bytes.Equal(encoded[104:136], common.LeftPadBytes(big.NewInt(1).Bytes(), 32)))
}

func TestMessageHashCoversEveryField(t *testing.T) {
	base := testMessage()

	mutations := map[string]signing.Message{
		"vault":     {Vault: common.HexToAddress("0x3333333333333333333333333333333333333333"), Recipient: base.Recipient, Amount: base.Amount, AuthID: base.AuthID, ChainID: base.ChainID},
		"recipient": {Vault: base.Vault, Recipient: common.HexToAddress("0x3333333333333333333333333333333333333333"), Amount: base.Amount, AuthID: base.AuthID, ChainID: base.ChainID},
		"amount":    {Vault: base.Vault, Recipient: base.Recipient, Amount: big.NewInt(41), AuthID: base.AuthID, ChainID: base.ChainID},
		"auth_id":   {Vault: base.Vault, Recipient: base.Recipient, Amount: base.Amount, AuthID: common.HexToHash("0x02"), ChainID: base.ChainID},
		"chain_id":  {Vault: base.Vault, Recipient: base.Recipient, Amount: base.Amount, AuthID: base.AuthID, ChainID: big.NewInt(5)},
	}

	for name, mutated := range mutations {
		t.Run(name, func(t *testing.T) {
			assert.NotEqual(t, base.Hash(), mutated.Hash())
			assert.NotEqual(t, base.SignedDigest(), mutated.SignedDigest())
		})
	}
}

func TestRecoverSigner(t *testing.T) {
	privKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	signerAddr := crypto.PubkeyToAddress(privKey.PublicKey)

	msg := testMessage()
	digest := msg.SignedDigest()

	sig, err := crypto.Sign(digest.Bytes(), privKey)
	require.NoError(t, err)

	recovered, err := signing.RecoverSigner(digest, sig)
	require.NoError(t, err)
	assert.Equal(t, signerAddr, recovered)
}

func TestRecoverSignerEthereumVByte(t *testing.T) {
	privKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	signerAddr := crypto.PubkeyToAddress(privKey.PublicKey)

	digest := testMessage().SignedDigest()
	sig, err := crypto.Sign(digest.Bytes(), privKey)
	require.NoError(t, err)

	// Wallets typically emit V as 27/28 rather than 0/1
	ethSig := make([]byte, len(sig))
	copy(ethSig, sig)
	ethSig[64] += 27

	recovered, err := signing.RecoverSigner(digest, ethSig)
	require.NoError(t, err)
	assert.Equal(t, signerAddr, recovered)
}

func TestRecoverSignerRejectsMalformedSignature(t *testing.T) {
	digest := testMessage().SignedDigest()

	tests := []struct {
		name      string
		signature []byte
	}{
		{name: "empty", signature: []byte{}},
		{name: "too short", signature: make([]byte, 64)},
		{name: "too long", signature: make([]byte, 66)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := signing.RecoverSigner(digest, tc.signature)
			require.Error(t, err)
			assert.ErrorIs(t, err, signing.ErrInvalidSignatureLength)
		})
	}
}

func TestSignatureDoesNotVerifyAcrossMutatedFields(t *testing.T) {
	privKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	signerAddr := crypto.PubkeyToAddress(privKey.PublicKey)

	base := testMessage()
	sig, err := crypto.Sign(base.SignedDigest().Bytes(), privKey)
	require.NoError(t, err)

	tampered := base
	tampered.Amount = big.NewInt(41)

	recovered, err := signing.RecoverSigner(tampered.SignedDigest(), sig)
	require.NoError(t, err)
	assert.NotEqual(t, signerAddr, recovered)
}
