package signing

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Authorization message layout. The byte widths and field order are fixed;
// changing either invalidates every signature issued so far.
const (
	addressLen = common.AddressLength
	wordLen    = common.HashLength

	// MessageLength is vault(20) + recipient(20) + amount(32) + authID(32) + chainID(32)
	MessageLength = 2*addressLen + 3*wordLen

	// SignatureLength is r(32) + s(32) + v(1)
	SignatureLength = crypto.SignatureLength

	// signedMessagePrefix is the EIP-191 personal-sign prefix for a 32-byte payload
	signedMessagePrefix = "\x19Ethereum Signed Message:\n32"
)

var (
	ErrInvalidSignatureLength = errors.New("signature must be 65 bytes (r, s, v)")
	ErrUnrecoverableSignature = errors.New("could not recover public key from signature")
)

// Message is the five-tuple an authorization signature covers. It binds the
// authorization to exactly one vault deployment, one chain, one recipient
// and one amount.
type Message struct {
	Vault     common.Address
	Recipient common.Address
	Amount    *big.Int
	AuthID    common.Hash
	ChainID   *big.Int
}

// Encode serializes the message into its fixed 136-byte wire form:
// vault || recipient || amount (32-byte BE) || authID || chainID (32-byte BE).
func (m Message) Encode() []byte {
	buf := make([]byte, 0, MessageLength)
	buf = append(buf, m.Vault.Bytes()...)
	buf = append(buf, m.Recipient.Bytes()...)
	buf = append(buf, common.LeftPadBytes(m.Amount.Bytes(), wordLen)...)
	buf = append(buf, m.AuthID.Bytes()...)
	buf = append(buf, common.LeftPadBytes(m.ChainID.Bytes(), wordLen)...)
	return buf
}

// Hash returns the Keccak-256 hash of the encoded message.
func (m Message) Hash() common.Hash {
	return crypto.Keccak256Hash(m.Encode())
}

// SignedDigest returns the digest the signer actually signs: the message hash
// wrapped in the standard signed-message prefix and hashed again.
func (m Message) SignedDigest() common.Hash {
	return crypto.Keccak256Hash([]byte(signedMessagePrefix), m.Hash().Bytes())
}

// RecoverSigner recovers the address that produced signature over digest.
// The recovery byte is accepted in either raw (0/1) or Ethereum (27/28) form.
func RecoverSigner(digest common.Hash, signature []byte) (common.Address, error) {
	if len(signature) != SignatureLength {
		return common.Address{}, errors.Wrapf(ErrInvalidSignatureLength, "got %d bytes", len(signature))
	}

	sig := make([]byte, SignatureLength)
	copy(sig, signature)
	if sig[SignatureLength-1] >= 27 {
		sig[SignatureLength-1] -= 27
	}

	pubKey, err := crypto.SigToPub(digest.Bytes(), sig)
	if err != nil {
		return common.Address{}, errors.Wrap(ErrUnrecoverableSignature, err.Error())
	}

	return crypto.PubkeyToAddress(*pubKey), nil
}
