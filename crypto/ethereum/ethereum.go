// Package ethereum provides secp256k1 signing keys and Ethereum-style
// personal-message signatures, used to authenticate principals on the ledger
// API surface.
package ethereum

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// SignatureLength is the size in bytes of an ECDSA signature with recovery id.
const SignatureLength = 65

// SigningPrefix is the prefix added to a message before hashing and signing,
// per the Ethereum personal-message convention.
const SigningPrefix = "\x19Ethereum Signed Message:\n"

// SignKeys holds an ECDSA key pair.
type SignKeys struct {
	Public  ecdsa.PublicKey
	Private ecdsa.PrivateKey
}

// NewSignKeys creates an empty key pair.
func NewSignKeys() *SignKeys {
	return &SignKeys{}
}

// Generate creates a fresh random key pair.
func (k *SignKeys) Generate() error {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return err
	}
	k.Private = *key
	k.Public = key.PublicKey
	return nil
}

// AddHexKey imports a hex-encoded private key.
func (k *SignKeys) AddHexKey(privHex string) error {
	key, err := ethcrypto.HexToECDSA(trimHex(privHex))
	if err != nil {
		return err
	}
	k.Private = *key
	k.Public = key.PublicKey
	return nil
}

// HexString returns the compressed public key and the private key as hex
// strings, without 0x prefix.
func (k *SignKeys) HexString() (string, string) {
	pub := ethcrypto.CompressPubkey(&k.Public)
	priv := ethcrypto.FromECDSA(&k.Private)
	return hex.EncodeToString(pub), hex.EncodeToString(priv)
}

// PublicKey returns the compressed public key bytes.
func (k *SignKeys) PublicKey() []byte {
	return ethcrypto.CompressPubkey(&k.Public)
}

// Address returns the Ethereum address derived from the public key.
func (k *SignKeys) Address() common.Address {
	return ethcrypto.PubkeyToAddress(k.Public)
}

// AddressString returns the checksummed string form of Address.
func (k *SignKeys) AddressString() string {
	return k.Address().String()
}

// SignEthereum signs a message using the Ethereum personal-message prefix.
func (k *SignKeys) SignEthereum(message []byte) ([]byte, error) {
	if k.Private.D == nil {
		return nil, fmt.Errorf("no private key available")
	}
	return ethcrypto.Sign(Hash(message), &k.Private)
}

// Hash returns the keccak256 digest of the prefixed message, the digest that
// SignEthereum actually signs.
func Hash(message []byte) []byte {
	prefixed := fmt.Sprintf("%s%d%s", SigningPrefix, len(message), message)
	return HashRaw([]byte(prefixed))
}

// HashRaw returns the plain keccak256 digest of data.
func HashRaw(data []byte) []byte {
	return ethcrypto.Keccak256(data)
}

// AddrFromPublicKey extracts the Ethereum address from a compressed or
// uncompressed public key.
func AddrFromPublicKey(pub []byte) (common.Address, error) {
	var key *ecdsa.PublicKey
	var err error
	if len(pub) == 33 {
		key, err = ethcrypto.DecompressPubkey(pub)
	} else {
		key, err = ethcrypto.UnmarshalPubkey(pub)
	}
	if err != nil {
		return common.Address{}, err
	}
	return ethcrypto.PubkeyToAddress(*key), nil
}

// AddrFromSignature recovers the address that produced an Ethereum
// personal-message signature over message.
func AddrFromSignature(message, signature []byte) (common.Address, error) {
	if len(signature) != SignatureLength {
		return common.Address{}, fmt.Errorf("invalid signature length %d", len(signature))
	}
	sig := make([]byte, SignatureLength)
	copy(sig, signature)
	if sig[64] >= 27 {
		sig[64] -= 27
	}
	pub, err := ethcrypto.SigToPub(Hash(message), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("cannot recover public key: %w", err)
	}
	return ethcrypto.PubkeyToAddress(*pub), nil
}

func trimHex(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
