package types

import (
	"fmt"
	"math/big"
)

// BigInt wraps big.Int to provide decimal-string JSON encoding and big-endian
// byte CBOR encoding.
type BigInt big.Int

// MathBigInt converts b to a *big.Int.
func (b *BigInt) MathBigInt() *big.Int {
	return (*big.Int)(b)
}

// SetUint64 sets b to v and returns b.
func (b *BigInt) SetUint64(v uint64) *BigInt {
	return (*BigInt)(b.MathBigInt().SetUint64(v))
}

// SetBytes interprets data as big-endian bytes, sets b and returns b.
func (b *BigInt) SetBytes(data []byte) *BigInt {
	return (*BigInt)(b.MathBigInt().SetBytes(data))
}

// Bytes returns the big-endian byte representation of b.
func (b *BigInt) Bytes() []byte {
	return b.MathBigInt().Bytes()
}

func (b *BigInt) String() string {
	return b.MathBigInt().String()
}

// Equal reports whether b and other represent the same integer.
func (b *BigInt) Equal(other *BigInt) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.MathBigInt().Cmp(other.MathBigInt()) == 0
}

// MarshalJSON implements the json.Marshaler interface.
func (b BigInt) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface. It accepts both a
// decimal string and a bare JSON number.
func (b *BigInt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if _, ok := b.MathBigInt().SetString(s, 10); !ok {
		return fmt.Errorf("invalid integer %q", s)
	}
	return nil
}

// MarshalCBOR implements the cbor.Marshaler interface.
func (b BigInt) MarshalCBOR() ([]byte, error) {
	// major type 2 (byte string) with the big-endian bytes
	data := (*big.Int)(&b).Bytes()
	if len(data) > 23 {
		hdr := []byte{0x58, byte(len(data))}
		return append(hdr, data...), nil
	}
	return append([]byte{0x40 | byte(len(data))}, data...), nil
}

// UnmarshalCBOR implements the cbor.Unmarshaler interface.
func (b *BigInt) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty CBOR data")
	}
	switch {
	case data[0] >= 0x40 && data[0] <= 0x57:
		n := int(data[0] - 0x40)
		if len(data) < 1+n {
			return fmt.Errorf("truncated CBOR byte string")
		}
		b.SetBytes(data[1 : 1+n])
	case data[0] == 0x58:
		if len(data) < 2 {
			return fmt.Errorf("truncated CBOR byte string")
		}
		n := int(data[1])
		if len(data) < 2+n {
			return fmt.Errorf("truncated CBOR byte string")
		}
		b.SetBytes(data[2 : 2+n])
	default:
		return fmt.Errorf("unexpected CBOR type 0x%x for BigInt", data[0])
	}
	return nil
}
