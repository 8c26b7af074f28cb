package domain

// WrappedKey is a decoded wrapped key: an HMAC tag and the ciphertext it authenticates.
type WrappedKey struct {
	Tag        string
	Ciphertext string
}

// Encode joins a tag and a ciphertext into the wire form.
func Encode(tag, ciphertext string) (string, error) {
	if len(tag) != TagLength {
		return "", ErrInvalidTagLength
	}
	return tag + ciphertext, nil
}

// Decode splits a wire string at TagLength. The ciphertext part must not be empty.
func Decode(wire string) (WrappedKey, error) {
	if len(wire) <= TagLength {
		return WrappedKey{}, ErrMalformedEnvelope
	}
	return WrappedKey{
		Tag:        wire[:TagLength],
		Ciphertext: wire[TagLength:],
	}, nil
}

// String returns the wire form.
func (w WrappedKey) String() string {
	return w.Tag + w.Ciphertext
}
