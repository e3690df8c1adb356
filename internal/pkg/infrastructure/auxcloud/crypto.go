package auxcloud

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

// aesInitialVector is the fixed IV the vendor app uses for login payloads.
var aesInitialVector = []byte{
	0xEA, 0xAA, 0xAA, 0x3A, 0xBB, 0x58, 0x62, 0xA2,
	0x19, 0x18, 0xB5, 0x77, 0x1D, 0x16, 0x15, 0xAA,
}

// encryptAESCBCZeroPad encrypts plaintext with AES-128-CBC, padding with
// zero bytes up to the block size. The vendor expects zero padding here,
// not PKCS#7; a standard padded mode fails the login handshake.
func encryptAESCBCZeroPad(iv, key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	padded := plaintext
	if rem := len(plaintext) % aes.BlockSize; rem != 0 {
		padded = make([]byte, len(plaintext)+aes.BlockSize-rem)
		copy(padded, plaintext)
	}

	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	return out, nil
}

// hashPassword returns the vendor login hash: SHA-1 over the password
// concatenated with the shared password key, lowercase hex.
func hashPassword(password string) string {
	sum := sha1.Sum([]byte(password + passwordEncryptKey))
	return hex.EncodeToString(sum[:])
}

// bodyToken returns the request-validation token: MD5 over the JSON body
// concatenated with the shared body key, lowercase hex.
func bodyToken(body []byte) string {
	sum := md5.Sum([]byte(string(body) + bodyEncryptKey))
	return hex.EncodeToString(sum[:])
}

// sessionKey derives the AES key for a login request: raw MD5 over the
// request timestamp concatenated with the shared timestamp key.
func sessionKey(timestamp int64) []byte {
	sum := md5.Sum([]byte(fmt.Sprintf("%d%s", timestamp, timestampTokenEncryptKey)))
	return sum[:]
}
