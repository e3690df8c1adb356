package auxcloud

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/matryer/is"
)

func decryptCBC(t *testing.T, iv, key, ciphertext []byte) []byte {
	t.Helper()

	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}

	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, ciphertext)
	return out
}

func TestEncryptPadsWithZeroBytes(t *testing.T) {
	is := is.New(t)

	key := sessionKey(1700000000)
	plaintext := []byte(`{"email":"u@x.com"}`)

	ciphertext, err := encryptAESCBCZeroPad(aesInitialVector, key, plaintext)
	is.NoErr(err)
	is.Equal(len(ciphertext)%aes.BlockSize, 0)

	decrypted := decryptCBC(t, aesInitialVector, key, ciphertext)
	is.Equal(decrypted[:len(plaintext)], plaintext)

	// the tail must be zero bytes, not PKCS#7 counts
	for _, b := range decrypted[len(plaintext):] {
		is.Equal(b, byte(0))
	}
}

func TestEncryptLeavesAlignedInputUnpadded(t *testing.T) {
	is := is.New(t)

	key := sessionKey(1700000000)
	plaintext := bytes.Repeat([]byte("a"), aes.BlockSize*2)

	ciphertext, err := encryptAESCBCZeroPad(aesInitialVector, key, plaintext)
	is.NoErr(err)
	is.Equal(len(ciphertext), len(plaintext))
	is.Equal(decryptCBC(t, aesInitialVector, key, ciphertext), plaintext)
}

func TestEncryptRejectsBadKeySize(t *testing.T) {
	is := is.New(t)

	_, err := encryptAESCBCZeroPad(aesInitialVector, []byte("short"), []byte("data"))
	is.True(err != nil)
}

func TestSessionKeyDerivation(t *testing.T) {
	is := is.New(t)

	expected := md5.Sum([]byte("1700000000kdixkdqp54545^#*"))
	is.Equal(sessionKey(1700000000), expected[:])
	is.Equal(len(sessionKey(1)), 16)
}

func TestPasswordHash(t *testing.T) {
	is := is.New(t)

	expected := sha1.Sum([]byte("pw4969fj#k23#"))
	is.Equal(hashPassword("pw"), hex.EncodeToString(expected[:]))
}

func TestBodyToken(t *testing.T) {
	is := is.New(t)

	body := []byte(`{"email":"u@x.com"}`)
	expected := md5.Sum([]byte(`{"email":"u@x.com"}xgx3d*fe3478$ukx`))
	is.Equal(bodyToken(body), hex.EncodeToString(expected[:]))
}
