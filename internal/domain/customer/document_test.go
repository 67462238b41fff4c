package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDigits(t *testing.T) {
	assert.Equal(t, "11444777000161", NormalizeDigits("11.444.777/0001-61"))
	assert.Equal(t, "52998224725", NormalizeDigits("529.982.247-25"))
	assert.Equal(t, "", NormalizeDigits("abc"))
	assert.Equal(t, "", NormalizeDigits(""))
}

func TestIsValidCPF(t *testing.T) {
	t.Run("accepts valid CPF", func(t *testing.T) {
		assert.True(t, IsValidCPF("52998224725"))
	})

	t.Run("accepts formatted CPF", func(t *testing.T) {
		assert.True(t, IsValidCPF("529.982.247-25"))
	})

	t.Run("rejects wrong check digits", func(t *testing.T) {
		assert.False(t, IsValidCPF("52998224726"))
		assert.False(t, IsValidCPF("52998224715"))
	})

	t.Run("rejects repeated digits", func(t *testing.T) {
		for _, s := range []string{"00000000000", "11111111111", "99999999999"} {
			assert.False(t, IsValidCPF(s), s)
		}
	})

	t.Run("rejects every single-digit mutation", func(t *testing.T) {
		valid := "52998224725"
		for i := 0; i < len(valid); i++ {
			for d := byte('0'); d <= '9'; d++ {
				if valid[i] == d {
					continue
				}
				mutated := valid[:i] + string(d) + valid[i+1:]
				assert.False(t, IsValidCPF(mutated), mutated)
			}
		}
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		assert.False(t, IsValidCPF("5299822472"))
		assert.False(t, IsValidCPF("529982247255"))
		assert.False(t, IsValidCPF(""))
	})
}

func TestIsValidCNPJ(t *testing.T) {
	t.Run("accepts valid CNPJ", func(t *testing.T) {
		assert.True(t, IsValidCNPJ("11444777000161"))
	})

	t.Run("accepts formatted CNPJ", func(t *testing.T) {
		assert.True(t, IsValidCNPJ("11.444.777/0001-61"))
	})

	t.Run("rejects wrong check digits", func(t *testing.T) {
		assert.False(t, IsValidCNPJ("11444777000162"))
		assert.False(t, IsValidCNPJ("11444777000151"))
	})

	t.Run("rejects repeated digits", func(t *testing.T) {
		assert.False(t, IsValidCNPJ("00000000000000"))
		assert.False(t, IsValidCNPJ("11111111111111"))
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		assert.False(t, IsValidCNPJ("1144477700016"))
		assert.False(t, IsValidCNPJ(""))
	})
}
