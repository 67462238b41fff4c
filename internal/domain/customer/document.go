package customer

import "strings"

// NormalizeDigits strips every non-digit rune from s.
func NormalizeDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// IsValidCPF validates a CPF using its two check digits. Input may contain
// punctuation; it is normalized first.
func IsValidCPF(s string) bool {
	cpf := NormalizeDigits(s)
	if len(cpf) != 11 || allSameDigit(cpf) {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(cpf[i]-'0') * (10 - i)
	}
	d1 := 11 - sum%11
	if d1 >= 10 {
		d1 = 0
	}
	if d1 != int(cpf[9]-'0') {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(cpf[i]-'0') * (11 - i)
	}
	d2 := 11 - sum%11
	if d2 >= 10 {
		d2 = 0
	}
	return d2 == int(cpf[10]-'0')
}

var (
	cnpjWeights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjWeights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// IsValidCNPJ validates a CNPJ using its two check digits. Input may contain
// punctuation; it is normalized first.
func IsValidCNPJ(s string) bool {
	cnpj := NormalizeDigits(s)
	if len(cnpj) != 14 || allSameDigit(cnpj) {
		return false
	}

	if cnpjCheckDigit(cnpj, cnpjWeights1) != int(cnpj[12]-'0') {
		return false
	}
	return cnpjCheckDigit(cnpj, cnpjWeights2) == int(cnpj[13]-'0')
}

func cnpjCheckDigit(cnpj string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(cnpj[i]-'0') * w
	}
	if r := sum % 11; r >= 2 {
		return 11 - r
	}
	return 0
}
