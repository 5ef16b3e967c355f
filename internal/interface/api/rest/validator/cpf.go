package validator

// IsValidCPF checks an 11-digit CPF with the two mod-11 check digits.
// Repeated-digit strings such as 11111111111 pass the checksum but are
// not issued, so they are rejected.
func IsValidCPF(cpf string) bool {
	if len(cpf) != 11 {
		return false
	}

	var d [11]int
	allEqual := true
	for i := 0; i < 11; i++ {
		c := cpf[i]
		if c < '0' || c > '9' {
			return false
		}
		d[i] = int(c - '0')
		if d[i] != d[0] {
			allEqual = false
		}
	}
	if allEqual {
		return false
	}

	return checkDigit(d[:9], 10) == d[9] && checkDigit(d[:10], 11) == d[10]
}

func checkDigit(digits []int, weight int) int {
	sum := 0
	for _, v := range digits {
		sum += v * weight
		weight--
	}
	r := (sum * 10) % 11
	if r == 10 {
		return 0
	}
	return r
}
