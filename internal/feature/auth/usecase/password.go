package usecase

import (
	"fmt"
	"unicode"
)

// minPasswordLength はパスワードの最低文字数を定義します。
const minPasswordLength = 8

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
// 8文字以上で、大文字・小文字・数字・記号をそれぞれ1文字以上含む必要があります。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", ErrWeakPassword, minPasswordLength)
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	if !upper || !lower || !digit || !symbol {
		return fmt.Errorf("%w: needs an uppercase letter, a lowercase letter, a digit and a symbol", ErrWeakPassword)
	}
	return nil
}
