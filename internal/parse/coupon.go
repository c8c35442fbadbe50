package parse

import (
	"regexp"
	"strconv"
	"strings"

	"giltcli/pkg/contracts/domain"
)

// couponPattern matches the leading rate token of a gilt description:
// a mixed number ("0 5/8%"), a bare fraction ("5/8%"), an integer or
// decimal percentage ("2%", "4.125%"), or an integer with a unicode
// fraction glyph appended ("3½%").
var couponPattern = regexp.MustCompile(`^(\d+(?:\s+\d+/\d+)?|\d+/\d+|\d+(?:\.\d+)?|\d+[¼½¾])%`)

var glyphFractions = map[string]string{
	"¼": "1/4",
	"½": "1/2",
	"¾": "3/4",
}

// CouponPercent extracts the coupon rate from a gilt description, e.g.
// "0 5/8% Treasury Gilt 2025" -> 0.625 or "3½% Treasury Gilt 2025" -> 3.5.
func CouponPercent(desc string) (float64, error) {
	match := couponPattern.FindStringSubmatch(desc)
	if len(match) < 2 {
		return 0, domain.FieldError(domain.KindInvalidCoupon, fieldDesc)
	}

	token := normalizeGlyphs(match[1])

	if !strings.Contains(token, "/") {
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return 0, domain.FieldError(domain.KindInvalidCoupon, fieldDesc)
		}
		return v, nil
	}

	// "whole numerator/denominator" or bare "numerator/denominator"
	var whole int
	frac := token

	if parts := strings.SplitN(token, " ", 2); len(parts) == 2 {
		w, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, domain.FieldError(domain.KindInvalidCoupon, fieldDesc)
		}
		whole = w
		frac = parts[1]
	}

	num, den, err := parseFraction(frac)
	if err != nil {
		return 0, err
	}

	return float64(whole) + float64(num)/float64(den), nil
}

// normalizeGlyphs rewrites a trailing unicode fraction glyph to an
// explicit "whole numerator/denominator" form before arithmetic
func normalizeGlyphs(token string) string {
	for glyph, frac := range glyphFractions {
		if strings.HasSuffix(token, glyph) {
			return strings.TrimSuffix(token, glyph) + " " + frac
		}
	}
	return token
}

func parseFraction(s string) (int, int, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, 0, domain.FieldError(domain.KindInvalidCoupon, fieldDesc)
	}

	num, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, domain.FieldError(domain.KindInvalidCoupon, fieldDesc)
	}

	den, err := strconv.Atoi(parts[1])
	if err != nil || den == 0 {
		return 0, 0, domain.FieldError(domain.KindInvalidCoupon, fieldDesc)
	}

	return num, den, nil
}
