package utils

import (
	"math"
	"strings"
)

var ones = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}

var teens = []string{
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// NumberToNairaWords spells an amount the way it is printed on receipts,
// e.g. 125000 -> "One Hundred and Twenty Five Thousand Naira Only".
// Kobo are not spelled; the amount is rounded to whole naira first.
func NumberToNairaWords(amount float64) string {
	num := int64(math.Round(math.Abs(amount)))
	if num == 0 {
		return "Zero Naira Only"
	}
	return spellGroups(num) + " Naira Only"
}

func spellGroups(num int64) string {
	if num < 1000 {
		return belowThousand(num)
	}
	if num < 1000000 {
		thousands := num / 1000
		rest := num % 1000
		out := belowThousand(thousands) + " Thousand"
		if rest > 0 {
			out += " " + belowThousand(rest)
		}
		return out
	}
	if num < 1000000000 {
		millions := num / 1000000
		rest := num % 1000000
		out := belowThousand(millions) + " Million"
		if rest >= 1000 {
			out += " " + belowThousand(rest/1000) + " Thousand"
			if rest%1000 > 0 {
				out += " " + belowThousand(rest%1000)
			}
		} else if rest > 0 {
			out += " " + belowThousand(rest)
		}
		return out
	}

	billions := num / 1000000000
	rest := num % 1000000000
	out := spellGroups(billions) + " Billion"
	if rest > 0 {
		out += " " + spellGroups(rest)
	}
	return out
}

func belowThousand(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 10:
		return ones[n]
	case n < 20:
		return teens[n-10]
	case n < 100:
		return strings.TrimSpace(tens[n/10] + " " + ones[n%10])
	}
	rest := n % 100
	if rest == 0 {
		return ones[n/100] + " Hundred"
	}
	return ones[n/100] + " Hundred and " + belowThousand(rest)
}
