// seehuhn.de/go/proposal - compose sales proposals from PDF templates
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package template

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatDollar normalizes a user-entered price.  All characters except
// the ASCII digits are removed and the remaining number is formatted as
// whole dollars with thousands separators, for example "9625" becomes
// "$9,625".  If no digits remain, the result is nil.
//
// Decimal points are removed like any other non-digit, so "$4,500.00"
// becomes "$450,000".
func FormatDollar(raw string) *string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return nil
	}

	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}

	var grouped string
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		p := message.NewPrinter(language.AmericanEnglish)
		grouped = p.Sprintf("%d", n)
	} else {
		grouped = groupThousands(digits)
	}
	res := "$" + grouped
	return &res
}

// groupThousands inserts commas into a string of decimal digits which is
// too long for an int64.
func groupThousands(digits string) string {
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
