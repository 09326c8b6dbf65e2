package ussd

import "strings"

// Synthesize fills a dial template with the transfer parameters. Substitution
// is literal and order-independent; template validity is enforced when the
// operator registry loads, so nothing is re-checked here. The returned dial
// string contains the secret and must never be persisted.
func Synthesize(template, recipient, amount, secret string) string {
	return strings.NewReplacer(
		"{recipient}", recipient,
		"{amount}", amount,
		"{secret}", secret,
	).Replace(template)
}
