package validation

import (
	"strings"
	"unicode"
)

const MinPasswordLength = 8

// maxSimilarity is the share of characters a password may have in common with
// a personal attribute before it is rejected.
const maxSimilarity = 0.7

var commonPasswords = map[string]struct{}{}

func init() {
	for _, value := range strings.Fields(`
		123456 123456789 12345678 password qwerty 12345 1234567 111111 123123 1234567890
		000000 abc123 password1 iloveyou 1q2w3e4r qwertyuiop 654321 123321 666666 7777777
		qwerty123 1qaz2wsx aa12345678 dragon sunshine princess letmein monkey football
		baseball welcome admin admin123 login master hello123 freedom whatever trustno1
		passw0rd starwars superman michael shadow jennifer charlie computer internet
		changeme secret summer2024 winter2024 welcome1 password123 qazwsx zaq12wsx`) {
		commonPasswords[value] = struct{}{}
	}
}

// PasswordProblems lists every strength rule the password breaks. attributes
// are personal values (username, email, first name) it must not resemble.
func PasswordProblems(password string, attributes ...string) []string {
	var problems []string
	if len([]rune(password)) < MinPasswordLength {
		problems = append(problems, "This password is too short. It must contain at least 8 characters.")
	}
	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		problems = append(problems, "This password is too common.")
	}
	if isNumeric(password) {
		problems = append(problems, "This password is entirely numeric.")
	}
	for _, attribute := range attributes {
		if resembles(password, attribute) {
			problems = append(problems, "The password is too similar to your personal information.")
			break
		}
	}
	return problems
}

func isNumeric(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func resembles(password, attribute string) bool {
	password = strings.ToLower(password)
	attribute = strings.ToLower(strings.TrimSpace(attribute))
	if password == "" || attribute == "" {
		return false
	}
	candidates := []string{attribute}
	if local, _, found := strings.Cut(attribute, "@"); found && local != "" {
		candidates = append(candidates, local)
	}
	for _, candidate := range candidates {
		if similarity(password, candidate) >= maxSimilarity {
			return true
		}
	}
	return false
}

// similarity is 2*M/T where M is the length of the longest common substring and
// T the combined length.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	longest := 0
	prev := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		cur := make([]int, len(rb)+1)
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > longest {
					longest = cur[j]
				}
			}
		}
		prev = cur
	}
	return 2 * float64(longest) / float64(len(ra)+len(rb))
}
