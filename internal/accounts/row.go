package accounts

import (
	"strings"
)

// Row is one account as shown in the dashboard.
type Row struct {
	ID             int    `json:"id"`
	Email          string `json:"email"`
	Status         Status `json:"status"`
	PasswordOpenAI string `json:"password_openai"`
	PasswordMail   string `json:"password_mail"`
}

// Credentials returns the row as email:password:password2.
func (r Row) Credentials() string {
	return r.Email + ":" + r.PasswordOpenAI + ":" + r.PasswordMail
}

// Parsed is an account read from an import line.
type Parsed struct {
	Email          string
	PasswordOpenAI string
	PasswordMail   string
	Status         Status
}

// ParseLine reads one import line. Accepted forms are
//
//	email / pass1;pass2 / status
//	email:pass1;pass2
//	email<TAB>pass1;pass2
//
// A single password is used for both fields. Lines without an address or
// without any password are rejected.
func ParseLine(line string) (Parsed, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Parsed{}, false
	}

	p := Parsed{Status: StatusNotRegistered}
	var passwords string

	switch {
	case strings.Contains(line, " / "):
		parts := strings.Split(line, " / ")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		p.Email = strings.ToLower(parts[0])
		if len(parts) >= 2 {
			passwords = parts[1]
		}
		if len(parts) >= 3 {
			if st, err := ParseStatus(parts[2]); err == nil {
				p.Status = st
			}
		}
	case strings.Contains(line, ":"):
		email, rest, _ := strings.Cut(line, ":")
		p.Email = strings.ToLower(strings.TrimSpace(email))
		passwords = strings.TrimSpace(rest)
	case strings.Contains(line, "\t"):
		email, rest, _ := strings.Cut(line, "\t")
		p.Email = strings.ToLower(strings.TrimSpace(email))
		passwords = strings.TrimSpace(rest)
	}

	if first, second, ok := strings.Cut(passwords, ";"); ok {
		p.PasswordOpenAI = strings.TrimSpace(first)
		p.PasswordMail = strings.TrimSpace(second)
	} else {
		p.PasswordOpenAI = strings.TrimSpace(passwords)
		p.PasswordMail = p.PasswordOpenAI
	}

	if !strings.Contains(p.Email, "@") {
		return Parsed{}, false
	}
	if p.PasswordOpenAI == "" && p.PasswordMail == "" {
		return Parsed{}, false
	}
	if p.PasswordOpenAI == "" {
		p.PasswordOpenAI = p.PasswordMail
	}
	if p.PasswordMail == "" {
		p.PasswordMail = p.PasswordOpenAI
	}
	return p, true
}

// ParseBlob reads every valid line of text.
func ParseBlob(text string) []Parsed {
	var out []Parsed
	for line := range strings.Lines(text) {
		if p, ok := ParseLine(line); ok {
			out = append(out, p)
		}
	}
	return out
}
