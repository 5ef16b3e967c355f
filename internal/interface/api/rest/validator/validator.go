package validator

import (
	"math"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"hotel-users-api/internal/domain/user"
	"hotel-users-api/internal/interface/api/rest/dto/auth"
	dto "hotel-users-api/internal/interface/api/rest/dto/user"
)

const (
	minNameLen     = 2
	maxNameLen     = 100
	minPhoneLen    = 10
	maxPhoneLen    = 15
	minAddressLen  = 5
	maxAddressLen  = 200
	minPasswordLen = 6
	maxPasswordLen = 50
	// bcrypt rejects longer input
	maxPasswordBytes = 72
	minQueryLen      = 2

	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// keeps (page-1)*limit inside an int32 offset
	MaxPage = math.MaxInt32 / MaxLimit
)

var idRe = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

type (
	FieldError struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	FieldErrors []FieldError
)

func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, e := range fe {
		parts[i] = e.Field + ": " + e.Message
	}
	return strings.Join(parts, "; ")
}

func (fe *FieldErrors) add(field, msg string) {
	*fe = append(*fe, FieldError{Field: field, Message: msg})
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func cleanEmail(s string) string {
	return strings.ToLower(clean(s))
}

func checkLen(errs *FieldErrors, field, v string, min, max int) {
	if l := utf8.RuneCountInString(v); l < min || l > max {
		errs.add(field, field+" must be "+strconv.Itoa(min)+" to "+strconv.Itoa(max)+" characters")
	}
}

func checkPassword(errs *FieldErrors, v string) {
	checkLen(errs, "senha", v, minPasswordLen, maxPasswordLen)
	if len(v) > maxPasswordBytes {
		errs.add("senha", "senha must be at most "+strconv.Itoa(maxPasswordBytes)+" bytes")
	}
}

func checkEmail(errs *FieldErrors, email string) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !hasDottedDomain(email) {
		errs.add("email", "email must be a valid address")
	}
}

func hasDottedDomain(email string) bool {
	at := strings.LastIndexByte(email, '@')
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.HasSuffix(domain, ".") && !strings.HasPrefix(domain, ".")
}

func checkCPF(errs *FieldErrors, cpf string) {
	if !IsValidCPF(cpf) {
		errs.add("cpf", "cpf must be 11 digits with valid check digits")
	}
}

func ValidateCreate(r dto.CreateRequest) (user.NewUser, FieldErrors) {
	var errs FieldErrors
	nu := user.NewUser{
		Name:     clean(r.Name),
		Email:    cleanEmail(r.Email),
		CPF:      clean(r.CPF),
		Phone:    clean(r.Phone),
		Address:  clean(r.Address),
		Password: r.Password,
	}

	if nu.Name == "" {
		errs.add("nome", "nome is required")
	} else {
		checkLen(&errs, "nome", nu.Name, minNameLen, maxNameLen)
	}
	if nu.Email == "" {
		errs.add("email", "email is required")
	} else {
		checkEmail(&errs, nu.Email)
	}
	if nu.CPF == "" {
		errs.add("cpf", "cpf is required")
	} else {
		checkCPF(&errs, nu.CPF)
	}
	if nu.Phone == "" {
		errs.add("telefone", "telefone is required")
	} else {
		checkLen(&errs, "telefone", nu.Phone, minPhoneLen, maxPhoneLen)
	}
	if nu.Address == "" {
		errs.add("endereco", "endereco is required")
	} else {
		checkLen(&errs, "endereco", nu.Address, minAddressLen, maxAddressLen)
	}
	if nu.Password == "" {
		errs.add("senha", "senha is required")
	} else {
		checkPassword(&errs, nu.Password)
	}

	if len(errs) > 0 {
		return user.NewUser{}, errs
	}
	return nu, nil
}

func ValidateUpdate(r dto.UpdateRequest) (user.Patch, FieldErrors) {
	var (
		errs FieldErrors
		p    user.Patch
	)

	if r.Name != nil {
		v := clean(*r.Name)
		checkLen(&errs, "nome", v, minNameLen, maxNameLen)
		p.Name = &v
	}
	if r.Email != nil {
		v := cleanEmail(*r.Email)
		checkEmail(&errs, v)
		p.Email = &v
	}
	if r.CPF != nil {
		v := clean(*r.CPF)
		checkCPF(&errs, v)
		p.CPF = &v
	}
	if r.Phone != nil {
		v := clean(*r.Phone)
		checkLen(&errs, "telefone", v, minPhoneLen, maxPhoneLen)
		p.Phone = &v
	}
	if r.Address != nil {
		v := clean(*r.Address)
		checkLen(&errs, "endereco", v, minAddressLen, maxAddressLen)
		p.Address = &v
	}
	if r.Password != nil {
		v := *r.Password
		checkPassword(&errs, v)
		p.Password = &v
	}

	if len(errs) == 0 && p.IsEmpty() {
		errs.add("body", "at least one field must be provided for update")
	}
	if len(errs) > 0 {
		return user.Patch{}, errs
	}
	return p, nil
}

// ValidateLogin returns the normalized email and the password untouched.
func ValidateLogin(r auth.LoginRequest) (string, string, FieldErrors) {
	var errs FieldErrors
	email := cleanEmail(r.Email)

	if email == "" {
		errs.add("email", "email is required")
	} else {
		checkEmail(&errs, email)
	}
	if r.Password == "" {
		errs.add("senha", "senha is required")
	}

	if len(errs) > 0 {
		return "", "", errs
	}
	return email, r.Password, nil
}

// NormalizeEmail and NormalizeCPF prepare availability probes.
func NormalizeEmail(s string) string { return cleanEmail(s) }
func NormalizeCPF(s string) string   { return clean(s) }

// ValidateID accepts only version 1-5 UUIDs with the RFC 4122 variant.
func ValidateID(s string) (uuid.UUID, bool) {
	if !idRe.MatchString(s) {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Pagination falls back to the defaults for missing, non-numeric or zero
// input and clamps the rest into range.
func Pagination(page, limit string) (int, int) {
	p, err := strconv.Atoi(strings.TrimSpace(page))
	if err != nil || p == 0 {
		p = DefaultPage
	}
	if p < 1 {
		p = 1
	}
	if p > MaxPage {
		p = MaxPage
	}

	l, err := strconv.Atoi(strings.TrimSpace(limit))
	if err != nil || l == 0 {
		l = DefaultLimit
	}
	if l < 1 {
		l = 1
	}
	if l > MaxLimit {
		l = MaxLimit
	}

	return p, l
}

func ValidateSearchQuery(q string) (string, FieldErrors) {
	q = clean(q)
	if utf8.RuneCountInString(q) < minQueryLen {
		return "", FieldErrors{{Field: "q", Message: "search query must be at least 2 characters"}}
	}
	return q, nil
}
