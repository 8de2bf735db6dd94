package hostsfile

import (
	stderrors "errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/maksimkurb/hostfile/src/internal/errors"
	"github.com/maksimkurb/hostfile/src/internal/hosts"
)

// requestRule mirrors hosts.Request with validation tags.
type requestRule struct {
	Host    string `validate:"required,host_token"`
	Address string `validate:"omitempty,address_literal"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("host_token", validateHostToken); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("address_literal", validateAddressLiteral); err != nil {
		panic(err)
	}
}

// A host must survive a write and re-parse as a single token.
func validateHostToken(fl validator.FieldLevel) bool {
	host := fl.Field().String()
	return !strings.ContainsFunc(host, func(r rune) bool {
		return r == '#' || unicode.IsSpace(r)
	})
}

func validateAddressLiteral(fl validator.FieldLevel) bool {
	return hosts.IsAddressLiteral(fl.Field().String())
}

// ValidateRequests checks a batch of assignments and removals. When
// requireAddress is set every request must carry an address.
func ValidateRequests(requests []hosts.Request, requireAddress bool) error {
	if len(requests) == 0 {
		return errors.NewInvalidRequestError("no hosts given", nil)
	}

	for i, req := range requests {
		if requireAddress && req.IsRemoval() {
			return errors.NewInvalidRequestError(fmt.Sprintf("request %d (%q): address is required", i, req.Host), nil)
		}
		if err := validate.Struct(requestRule{Host: req.Host, Address: req.Address}); err != nil {
			return errors.NewInvalidRequestError(fmt.Sprintf("request %d (%q): %s", i, req.Host, describe(err)), nil)
		}
	}
	return nil
}

// ValidateHosts checks host names given for removal or lookup.
func ValidateHosts(hostNames []string) error {
	if len(hostNames) == 0 {
		return errors.NewInvalidRequestError("no hosts given", nil)
	}
	for i, h := range hostNames {
		if err := validate.Var(h, "required,host_token"); err != nil {
			return errors.NewInvalidRequestError(fmt.Sprintf("host %d (%q): %s", i, h, describe(err)), nil)
		}
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	e := verrs[0]
	field := strings.ToLower(e.Field())
	if field == "" {
		field = "host"
	}
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "host_token":
		return "host must not contain whitespace or '#'"
	case "address_literal":
		return fmt.Sprintf("%q is not an IPv4 or IPv6 address", e.Value())
	default:
		return fmt.Sprintf("%s failed %s", field, e.Tag())
	}
}
