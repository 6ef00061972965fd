package domain

import (
	"regexp"
	"strconv"
	"strings"

	dErrors "github.com/pewpola/dao-condominium/pkg/domain-errors"
)

// Identity is an opaque, comparable token naming a caller (typically a wallet
// address such as 0x5FbD...). The zero value and the all-zero address are nil.
//
// Usage: construct via ParseIdentity at trust boundaries; hex addresses are
// normalized to lower case so the same account always compares equal.
type Identity string

// ZeroAddress is the null identity used by address-based clients.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

var hexAddress = regexp.MustCompile(`^0[xX][0-9a-fA-F]{40}$`)

const maxIdentityLength = 128

// ParseIdentity validates an identity token from external input.
//
// Errors: returns CodeInvalidAddress when the token is empty, the zero address,
// too long, or contains whitespace or control characters.
func ParseIdentity(s string) (Identity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidAddress, "the address must be valid")
	}
	if len(s) > maxIdentityLength {
		return "", dErrors.New(dErrors.CodeInvalidAddress, "the address is too long")
	}
	for _, r := range s {
		if r <= ' ' || r == 0x7f {
			return "", dErrors.New(dErrors.CodeInvalidAddress, "the address must be valid")
		}
	}
	if hexAddress.MatchString(s) {
		s = strings.ToLower(s)
	}
	id := Identity(s)
	if id.IsNil() {
		return "", dErrors.New(dErrors.CodeInvalidAddress, "the address must be valid")
	}
	return id, nil
}

// IsNil reports whether the identity is empty or the zero address.
func (i Identity) IsNil() bool {
	return i == "" || strings.EqualFold(string(i), ZeroAddress)
}

func (i Identity) String() string {
	return string(i)
}

// ResidenceID encodes a physical unit as block*1000 + floor*100 + unit.
// Whether a ResidenceID exists is decided by the community layout, not here.
type ResidenceID int

// ParseResidenceID parses a residence identifier from a path or flag value.
func ParseResidenceID(s string) (ResidenceID, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidResidence, "this residence does not exist")
	}
	return ResidenceID(n), nil
}

// Block returns the building component of the identifier.
func (r ResidenceID) Block() int { return int(r) / 1000 }

// Floor returns the floor component of the identifier.
func (r ResidenceID) Floor() int { return int(r) % 1000 / 100 }

// Unit returns the unit component of the identifier.
func (r ResidenceID) Unit() int { return int(r) % 100 }

func (r ResidenceID) String() string {
	return strconv.Itoa(int(r))
}

// TopicName is the unique key of a governance topic.
type TopicName string

const maxTopicNameLength = 256

// ParseTopicName validates a topic name from external input.
func ParseTopicName(s string) (TopicName, error) {
	if strings.TrimSpace(s) == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "topic name cannot be empty")
	}
	if len(s) > maxTopicNameLength {
		return "", dErrors.New(dErrors.CodeBadRequest, "topic name must be 256 characters or less")
	}
	return TopicName(s), nil
}

func (n TopicName) String() string {
	return string(n)
}
