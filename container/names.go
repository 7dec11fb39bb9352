package container

import (
	"fmt"
	"strings"

	"github.com/arloliu/alx/errs"
)

// ExternalName converts a stored segment name to the name callers see.
func ExternalName(name, internalExt, externalExt string) string {
	if strings.HasSuffix(name, internalExt) {
		return strings.TrimSuffix(name, internalExt) + externalExt
	}

	return name
}

// InternalName converts a caller-facing segment name to the stored form.
func InternalName(name, internalExt, externalExt string) string {
	if strings.HasSuffix(name, externalExt) {
		return strings.TrimSuffix(name, externalExt) + internalExt
	}

	return name
}

// DATIdentity derives the record identity of a headerless DAT file from its
// name. The first run of three consecutive decimal digits is the file
// number; names starting with bossPrefix add BossIdentityOffset.
//
//	ecinit007.dat -> 7
//	ebinit007.dat -> 135
func DATIdentity(filename, bossPrefix string) (int32, error) {
	base := strings.ToLower(filename)
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}

	for i := 0; i+3 <= len(base); i++ {
		if !isDigit(base[i]) || !isDigit(base[i+1]) || !isDigit(base[i+2]) {
			continue
		}

		id := int32(base[i]-'0')*100 + int32(base[i+1]-'0')*10 + int32(base[i+2]-'0')
		if bossPrefix != "" && strings.HasPrefix(base, strings.ToLower(bossPrefix)) {
			id += BossIdentityOffset
		}

		return id, nil
	}

	return 0, fmt.Errorf("%w: no three-digit number in %q", errs.ErrUnknownIdentity, filename)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
