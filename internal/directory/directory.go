// Package directory holds the static school → canonical address table
// used to patch incomplete portal profiles.
package directory

import (
	_ "embed"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/doctrack/trackctl/internal/session"
)

//go:embed addresses.yaml
var addressesYAML []byte

var (
	loadOnce  sync.Once
	addresses map[string]string
	loadErr   error
)

type addressFile struct {
	Schools map[string]string `yaml:"schools"`
}

func table() map[string]string {
	loadOnce.Do(func() {
		var f addressFile
		if err := yaml.Unmarshal(addressesYAML, &f); err != nil {
			loadErr = err
			return
		}
		addresses = f.Schools
	})
	return addresses
}

// Lookup returns the canonical address for a school name.
func Lookup(schoolName string) (string, bool) {
	addr, ok := table()[schoolName]
	return addr, ok
}

// Resolve patches the record's school address in place. The address is
// replaced only for school users whose portal-reported address is "N/A"
// or "Not specified" and whose school has a known entry; anything else
// is left untouched. Returns whether a patch was applied.
func Resolve(rec *session.Record) bool {
	if rec == nil || rec.Role != session.RoleSchool {
		return false
	}

	if rec.SchoolAddress != "N/A" && rec.SchoolAddress != session.NotSpecified {
		return false
	}

	addr, ok := Lookup(rec.SchoolName)
	if !ok {
		return false
	}

	rec.SchoolAddress = addr
	return true
}
