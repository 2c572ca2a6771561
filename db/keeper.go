package db

// Keeper (spec ssec 4.7) is the key-store aggregate: private/public key
// material and the algorithm parameters used to derive/rotate it.

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"keri/cesr"
)

// PrePrm holds the key-derivation algorithm parameters for an identifier.
type PrePrm struct {
	Pidx  uint64 // prefix index
	Algo  string // salty/randy
	Salt  string // qb64, empty for randy
	Stem  string
	Tier  string
}

// PubLot is a slice of public-key qb64 strings plus the ri (rotation
// index) they belong to.
type PubLot struct {
	Pubs []string
	Ri   uint32
	Dt   string
}

// PreSit holds the old/new/next PubLot triple for a pending rotation.
type PreSit struct {
	Old PubLot
	New PubLot
	Nxt PubLot
}

// PubSet is an ordered public-key list for one (pre, ri) slot.
type PubSet struct {
	Pubs []string
}

type Keeper struct {
	env *Env

	Gbls *Suber
	Pris *CryptSignerSuber
	Prxs *CesrSuber[*cesr.Matter]
	Nxts *CesrSuber[*cesr.Matter]
	Pres *CesrSuber[*cesr.Prefixer]
	Prms *Komer[PrePrm]
	Sits *Komer[PreSit]
	Pubs *Komer[PubSet]
}

// OpenKeeper opens (creating if absent) the key-store environment and
// every named sub-DB it defines. dec, if non-nil, is the Decrypter used to
// read back entries in Pris.
func OpenKeeper(path string, logger *logrus.Logger, dec *cesr.Decrypter) (*Keeper, error) {
	env, err := Open(path, logger)
	if err != nil {
		return nil, err
	}
	k := &Keeper{env: env}
	var errs []error
	must := func(e error) { errs = append(errs, e) }

	k.Gbls, err = NewSuber(env, "gbls")
	must(err)
	k.Pris, err = NewCryptSignerSuber(env, "pris", dec)
	must(err)
	k.Prxs, err = NewCesrSuber[*cesr.Matter](env, "prxs", func(raw []byte) (*cesr.Matter, error) {
		return cesr.FromQB64(string(raw))
	})
	must(err)
	k.Nxts, err = NewCesrSuber[*cesr.Matter](env, "nxts", func(raw []byte) (*cesr.Matter, error) {
		return cesr.FromQB64(string(raw))
	})
	must(err)
	k.Pres, err = NewCesrSuber[*cesr.Prefixer](env, "pres", func(raw []byte) (*cesr.Prefixer, error) {
		return cesr.PrefixerFromQB64(string(raw))
	})
	must(err)
	k.Prms, err = NewKomer[PrePrm](env, "prms", KomerJSON)
	must(err)
	k.Sits, err = NewKomer[PreSit](env, "sits", KomerJSON)
	must(err)
	k.Pubs, err = NewKomer[PubSet](env, "pubs", KomerJSON)
	must(err)

	for _, e := range errs {
		if e != nil {
			return nil, fmt.Errorf("db: open keeper: %w", e)
		}
	}
	return k, nil
}

func (k *Keeper) Close() error { return k.env.Close() }

// PubsKey composes the pubs table's pre.ri key, ri rendered as 32-hex per
// spec ssec 4.7.
func PubsKey(pre string, ri uint32) []byte {
	return []byte(fmt.Sprintf("%s.%032x", pre, ri))
}
