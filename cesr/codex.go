package cesr

// Code table entries (spec sssec 3, 4.1): the process-wide, immutable
// registry mapping a primitive's hard code selector to its hard/soft/full
// sizes, lead-byte count, derived raw size, and family membership flags.
//
// Sizing rule for fixed-size codes (registered with register): ss bytes of
// soft carry no variable length — Number's "value" lives in raw, Indexer's
// index/ondex live in soft but soft's width is still fixed per code. Given
// (hs, ss, rs), the lead size ls in {0,1,2} is the smallest value for which
//
//	hs + ss + ceil((ls+rs)*8/6)
//
// is a multiple of 4 — so that four qb64 characters always pack cleanly
// into three qb2 bytes. fs is that sum. Variable-size codes (Bexter free
// text and the sealed-box cipher codes) are registered with registerVar
// instead: their ls is fixed per code and their fs/rs are -1.

import "fmt"

// Family flags describe which typed primitives may legally hold a code.
type Family uint16

const (
	FamDigest Family = 1 << iota
	FamNonTrans
	FamTrans
	FamPrefixive
	FamSpecial
	FamNumeric
	FamBext
	FamCipher
	FamIndexed
	FamDateTime
	FamSeed
)

// Sizage is one code table entry.
type Sizage struct {
	Code   string
	HS, SS int
	LS     int
	FS     int // full size in qb64 chars
	RS     int // raw size in bytes
	Fam    Family
}

var codeTable = map[string]Sizage{}

func deriveLS(hs, ss, rs int) int {
	for ls := 0; ls <= 2; ls++ {
		total := hs + ss + ceilDiv((ls+rs)*8, 6)
		if total%4 == 0 {
			return ls
		}
	}
	panic(fmt.Sprintf("no lead size aligns hs=%d ss=%d rs=%d to a 4-char boundary", hs, ss, rs))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func register(code string, hs, ss, rs int, fam Family) Sizage {
	ls := deriveLS(hs, ss, rs)
	fs := hs + ss + ceilDiv((ls+rs)*8, 6)
	sz := Sizage{Code: code, HS: hs, SS: ss, LS: ls, FS: fs, RS: rs, Fam: fam}
	codeTable[code] = sz
	return sz
}

// registerVar registers a variable-full-size code: ls is fixed by the code
// itself rather than derived, and fs/rs are unknown until the primitive's
// material length is known. Codes with ss > 0 are self-framing — the soft
// field carries the material's quadlet count (one quadlet is four text
// chars / three lead-plus-raw bytes) as base64 digits, so qb64/qb2 parsing
// can find the primitive's end without external framing. ss == 0 codes
// (Bexter) rely on external framing instead.
func registerVar(code string, hs, ss, ls int, fam Family) Sizage {
	sz := Sizage{Code: code, HS: hs, SS: ss, LS: ls, FS: -1, RS: -1, Fam: fam}
	codeTable[code] = sz
	return sz
}

// Well-known code selectors, registered at package init. Values are chosen
// internally consistent per the derivation above; they are not claimed to
// match any external CESR code registry byte-for-byte.
var (
	CodeEd25519Seed = register("A", 1, 0, 32, FamSeed)
	CodeEd25519N    = register("B", 1, 0, 32, FamNonTrans|FamPrefixive)
	CodeX25519      = register("C", 1, 0, 32, FamCipher)
	CodeEd25519     = register("D", 1, 0, 32, FamTrans|FamPrefixive)
	CodeBlake3_256  = register("E", 1, 0, 32, FamDigest)
	CodeBlake2b_512 = register("F", 1, 0, 64, FamDigest)
	CodeBlake2s_256 = register("G", 1, 0, 32, FamDigest)
	CodeSHA3_256    = register("H", 1, 0, 32, FamDigest)
	CodeSHA2_256    = register("I", 1, 0, 32, FamDigest)
	CodeBlake3_512  = register("J", 1, 0, 64, FamDigest)
	CodeSHA3_512    = register("K", 1, 0, 64, FamDigest)
	CodeSHA2_512    = register("L", 1, 0, 64, FamDigest)
	CodeECDSASeed    = register("Q", 1, 0, 32, FamSeed)
	CodeECDSAN       = register("N", 1, 0, 33, FamNonTrans|FamPrefixive)
	CodeECDSA        = register("O", 1, 0, 33, FamTrans|FamPrefixive)
	CodeSalt128      = register("0D", 2, 0, 16, FamSpecial)
	CodeDateTime     = register("1G", 2, 0, 32, FamDateTime)

	// Number family — thresholds per spec ssec 4.3: 256^2-1, 256^5-1,
	// 256^8-1, 256^11-1, 256^14-1, 256^17-1; Huge (16 raw bytes) is never
	// picked automatically and is forced only via Number.Huge.
	CodeNumShort = register("M", 1, 0, 2, FamNumeric)
	CodeNumTall  = register("1B", 2, 0, 5, FamNumeric)
	CodeNumBig   = register("1C", 2, 0, 8, FamNumeric)
	CodeNumLarge = register("1D", 2, 0, 11, FamNumeric)
	CodeNumGreat = register("1E", 2, 0, 14, FamNumeric)
	CodeNumVast  = register("1F", 2, 0, 17, FamNumeric)
	CodeNumHuge  = register("0A", 2, 0, 16, FamNumeric) // 256^16-1; Vast (17 bytes) is wider

	// Bexter variable text — fs is None (variable length); ls is fixed per
	// code and picked by the text's own length mod 4 (see bexter.go).
	CodeBexterL0 = registerVar("4A", 2, 0, 0, FamBext)
	CodeBexterL1 = registerVar("5A", 2, 0, 1, FamBext)
	CodeBexterL2 = registerVar("6A", 2, 0, 2, FamBext)

	// X25519 sealed-box ciphers are variable-size: the 32-byte ephemeral
	// public key plus a 16-byte MAC plus the plaintext, which has no fixed
	// raw size. Three lead-variant codes keep any plaintext length aligned
	// to whole quadlets; the soft field carries the material's quadlet
	// count so stored ciphers parse back from qb64 (see crypt.go).
	CodeCipherL0 = registerVar("4C", 2, 2, 0, FamCipher)
	CodeCipherL1 = registerVar("5C", 2, 2, 1, FamCipher)
	CodeCipherL2 = registerVar("6C", 2, 2, 2, FamCipher)

	// Non-indexed signature codes (Cigar): plain Matter, no soft index.
	CodeCigarEd25519Sig = register("0J", 2, 0, 64, FamSpecial)
	CodeCigarECDSASig   = register("0K", 2, 0, 72, FamSpecial)

	// Indexer codes (C4): distinct selector space from Matter codes so a
	// parser must be told which universe it is decoding into (mirrors
	// CESR's separate Matter/Indexer code domains). Siger carries an index
	// (ss=2 base64 digits, up to 4095); SigerBig additionally carries an
	// ondex (ss=4).
	CodeSigerEd25519    = register("0E", 2, 2, 64, FamIndexed)
	CodeSigerEd25519Big = register("0F", 2, 4, 64, FamIndexed)
	CodeSigerECDSA      = register("0H", 2, 2, 64, FamIndexed)
	CodeSigerECDSABig   = register("0I", 2, 4, 64, FamIndexed)
)

// LookupCode returns the Sizage for a registered code, fixed- or
// variable-size, or ok=false.
func LookupCode(code string) (Sizage, bool) {
	sz, ok := codeTable[code]
	return sz, ok
}

// HardSize returns the hard (selector) size for the first character of a
// qb64 primitive, following the CESR convention that the first character's
// class determines the hard code's length: letters select 1-char hard
// codes, digits select 2-char, '4'..'6' in the bext family select 2-char,
// and '-'/'_' select 4-char codes reserved for counters/special framing.
func HardSize(first byte) (int, error) {
	switch {
	case first >= 'A' && first <= 'Z':
		return 1, nil
	case first >= 'a' && first <= 'z':
		return 1, nil
	case first >= '0' && first <= '9':
		return 2, nil
	case first == '-' || first == '_':
		return 4, nil
	default:
		return 0, fmt.Errorf("unrecognized selector class %q", first)
	}
}
