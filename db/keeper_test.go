package db

import (
	"path/filepath"
	"testing"

	"keri/cesr"
)

func TestKeeperPrisRoundTripsEncryptedSigner(t *testing.T) {
	dir := t.TempDir()

	signer, err := cesr.NewSigner(cesr.CodeEd25519Seed.Code, true)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	dec, err := cesr.DecrypterFromSeed(signer.Raw(), cesr.CodeEd25519Seed.Code)
	if err != nil {
		t.Fatalf("DecrypterFromSeed: %v", err)
	}
	enc, err := cesr.EncrypterFromVerfer(signer.Verfer())
	if err != nil {
		t.Fatalf("EncrypterFromVerfer: %v", err)
	}

	k, err := OpenKeeper(filepath.Join(dir, "ks.db"), nil, dec)
	if err != nil {
		t.Fatalf("OpenKeeper: %v", err)
	}
	defer k.Close()

	key := []byte("Dpre.0")
	if err := k.Pris.Put(key, signer, enc); err != nil {
		t.Fatalf("Pris.Put: %v", err)
	}

	got, ok, err := k.Pris.Get(key, cesr.CodeEd25519Seed.Code, true)
	if err != nil || !ok {
		t.Fatalf("Pris.Get: ok=%v err=%v", ok, err)
	}
	if string(got.QB64B()) != string(signer.QB64B()) {
		t.Fatalf("round-tripped signer seed mismatch")
	}
	if string(got.Verfer().QB64B()) != string(signer.Verfer().QB64B()) {
		t.Fatalf("round-tripped verfer mismatch")
	}
}

func TestKeeperPresPrxsAndNxtsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	k, err := OpenKeeper(filepath.Join(dir, "ks.db"), nil, nil)
	if err != nil {
		t.Fatalf("OpenKeeper: %v", err)
	}
	defer k.Close()

	signer, err := cesr.NewSigner(cesr.CodeEd25519Seed.Code, true)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	prefixer, err := cesr.PrefixerFromVerfer(signer.Verfer())
	if err != nil {
		t.Fatalf("PrefixerFromVerfer: %v", err)
	}

	pre := []byte("Dpre")
	if err := k.Pres.Put(pre, prefixer); err != nil {
		t.Fatalf("Pres.Put: %v", err)
	}
	gotPre, ok, err := k.Pres.Get(pre)
	if err != nil || !ok {
		t.Fatalf("Pres.Get: ok=%v err=%v", ok, err)
	}
	if string(gotPre.QB64B()) != string(prefixer.QB64B()) {
		t.Fatalf("prefixer round-trip mismatch")
	}

	// Prxs and Nxts hold real sealed-box ciphers, so the round trip
	// exercises the variable cipher codes' qb64 parse path.
	enc, err := cesr.EncrypterFromVerfer(signer.Verfer())
	if err != nil {
		t.Fatalf("EncrypterFromVerfer: %v", err)
	}
	seedCipher, err := enc.Encrypt(signer.QB64B())
	if err != nil {
		t.Fatalf("Encrypt seed: %v", err)
	}
	if err := k.Prxs.Put(pre, seedCipher); err != nil {
		t.Fatalf("Prxs.Put: %v", err)
	}
	gotPrx, ok, err := k.Prxs.Get(pre)
	if err != nil || !ok {
		t.Fatalf("Prxs.Get: ok=%v err=%v", ok, err)
	}
	if string(gotPrx.QB64B()) != string(seedCipher.QB64B()) {
		t.Fatalf("prxs cipher round-trip mismatch")
	}

	nxtCipher, err := enc.Encrypt(signer.Verfer().QB64B())
	if err != nil {
		t.Fatalf("Encrypt next commitment: %v", err)
	}
	if err := k.Nxts.Put(pre, nxtCipher); err != nil {
		t.Fatalf("Nxts.Put: %v", err)
	}
	gotNxt, ok, err := k.Nxts.Get(pre)
	if err != nil || !ok {
		t.Fatalf("Nxts.Get: ok=%v err=%v", ok, err)
	}
	if string(gotNxt.QB64B()) != string(nxtCipher.QB64B()) {
		t.Fatalf("nxts cipher round-trip mismatch")
	}
}

func TestKeeperPrmsAndSitsKomerRoundTrip(t *testing.T) {
	dir := t.TempDir()
	k, err := OpenKeeper(filepath.Join(dir, "ks.db"), nil, nil)
	if err != nil {
		t.Fatalf("OpenKeeper: %v", err)
	}
	defer k.Close()

	pre := []byte("Dpre")
	prm := PrePrm{Pidx: 0, Algo: "salty", Salt: "0AAyxMM4", Stem: "pre", Tier: "low"}
	if err := k.Prms.Put(pre, prm); err != nil {
		t.Fatalf("Prms.Put: %v", err)
	}
	gotPrm, ok, err := k.Prms.Get(pre)
	if err != nil || !ok {
		t.Fatalf("Prms.Get: ok=%v err=%v", ok, err)
	}
	if gotPrm != prm {
		t.Fatalf("prms round-trip mismatch: got %+v, want %+v", gotPrm, prm)
	}

	sit := PreSit{
		Old: PubLot{Pubs: []string{"Dold"}, Ri: 0},
		New: PubLot{Pubs: []string{"Dnew"}, Ri: 1},
		Nxt: PubLot{Pubs: []string{"Dnxt"}, Ri: 2},
	}
	if err := k.Sits.Put(pre, sit); err != nil {
		t.Fatalf("Sits.Put: %v", err)
	}
	gotSit, ok, err := k.Sits.Get(pre)
	if err != nil || !ok {
		t.Fatalf("Sits.Get: ok=%v err=%v", ok, err)
	}
	if gotSit.New.Pubs[0] != "Dnew" || gotSit.Nxt.Ri != 2 {
		t.Fatalf("sits round-trip mismatch: got %+v", gotSit)
	}
}

func TestPubsKeyFormat(t *testing.T) {
	got := string(PubsKey("Dpre", 1))
	want := "Dpre.00000000000000000000000000000001"
	if got != want {
		t.Fatalf("PubsKey = %q, want %q", got, want)
	}
}
